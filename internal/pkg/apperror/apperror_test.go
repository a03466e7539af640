package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input", "name")))
	assert.Equal(t, KindInvalidTransition, KindOf(InvalidTransition("nope")))
	assert.Equal(t, KindInvalidPlan, KindOf(InvalidPlan("lifetime")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("spa")))
	assert.Equal(t, KindPersistence, KindOf(errors.New("raw infrastructure error")))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("executing command: %w", InvalidTransition("payment is completed"))
	assert.Equal(t, KindInvalidTransition, KindOf(err))
}

func TestPersistenceUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Persistence(cause)
	assert.ErrorIs(t, err, cause)
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, 400, HTTPStatus(KindValidation))
	assert.Equal(t, 400, HTTPStatus(KindInvalidPlan))
	assert.Equal(t, 404, HTTPStatus(KindNotFound))
	assert.Equal(t, 409, HTTPStatus(KindInvalidTransition))
	assert.Equal(t, 500, HTTPStatus(KindPersistence))
}

func TestAsAppErrorWrapsUntyped(t *testing.T) {
	ae := AsAppError(errors.New("boom"))
	assert.Equal(t, KindPersistence, ae.Kind)

	typed := Validation("bad", "field")
	assert.Same(t, typed, AsAppError(typed))
}
