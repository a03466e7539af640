package service

import (
	"context"
	"testing"

	"spa-registry-be/internal/pkg/apperror"
	"spa-registry-be/internal/repository/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrincipalMatchSpaAdmin(t *testing.T) {
	match := Principal{UserId: 7, SpaId: 42, Role: "spa_admin"}.match()
	assert.Equal(t, "spa", match.RecipientType)
	assert.Equal(t, uint(42), match.RecipientId)
	assert.Empty(t, match.Role, "spa admins never see role rows")
}

func TestPrincipalMatchAssociationAdmin(t *testing.T) {
	match := Principal{UserId: 7, SpaId: 0, Role: "lsa"}.match()
	assert.Equal(t, "user", match.RecipientType)
	assert.Equal(t, uint(7), match.RecipientId)
	assert.Equal(t, "lsa", match.Role, "role rows are part of the admin inbox")
}

type markFailingNotificationRepo struct {
	fakeNotificationRepo
	markErr error
}

func (r *markFailingNotificationRepo) MarkAsRead(context.Context, uint) error {
	return r.markErr
}

func TestMarkAsReadMissingRowIsNotFound(t *testing.T) {
	repo := &markFailingNotificationRepo{markErr: contract.ErrNotificationNotFound}
	svc := NewNotificationService(repo)

	err := svc.MarkAsRead(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
