package billing

import (
	"testing"

	"spa-registry-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanById(t *testing.T) {
	p := PlanById("quarterly")
	require.NotNil(t, p)
	assert.Equal(t, int64(14000), p.Amount)
	assert.Equal(t, 3, p.DurationMonths)
	assert.Equal(t, entity.PaymentTypeAnnual, p.Type)

	assert.Nil(t, PlanById("lifetime"))
	assert.Nil(t, PlanById(""))
}

func TestPlanByIdReturnsCopy(t *testing.T) {
	p := PlanById("monthly")
	require.NotNil(t, p)
	p.Amount = 1

	again := PlanById("monthly")
	assert.Equal(t, int64(5000), again.Amount, "catalogue must be immutable")
}

func TestListPlans(t *testing.T) {
	plans := ListPlans()
	require.Len(t, plans, 4)
	assert.Equal(t, "registration", plans[0].Id)

	plans[0].Amount = 1
	assert.Equal(t, int64(10000), ListPlans()[0].Amount)
}
