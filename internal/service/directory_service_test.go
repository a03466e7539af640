package service

import (
	"context"
	"testing"
	"time"

	"spa-registry-be/internal/dto"
	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/repository/specification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSpaRepo struct {
	fakeSpaRepo
	all            []*entity.Spa
	regions        []entity.RegionCount
	aggregateCalls int
}

func (r *stubSpaRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Spa, error) {
	return r.all, nil
}
func (r *stubSpaRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(r.all)), nil
}
func (r *stubSpaRepo) AggregateRegions(context.Context, ...specification.Specification) ([]entity.RegionCount, error) {
	r.aggregateCalls++
	return r.regions, nil
}

func strptr(s string) *string { return &s }

func TestClassify(t *testing.T) {
	reason := strptr("fraud")

	tests := []struct {
		name     string
		spa      *entity.Spa
		category specification.Category
		listed   bool
	}{
		{"verified and paid", &entity.Spa{Status: entity.SpaStatusVerified, AnnualFeePaid: true}, specification.CategoryVerified, true},
		{"verified unpaid", &entity.Spa{Status: entity.SpaStatusVerified}, specification.CategoryUnverified, true},
		{"blacklist wins over paid status", &entity.Spa{Status: entity.SpaStatusVerified, AnnualFeePaid: true, BlacklistReason: reason}, specification.CategoryBlacklisted, true},
		{"blacklisted while pending", &entity.Spa{Status: entity.SpaStatusPending, BlacklistReason: reason}, specification.CategoryBlacklisted, true},
		{"pending not listed", &entity.Spa{Status: entity.SpaStatusPending}, "", false},
		{"rejected not listed", &entity.Spa{Status: entity.SpaStatusRejected}, "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			category, listed := Classify(tc.spa)
			assert.Equal(t, tc.listed, listed)
			assert.Equal(t, tc.category, category)
		})
	}
}

func TestDirectoryListShowsCategoryNotInternals(t *testing.T) {
	repo := &stubSpaRepo{all: []*entity.Spa{
		{Id: 1, ReferenceNumber: "SPA-AAAA1111", Name: "Serenity Spa", Region: "North", Status: entity.SpaStatusVerified, AnnualFeePaid: true},
		{Id: 2, ReferenceNumber: "SPA-BBBB2222", Name: "Lotus Wellness", Region: "South", Status: entity.SpaStatusVerified},
	}}
	svc := NewDirectoryService(repo, nopLogger{})

	res, err := svc.List(context.Background(), &dto.DirectoryQuery{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "verified", res.Items[0].Category)
	assert.Equal(t, "unverified", res.Items[1].Category)
}

func TestDirectoryRegionsCached(t *testing.T) {
	repo := &stubSpaRepo{regions: []entity.RegionCount{{Region: "North", Count: 3}, {Region: "South", Count: 1}}}
	svc := NewDirectoryService(repo, nopLogger{})

	first, err := svc.Regions(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "North", first[0].Region)
	assert.Equal(t, int64(3), first[0].Count)

	_, err = svc.Regions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.aggregateCalls, "second read must come from the cache")
}

func TestPaymentFlagDerivation(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, -1, 0)
	future := now.AddDate(0, 1, 0)

	unpaid := &entity.Spa{}
	assert.Equal(t, entity.PaymentFlagUnpaid, unpaid.PaymentFlagAt(now))

	paid := &entity.Spa{AnnualFeePaid: true, NextPaymentDate: &future}
	assert.Equal(t, entity.PaymentFlagPaid, paid.PaymentFlagAt(now))

	// Overdue is derived, the stored flag is never reverted.
	overdue := &entity.Spa{AnnualFeePaid: true, NextPaymentDate: &past}
	assert.Equal(t, entity.PaymentFlagOverdue, overdue.PaymentFlagAt(now))
	assert.True(t, overdue.AnnualFeePaid)
}
