package lifecycle

import (
	"testing"
	"time"

	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now      = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	lsaActor = Actor{Type: entity.ActorTypeAssociationAdmin, Id: 9, Name: "Registry Admin"}
	spaActor = Actor{Type: entity.ActorTypeSpaAdmin, Id: 3, Name: "Owner"}
)

func pendingSpa() *entity.Spa {
	return &entity.Spa{
		Id:              1,
		ReferenceNumber: "SPA-AAAA1111",
		Name:            "Serenity Spa",
		Email:           "owner@serenity.test",
		AdminUserId:     3,
		Status:          entity.SpaStatusPending,
	}
}

func verifiedSpa() *entity.Spa {
	s := pendingSpa()
	s.Status = entity.SpaStatusVerified
	return s
}

func TestDecideRegisterSpa(t *testing.T) {
	d, err := DecideRegisterSpa(RegisterSpaInput{
		ReferenceNumber: "SPA-BBBB2222",
		Name:            "Lotus Wellness",
		Email:           "admin@lotus.test",
		Region:          "North",
		AdminUserId:     7,
	}, now)
	require.NoError(t, err)

	spa := d.Spa()
	require.NotNil(t, spa)
	assert.Equal(t, entity.SpaStatusPending, spa.Status)
	assert.False(t, spa.AnnualFeePaid)
	assert.Equal(t, "register", d.Log.Action)

	// The association-admin room is told about the new registration.
	require.Len(t, d.Notifications, 1)
	assert.Equal(t, entity.RecipientTypeRole, d.Notifications[0].RecipientType)
	assert.Equal(t, entity.RoleAssociationAdmin, d.Notifications[0].RecipientRole)
}

func TestDecideRegisterSpaValidation(t *testing.T) {
	tests := []struct {
		name  string
		in    RegisterSpaInput
		field string
	}{
		{"missing name", RegisterSpaInput{Email: "a@b.test", AdminUserId: 1}, "name"},
		{"missing email", RegisterSpaInput{Name: "X", AdminUserId: 1}, "email"},
		{"missing admin", RegisterSpaInput{Name: "X", Email: "a@b.test"}, "admin_user_id"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecideRegisterSpa(tc.in, now)
			require.Error(t, err)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
			assert.Equal(t, tc.field, apperror.AsAppError(err).Field)
		})
	}
}

func TestDecideVerifySpaApprove(t *testing.T) {
	d, err := DecideVerifySpa(pendingSpa(), VerifyApprove, "", lsaActor, now)
	require.NoError(t, err)

	spa := d.Spa()
	assert.Equal(t, entity.SpaStatusVerified, spa.Status)
	assert.Equal(t, &lsaActor.Id, spa.VerifiedBy)
	// Verification does not touch billing.
	assert.False(t, spa.AnnualFeePaid)

	require.Len(t, d.Events, 1)
	assert.Equal(t, "spa.verified", d.Events[0].Type)
}

func TestDecideVerifySpaRejectNeedsReason(t *testing.T) {
	_, err := DecideVerifySpa(pendingSpa(), VerifyReject, "  ", lsaActor, now)
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	d, err := DecideVerifySpa(pendingSpa(), VerifyReject, "incomplete documents", lsaActor, now)
	require.NoError(t, err)
	spa := d.Spa()
	assert.Equal(t, entity.SpaStatusRejected, spa.Status)
	require.NotNil(t, spa.RejectReason)
	assert.Equal(t, "incomplete documents", *spa.RejectReason)
}

func TestDecideVerifySpaOnlyPending(t *testing.T) {
	_, err := DecideVerifySpa(verifiedSpa(), VerifyApprove, "", lsaActor, now)
	require.Error(t, err)
	assert.Equal(t, apperror.KindInvalidTransition, apperror.KindOf(err))
}

// Card payments settle synchronously: payment row completed, spa billing flags
// advanced in the same decision.
func TestDecideInitiatePaymentCard(t *testing.T) {
	spa := verifiedSpa()
	d, err := DecideInitiatePayment(spa, "registration", entity.PaymentMethodCard, nil, "PAY-CCCC3333", spaActor, now)
	require.NoError(t, err)

	p := d.Payment()
	require.NotNil(t, p)
	assert.Equal(t, entity.PaymentStatusCompleted, p.Status)
	assert.Equal(t, int64(10000), p.Amount)
	assert.Equal(t, "completed", p.DisplayStatus())

	updated := d.Spa()
	require.NotNil(t, updated)
	assert.True(t, updated.AnnualFeePaid)
	require.NotNil(t, updated.NextPaymentDate)
	assert.Equal(t, now.AddDate(0, 12, 0), *updated.NextPaymentDate)

	require.Len(t, d.Events, 1)
	assert.Equal(t, "payment.settled", d.Events[0].Type)
}

// Bank transfers wait for an association-admin decision; the spa row must not
// move until then.
func TestDecideInitiatePaymentBankTransfer(t *testing.T) {
	bank := &entity.BankDetails{BankName: "First Bank", AccountName: "Serenity Spa"}
	d, err := DecideInitiatePayment(verifiedSpa(), "quarterly", entity.PaymentMethodBankTransfer, bank, "PAY-DDDD4444", spaActor, now)
	require.NoError(t, err)

	p := d.Payment()
	assert.Equal(t, entity.PaymentStatusPending, p.Status)
	assert.Equal(t, "pending_approval", p.DisplayStatus())
	assert.Equal(t, int64(14000), p.Amount)
	assert.Equal(t, 3, p.DurationMonths)

	assert.Nil(t, d.Spa(), "bank transfer must not touch the spa until resolved")
	assert.Empty(t, d.Events)

	require.Len(t, d.Notifications, 1)
	assert.Equal(t, entity.RecipientTypeRole, d.Notifications[0].RecipientType)
}

func TestDecideInitiatePaymentUnknownPlan(t *testing.T) {
	_, err := DecideInitiatePayment(verifiedSpa(), "lifetime", entity.PaymentMethodCard, nil, "PAY-EEEE5555", spaActor, now)
	require.Error(t, err)
	assert.Equal(t, apperror.KindInvalidPlan, apperror.KindOf(err))
}

func TestDecideInitiatePaymentBankDetailsRequired(t *testing.T) {
	_, err := DecideInitiatePayment(verifiedSpa(), "monthly", entity.PaymentMethodBankTransfer, nil, "PAY-FFFF6666", spaActor, now)
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func pendingTransfer(spa *entity.Spa) *entity.Payment {
	return &entity.Payment{
		Id:              42,
		SpaId:           spa.Id,
		ReferenceNumber: "PAY-GGGG7777",
		Type:            entity.PaymentTypeAnnual,
		Method:          entity.PaymentMethodBankTransfer,
		PlanId:          "quarterly",
		Amount:          14000,
		DurationMonths:  3,
		Status:          entity.PaymentStatusPending,
	}
}

func TestDecideResolveBankTransferApprove(t *testing.T) {
	spa := verifiedSpa()
	d, err := DecideResolveBankTransfer(pendingTransfer(spa), spa, ResolveApprove, lsaActor, now)
	require.NoError(t, err)

	p := d.Payment()
	assert.Equal(t, entity.PaymentStatusCompleted, p.Status)
	assert.True(t, p.BankTransferApproved)
	assert.Equal(t, &lsaActor.Id, p.ResolvedBy)

	updated := d.Spa()
	require.NotNil(t, updated)
	assert.True(t, updated.AnnualFeePaid)
	require.NotNil(t, updated.NextPaymentDate)
	assert.Equal(t, now.AddDate(0, 3, 0), *updated.NextPaymentDate)
}

func TestDecideResolveBankTransferReject(t *testing.T) {
	spa := verifiedSpa()
	d, err := DecideResolveBankTransfer(pendingTransfer(spa), spa, ResolveReject, lsaActor, now)
	require.NoError(t, err)

	p := d.Payment()
	assert.Equal(t, entity.PaymentStatusRejected, p.Status)
	assert.False(t, p.BankTransferApproved)

	assert.Nil(t, d.Spa(), "rejection leaves billing untouched")
	assert.Empty(t, d.Events)
}

// Resolved payments are immutable: a second resolution loses the row lock race
// and must be rejected, not overwritten.
func TestDecideResolveBankTransferImmutable(t *testing.T) {
	spa := verifiedSpa()
	p := pendingTransfer(spa)
	p.Status = entity.PaymentStatusCompleted

	_, err := DecideResolveBankTransfer(p, spa, ResolveReject, lsaActor, now)
	require.Error(t, err)
	assert.Equal(t, apperror.KindInvalidTransition, apperror.KindOf(err))
}

func TestDecideResolveBankTransferCardNotResolvable(t *testing.T) {
	spa := verifiedSpa()
	p := pendingTransfer(spa)
	p.Method = entity.PaymentMethodCard

	_, err := DecideResolveBankTransfer(p, spa, ResolveApprove, lsaActor, now)
	require.Error(t, err)
	assert.Equal(t, apperror.KindInvalidTransition, apperror.KindOf(err))
}

func pendingTherapist(spa *entity.Spa) *entity.Therapist {
	return &entity.Therapist{
		Id:       5,
		SpaId:    spa.Id,
		FullName: "Ana Reyes",
		Status:   entity.TherapistStatusPending,
	}
}

func TestDecideApproveTherapist(t *testing.T) {
	spa := verifiedSpa()
	d, err := DecideApproveTherapist(pendingTherapist(spa), spa, lsaActor, now)
	require.NoError(t, err)

	th := d.Therapist()
	assert.Equal(t, entity.TherapistStatusApproved, th.Status)
	assert.Equal(t, &lsaActor.Id, th.ApprovedBy)

	// Both the spa and the deciding admin get a copy.
	require.Len(t, d.Notifications, 2)
	assert.Equal(t, entity.RecipientTypeSpa, d.Notifications[0].RecipientType)
	assert.Equal(t, spa.Email, d.Notifications[0].Email)
	assert.Equal(t, entity.RecipientTypeUser, d.Notifications[1].RecipientType)
	assert.Equal(t, lsaActor.Id, d.Notifications[1].RecipientId)
}

func TestDecideApproveTherapistOnlyPending(t *testing.T) {
	spa := verifiedSpa()
	th := pendingTherapist(spa)
	th.Status = entity.TherapistStatusApproved

	_, err := DecideApproveTherapist(th, spa, lsaActor, now)
	require.Error(t, err)
	assert.Equal(t, apperror.KindInvalidTransition, apperror.KindOf(err))
}

func TestDecideRejectTherapistNeedsReason(t *testing.T) {
	spa := verifiedSpa()
	_, err := DecideRejectTherapist(pendingTherapist(spa), spa, lsaActor, "", now)
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestDecideResignTherapist(t *testing.T) {
	spa := verifiedSpa()
	th := pendingTherapist(spa)
	th.Status = entity.TherapistStatusApproved

	d, err := DecideResignTherapist(th, spaActor, now)
	require.NoError(t, err)
	assert.Equal(t, entity.TherapistStatusResigned, d.Therapist().Status)
}

func TestDecideTerminateTherapistNeedsDocRef(t *testing.T) {
	spa := verifiedSpa()
	th := pendingTherapist(spa)
	th.Status = entity.TherapistStatusApproved

	_, err := DecideTerminateTherapist(th, lsaActor, "misconduct", "", now)
	require.Error(t, err)
	assert.Equal(t, "supporting_doc_ref", apperror.AsAppError(err).Field)

	d, err := DecideTerminateTherapist(th, lsaActor, "misconduct", "doc://case-77", now)
	require.NoError(t, err)
	updated := d.Therapist()
	assert.Equal(t, entity.TherapistStatusTerminated, updated.Status)
	require.NotNil(t, updated.SupportingDocRef)
	assert.Equal(t, "doc://case-77", *updated.SupportingDocRef)
}

func TestDecideSubmitTherapistBlocksTerminatedIdentity(t *testing.T) {
	spa := verifiedSpa()
	prior := &entity.Therapist{Id: 8, SpaId: 99, Status: entity.TherapistStatusTerminated}

	_, err := DecideSubmitTherapist(spa, prior, SubmitTherapistInput{FullName: "Ana Reyes", IdentityNumber: "ID-1"}, spaActor, now)
	require.Error(t, err)
	assert.Equal(t, apperror.KindInvalidTransition, apperror.KindOf(err))
}

func TestDecideBlacklistSpa(t *testing.T) {
	// Blacklisting orthogonal to status: a pending spa can be blacklisted too.
	d, err := DecideBlacklistSpa(pendingSpa(), "fraud investigation", lsaActor, now)
	require.NoError(t, err)

	spa := d.Spa()
	assert.True(t, spa.IsBlacklisted())
	assert.Equal(t, entity.SpaStatusPending, spa.Status, "status is untouched by blacklisting")

	require.Len(t, d.Events, 1)
	assert.Equal(t, "spa.blacklisted", d.Events[0].Type)
}

func TestDecideBlacklistSpaRejectedRefused(t *testing.T) {
	spa := pendingSpa()
	spa.Status = entity.SpaStatusRejected

	_, err := DecideBlacklistSpa(spa, "anything", lsaActor, now)
	require.Error(t, err)
	assert.Equal(t, apperror.KindInvalidTransition, apperror.KindOf(err))
}

func TestDecideClearBlacklistIdempotent(t *testing.T) {
	d, err := DecideClearBlacklist(verifiedSpa(), lsaActor, now)
	require.NoError(t, err)
	assert.Nil(t, d, "clearing a clear spa is a silent no-op")

	reason := "fraud investigation"
	at := now.AddDate(0, -1, 0)
	spa := verifiedSpa()
	spa.BlacklistReason = &reason
	spa.BlacklistedAt = &at

	d, err = DecideClearBlacklist(spa, lsaActor, now)
	require.NoError(t, err)
	require.NotNil(t, d)
	updated := d.Spa()
	assert.Nil(t, updated.BlacklistReason)
	assert.Nil(t, updated.BlacklistedAt)
}
