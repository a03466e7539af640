package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"spa-registry-be/internal/billing"
	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/pkg/apperror"
)

// The rules in this file are pure: they take row snapshots plus a command
// payload and return either a Decision or a typed rejection. Preconditions are
// checked before any effect is computed, so a rejection never carries partial
// mutations. All I/O (locking, re-reading, committing) belongs to the
// executor.

type RegisterSpaInput struct {
	ReferenceNumber string
	Name            string
	Email           string
	Phone           string
	Address         string
	Region          string
	AdminUserId     uint
}

func DecideRegisterSpa(in RegisterSpaInput, now time.Time) (*Decision, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperror.Validation("spa name is required", "name")
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, apperror.Validation("contact email is required", "email")
	}
	if in.AdminUserId == 0 {
		return nil, apperror.Validation("administrator principal is required", "admin_user_id")
	}

	spa := &entity.Spa{
		ReferenceNumber: in.ReferenceNumber,
		Name:            in.Name,
		Email:           in.Email,
		Phone:           in.Phone,
		Address:         in.Address,
		Region:          in.Region,
		AdminUserId:     in.AdminUserId,
		Status:          entity.SpaStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	d := &Decision{Mutations: []Mutation{CreateSpa{Spa: spa}}}
	actor := Actor{Type: entity.ActorTypeSpaAdmin, Id: in.AdminUserId, Name: in.Name}
	d.log(ActivityLogSpec{
		TargetType:  "spa",
		Action:      "register",
		Actor:       actor,
		NewStatus:   string(entity.SpaStatusPending),
		Description: fmt.Sprintf("Spa %s submitted registration (%s)", in.Name, in.ReferenceNumber),
	})
	d.notify(NotificationSpec{
		RecipientType: entity.RecipientTypeRole,
		RecipientRole: entity.RoleAssociationAdmin,
		Title:         "New spa registration",
		Message:       fmt.Sprintf("%s (%s) submitted a registration and is awaiting verification.", in.Name, in.ReferenceNumber),
		Type:          "registration",
		RelatedType:   "spa",
	})
	return d, nil
}

type SubmitTherapistInput struct {
	FullName       string
	Email          string
	IdentityNumber string
}

// DecideSubmitTherapist creates a pending therapist under a spa. A prior
// record for the same identity that ended in terminated blocks re-registration
// under a different spa; only the appeal-clearance path may reset that.
func DecideSubmitTherapist(spa *entity.Spa, prior *entity.Therapist, in SubmitTherapistInput, actor Actor, now time.Time) (*Decision, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return nil, apperror.Validation("therapist full name is required", "full_name")
	}
	if spa.Status == entity.SpaStatusRejected {
		return nil, apperror.InvalidTransition("a rejected spa cannot submit therapists")
	}
	if prior != nil && prior.Status == entity.TherapistStatusTerminated && prior.SpaId != spa.Id {
		return nil, apperror.InvalidTransition("terminated therapist cannot re-register under a different spa")
	}

	t := &entity.Therapist{
		SpaId:          spa.Id,
		FullName:       in.FullName,
		Email:          in.Email,
		IdentityNumber: in.IdentityNumber,
		Status:         entity.TherapistStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	d := &Decision{Mutations: []Mutation{CreateTherapist{Therapist: t}}}
	d.log(ActivityLogSpec{
		TargetType:  "therapist",
		Action:      "submit",
		Actor:       actor,
		NewStatus:   string(entity.TherapistStatusPending),
		Description: fmt.Sprintf("Therapist %s submitted by %s", in.FullName, spa.Name),
	})
	d.notify(NotificationSpec{
		RecipientType: entity.RecipientTypeRole,
		RecipientRole: entity.RoleAssociationAdmin,
		Title:         "New therapist submission",
		Message:       fmt.Sprintf("%s submitted therapist %s for approval.", spa.Name, in.FullName),
		Type:          "registration",
		RelatedType:   "therapist",
	})
	return d, nil
}

func DecideApproveTherapist(t *entity.Therapist, spa *entity.Spa, actor Actor, now time.Time) (*Decision, error) {
	if t.Status != entity.TherapistStatusPending {
		return nil, apperror.InvalidTransition(fmt.Sprintf("therapist is %s, only pending therapists can be approved", t.Status))
	}

	updated := *t
	updated.Status = entity.TherapistStatusApproved
	updated.ApprovedBy = &actor.Id
	updated.ApprovedAt = &now
	updated.UpdatedAt = now

	d := &Decision{Mutations: []Mutation{UpdateTherapist{Therapist: &updated}}}
	d.log(ActivityLogSpec{
		TargetType:  "therapist",
		TargetId:    t.Id,
		Action:      "approve",
		Actor:       actor,
		OldStatus:   string(entity.TherapistStatusPending),
		NewStatus:   string(entity.TherapistStatusApproved),
		Description: fmt.Sprintf("Therapist %s approved by %s", t.FullName, actor.Name),
	})
	d.notify(
		NotificationSpec{
			RecipientType: entity.RecipientTypeSpa,
			RecipientId:   t.SpaId,
			Title:         "Therapist approved",
			Message:       fmt.Sprintf("Therapist %s has been approved.", t.FullName),
			Type:          "approval",
			RelatedType:   "therapist",
			RelatedId:     t.Id,
			Email:         spa.Email,
		},
		NotificationSpec{
			RecipientType: entity.RecipientTypeUser,
			RecipientId:   actor.Id,
			Title:         "Approval recorded",
			Message:       fmt.Sprintf("You approved therapist %s of %s.", t.FullName, spa.Name),
			Type:          "approval",
			RelatedType:   "therapist",
			RelatedId:     t.Id,
		},
	)
	return d, nil
}

func DecideRejectTherapist(t *entity.Therapist, spa *entity.Spa, actor Actor, reason string, now time.Time) (*Decision, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperror.Validation("rejection reason is required", "reason")
	}
	if t.Status != entity.TherapistStatusPending {
		return nil, apperror.InvalidTransition(fmt.Sprintf("therapist is %s, only pending therapists can be rejected", t.Status))
	}

	updated := *t
	updated.Status = entity.TherapistStatusRejected
	updated.RejectReason = &reason
	updated.UpdatedAt = now

	d := &Decision{Mutations: []Mutation{UpdateTherapist{Therapist: &updated}}}
	d.log(ActivityLogSpec{
		TargetType:  "therapist",
		TargetId:    t.Id,
		Action:      "reject",
		Actor:       actor,
		OldStatus:   string(entity.TherapistStatusPending),
		NewStatus:   string(entity.TherapistStatusRejected),
		Description: fmt.Sprintf("Therapist %s rejected: %s", t.FullName, reason),
	})
	d.notify(
		NotificationSpec{
			RecipientType: entity.RecipientTypeSpa,
			RecipientId:   t.SpaId,
			Title:         "Therapist rejected",
			Message:       fmt.Sprintf("Therapist %s was rejected: %s", t.FullName, reason),
			Type:          "rejection",
			RelatedType:   "therapist",
			RelatedId:     t.Id,
			Email:         spa.Email,
		},
		NotificationSpec{
			RecipientType: entity.RecipientTypeUser,
			RecipientId:   actor.Id,
			Title:         "Rejection recorded",
			Message:       fmt.Sprintf("You rejected therapist %s of %s.", t.FullName, spa.Name),
			Type:          "rejection",
			RelatedType:   "therapist",
			RelatedId:     t.Id,
		},
	)
	return d, nil
}

func DecideResignTherapist(t *entity.Therapist, actor Actor, now time.Time) (*Decision, error) {
	if t.Status != entity.TherapistStatusApproved {
		return nil, apperror.InvalidTransition(fmt.Sprintf("therapist is %s, only approved therapists can resign", t.Status))
	}

	updated := *t
	updated.Status = entity.TherapistStatusResigned
	updated.UpdatedAt = now

	d := &Decision{Mutations: []Mutation{UpdateTherapist{Therapist: &updated}}}
	d.log(ActivityLogSpec{
		TargetType:  "therapist",
		TargetId:    t.Id,
		Action:      "resign",
		Actor:       actor,
		OldStatus:   string(entity.TherapistStatusApproved),
		NewStatus:   string(entity.TherapistStatusResigned),
		Description: fmt.Sprintf("Therapist %s resigned", t.FullName),
	})
	d.notify(NotificationSpec{
		RecipientType: entity.RecipientTypeSpa,
		RecipientId:   t.SpaId,
		Title:         "Therapist resigned",
		Message:       fmt.Sprintf("Therapist %s has resigned.", t.FullName),
		Type:          "status_change",
		RelatedType:   "therapist",
		RelatedId:     t.Id,
	})
	return d, nil
}

// DecideTerminateTherapist requires a reason and a supporting-document
// reference; the caller stores the document itself, the engine only validates
// presence.
func DecideTerminateTherapist(t *entity.Therapist, actor Actor, reason, supportingDocRef string, now time.Time) (*Decision, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperror.Validation("termination reason is required", "reason")
	}
	if strings.TrimSpace(supportingDocRef) == "" {
		return nil, apperror.Validation("supporting document reference is required", "supporting_doc_ref")
	}
	if t.Status != entity.TherapistStatusApproved {
		return nil, apperror.InvalidTransition(fmt.Sprintf("therapist is %s, only approved therapists can be terminated", t.Status))
	}

	updated := *t
	updated.Status = entity.TherapistStatusTerminated
	updated.RejectReason = &reason
	updated.SupportingDocRef = &supportingDocRef
	updated.UpdatedAt = now

	d := &Decision{Mutations: []Mutation{UpdateTherapist{Therapist: &updated}}}
	d.log(ActivityLogSpec{
		TargetType:  "therapist",
		TargetId:    t.Id,
		Action:      "terminate",
		Actor:       actor,
		OldStatus:   string(entity.TherapistStatusApproved),
		NewStatus:   string(entity.TherapistStatusTerminated),
		Description: fmt.Sprintf("Therapist %s terminated: %s", t.FullName, reason),
	})
	d.notify(NotificationSpec{
		RecipientType: entity.RecipientTypeSpa,
		RecipientId:   t.SpaId,
		Title:         "Therapist terminated",
		Message:       fmt.Sprintf("Therapist %s was terminated: %s", t.FullName, reason),
		Type:          "status_change",
		RelatedType:   "therapist",
		RelatedId:     t.Id,
	})
	return d, nil
}

// DecideInitiatePayment resolves the plan from the fixed catalogue. Card
// payments settle synchronously and advance the spa's billing flags in the
// same decision; bank transfers stay pending until an association-admin
// resolution and leave the spa untouched.
func DecideInitiatePayment(spa *entity.Spa, planId string, method entity.PaymentMethod, bank *entity.BankDetails, referenceNumber string, actor Actor, now time.Time) (*Decision, error) {
	plan := billing.PlanById(planId)
	if plan == nil {
		return nil, apperror.InvalidPlan(planId)
	}

	switch method {
	case entity.PaymentMethodCard, entity.PaymentMethodBankTransfer:
	default:
		return nil, apperror.Validation("unsupported payment method", "method")
	}
	if method == entity.PaymentMethodBankTransfer {
		if bank == nil || strings.TrimSpace(bank.BankName) == "" || strings.TrimSpace(bank.AccountName) == "" {
			return nil, apperror.Validation("bank details are required for bank transfers", "bank_details")
		}
	}

	payment := &entity.Payment{
		SpaId:           spa.Id,
		ReferenceNumber: referenceNumber,
		Type:            plan.Type,
		Method:          method,
		PlanId:          plan.Id,
		Amount:          plan.Amount,
		DurationMonths:  plan.DurationMonths,
		Status:          entity.PaymentStatusPending,
		BankDetails:     bank,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	d := &Decision{}

	if method == entity.PaymentMethodCard {
		// Card confirmation is opaque and synchronous: no pending window.
		payment.Status = entity.PaymentStatusCompleted
		resolvedAt := now
		payment.ResolvedAt = &resolvedAt

		updatedSpa := *spa
		updatedSpa.AnnualFeePaid = true
		next := now.AddDate(0, plan.DurationMonths, 0)
		updatedSpa.NextPaymentDate = &next
		updatedSpa.UpdatedAt = now

		d.Mutations = []Mutation{CreatePayment{Payment: payment}, UpdateSpa{Spa: &updatedSpa}}
		d.log(ActivityLogSpec{
			TargetType:  "payment",
			Action:      "initiate",
			Actor:       actor,
			NewStatus:   string(entity.PaymentStatusCompleted),
			Description: fmt.Sprintf("%s paid %d by card for plan %s (%s)", spa.Name, plan.Amount, plan.Id, referenceNumber),
		})
		d.notify(NotificationSpec{
			RecipientType: entity.RecipientTypeSpa,
			RecipientId:   spa.Id,
			Title:         "Payment completed",
			Message:       fmt.Sprintf("Your card payment of %d for plan %s is complete.", plan.Amount, plan.DisplayName),
			Type:          "payment",
			RelatedType:   "payment",
			Email:         spa.Email,
		})
		d.Events = append(d.Events, EventSpec{
			Type: "payment.settled",
			Payload: map[string]interface{}{
				"spa_id":    spa.Id,
				"plan_id":   plan.Id,
				"amount":    plan.Amount,
				"method":    string(method),
				"reference": referenceNumber,
			},
		})
		return d, nil
	}

	d.Mutations = []Mutation{CreatePayment{Payment: payment}}
	d.log(ActivityLogSpec{
		TargetType:  "payment",
		Action:      "initiate",
		Actor:       actor,
		NewStatus:   string(entity.PaymentStatusPending),
		Description: fmt.Sprintf("%s initiated a bank transfer of %d for plan %s (%s)", spa.Name, plan.Amount, plan.Id, referenceNumber),
	})
	d.notify(NotificationSpec{
		RecipientType: entity.RecipientTypeRole,
		RecipientRole: entity.RoleAssociationAdmin,
		Title:         "Bank transfer awaiting review",
		Message:       fmt.Sprintf("%s submitted a bank transfer of %d for plan %s.", spa.Name, plan.Amount, plan.DisplayName),
		Type:          "payment",
		RelatedType:   "payment",
	})
	return d, nil
}

type ResolveDecision string

const (
	ResolveApprove ResolveDecision = "approve"
	ResolveReject  ResolveDecision = "reject"
)

func DecideResolveBankTransfer(p *entity.Payment, spa *entity.Spa, decision ResolveDecision, actor Actor, now time.Time) (*Decision, error) {
	if decision != ResolveApprove && decision != ResolveReject {
		return nil, apperror.Validation("decision must be approve or reject", "decision")
	}
	if p.Method != entity.PaymentMethodBankTransfer {
		return nil, apperror.InvalidTransition("only bank transfers require resolution")
	}
	if p.Status != entity.PaymentStatusPending {
		return nil, apperror.InvalidTransition(fmt.Sprintf("payment is %s and is immutable", p.Status))
	}

	updated := *p
	updated.ResolvedBy = &actor.Id
	updated.ResolvedAt = &now
	updated.UpdatedAt = now

	d := &Decision{}

	if decision == ResolveApprove {
		updated.Status = entity.PaymentStatusCompleted
		updated.BankTransferApproved = true

		updatedSpa := *spa
		updatedSpa.AnnualFeePaid = true
		next := now.AddDate(0, p.DurationMonths, 0)
		updatedSpa.NextPaymentDate = &next
		updatedSpa.UpdatedAt = now

		d.Mutations = []Mutation{UpdatePayment{Payment: &updated}, UpdateSpa{Spa: &updatedSpa}}
		d.Events = append(d.Events, EventSpec{
			Type: "payment.settled",
			Payload: map[string]interface{}{
				"spa_id":    spa.Id,
				"plan_id":   p.PlanId,
				"amount":    p.Amount,
				"method":    string(p.Method),
				"reference": p.ReferenceNumber,
			},
		})
	} else {
		updated.Status = entity.PaymentStatusRejected
		d.Mutations = []Mutation{UpdatePayment{Payment: &updated}}
	}

	d.log(ActivityLogSpec{
		TargetType:  "payment",
		TargetId:    p.Id,
		Action:      "resolve_bank_transfer",
		Actor:       actor,
		OldStatus:   string(entity.PaymentStatusPending),
		NewStatus:   string(updated.Status),
		Description: fmt.Sprintf("Bank transfer %s %sd by %s", p.ReferenceNumber, decision, actor.Name),
	})
	d.notify(NotificationSpec{
		RecipientType: entity.RecipientTypeSpa,
		RecipientId:   p.SpaId,
		Title:         fmt.Sprintf("Bank transfer %sd", decision),
		Message:       fmt.Sprintf("Your bank transfer %s of %d was %sd.", p.ReferenceNumber, p.Amount, decision),
		Type:          "payment",
		RelatedType:   "payment",
		RelatedId:     p.Id,
		Email:         spa.Email,
	})
	return d, nil
}

type VerifyDecision string

const (
	VerifyApprove VerifyDecision = "approve"
	VerifyReject  VerifyDecision = "reject"
)

func DecideVerifySpa(spa *entity.Spa, decision VerifyDecision, reason string, actor Actor, now time.Time) (*Decision, error) {
	if decision != VerifyApprove && decision != VerifyReject {
		return nil, apperror.Validation("decision must be approve or reject", "decision")
	}
	if decision == VerifyReject && strings.TrimSpace(reason) == "" {
		return nil, apperror.Validation("rejection reason is required", "reason")
	}
	if spa.Status != entity.SpaStatusPending {
		return nil, apperror.InvalidTransition(fmt.Sprintf("spa is %s, only pending spas can be verified", spa.Status))
	}

	updated := *spa
	updated.UpdatedAt = now

	var eventType string
	if decision == VerifyApprove {
		updated.Status = entity.SpaStatusVerified
		updated.VerifiedBy = &actor.Id
		updated.VerifiedAt = &now
		eventType = "spa.verified"
	} else {
		updated.Status = entity.SpaStatusRejected
		updated.RejectReason = &reason
		eventType = "spa.rejected"
	}

	d := &Decision{Mutations: []Mutation{UpdateSpa{Spa: &updated}}}
	d.log(ActivityLogSpec{
		TargetType:  "spa",
		TargetId:    spa.Id,
		Action:      "verify",
		Actor:       actor,
		OldStatus:   string(entity.SpaStatusPending),
		NewStatus:   string(updated.Status),
		Description: fmt.Sprintf("Spa %s verification: %s", spa.Name, updated.Status),
	})
	msg := fmt.Sprintf("Your registration %s has been verified.", spa.ReferenceNumber)
	notifType := "approval"
	if decision == VerifyReject {
		msg = fmt.Sprintf("Your registration %s was rejected: %s", spa.ReferenceNumber, reason)
		notifType = "rejection"
	}
	d.notify(NotificationSpec{
		RecipientType: entity.RecipientTypeSpa,
		RecipientId:   spa.Id,
		Title:         "Registration decision",
		Message:       msg,
		Type:          notifType,
		RelatedType:   "spa",
		RelatedId:     spa.Id,
		Email:         spa.Email,
	})
	d.Events = append(d.Events, EventSpec{
		Type: eventType,
		Payload: map[string]interface{}{
			"spa_id":    spa.Id,
			"reference": spa.ReferenceNumber,
		},
	})
	return d, nil
}

func DecideBlacklistSpa(spa *entity.Spa, reason string, actor Actor, now time.Time) (*Decision, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperror.Validation("blacklist reason is required", "reason")
	}
	if spa.Status == entity.SpaStatusRejected {
		return nil, apperror.InvalidTransition("a rejected spa cannot be blacklisted")
	}

	updated := *spa
	updated.BlacklistReason = &reason
	updated.BlacklistedAt = &now
	updated.UpdatedAt = now

	d := &Decision{Mutations: []Mutation{UpdateSpa{Spa: &updated}}}
	d.log(ActivityLogSpec{
		TargetType:  "spa",
		TargetId:    spa.Id,
		Action:      "blacklist",
		Actor:       actor,
		OldStatus:   string(spa.Status),
		NewStatus:   string(spa.Status),
		Description: fmt.Sprintf("Spa %s blacklisted: %s", spa.Name, reason),
	})
	d.notify(NotificationSpec{
		RecipientType: entity.RecipientTypeSpa,
		RecipientId:   spa.Id,
		Title:         "Spa blacklisted",
		Message:       fmt.Sprintf("Your spa has been blacklisted: %s", reason),
		Type:          "blacklist",
		RelatedType:   "spa",
		RelatedId:     spa.Id,
		Email:         spa.Email,
	})
	d.Events = append(d.Events, EventSpec{
		Type: "spa.blacklisted",
		Payload: map[string]interface{}{
			"spa_id":    spa.Id,
			"reference": spa.ReferenceNumber,
			"reason":    reason,
		},
	})
	return d, nil
}

// DecideClearBlacklist is idempotent: clearing an already-clear spa returns a
// nil decision, which the caller treats as a no-op success with no log row.
func DecideClearBlacklist(spa *entity.Spa, actor Actor, now time.Time) (*Decision, error) {
	if !spa.IsBlacklisted() {
		return nil, nil
	}

	updated := *spa
	updated.BlacklistReason = nil
	updated.BlacklistedAt = nil
	updated.UpdatedAt = now

	d := &Decision{Mutations: []Mutation{UpdateSpa{Spa: &updated}}}
	d.log(ActivityLogSpec{
		TargetType:  "spa",
		TargetId:    spa.Id,
		Action:      "clear_blacklist",
		Actor:       actor,
		OldStatus:   string(spa.Status),
		NewStatus:   string(spa.Status),
		Description: fmt.Sprintf("Blacklist cleared for spa %s", spa.Name),
	})
	d.notify(NotificationSpec{
		RecipientType: entity.RecipientTypeSpa,
		RecipientId:   spa.Id,
		Title:         "Blacklist cleared",
		Message:       "Your spa has been removed from the blacklist.",
		Type:          "blacklist",
		RelatedType:   "spa",
		RelatedId:     spa.Id,
		Email:         spa.Email,
	})
	return d, nil
}
