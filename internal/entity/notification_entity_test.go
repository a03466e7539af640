package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotificationTopic(t *testing.T) {
	spaRow := Notification{RecipientType: RecipientTypeSpa, RecipientId: 42}
	assert.Equal(t, "spa:42", spaRow.Topic())

	userRow := Notification{RecipientType: RecipientTypeUser, RecipientId: 7}
	assert.Equal(t, "user:7", userRow.Topic())

	roleRow := Notification{RecipientType: RecipientTypeRole, RecipientRole: RoleAssociationAdmin}
	assert.Equal(t, "role:lsa", roleRow.Topic())
}

func TestPaymentDisplayStatus(t *testing.T) {
	pendingTransfer := Payment{Method: PaymentMethodBankTransfer, Status: PaymentStatusPending}
	assert.Equal(t, "pending_approval", pendingTransfer.DisplayStatus())

	completed := Payment{Method: PaymentMethodBankTransfer, Status: PaymentStatusCompleted}
	assert.Equal(t, "completed", completed.DisplayStatus())

	pendingCard := Payment{Method: PaymentMethodCard, Status: PaymentStatusPending}
	assert.Equal(t, "pending", pendingCard.DisplayStatus())
}

func TestPaymentResolved(t *testing.T) {
	pending := Payment{Status: PaymentStatusPending}
	completed := Payment{Status: PaymentStatusCompleted}
	rejected := Payment{Status: PaymentStatusRejected}

	assert.False(t, pending.Resolved())
	assert.True(t, completed.Resolved())
	assert.True(t, rejected.Resolved())
}
