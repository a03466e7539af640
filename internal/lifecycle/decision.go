package lifecycle

import (
	"spa-registry-be/internal/entity"
)

// Decision is the pure output of a lifecycle rule: the ordered mutations, the
// activity-log entry and the notification rows to commit as one unit, plus the
// integration events to emit after the commit. Nothing here has been applied
// yet.
type Decision struct {
	Mutations     []Mutation
	Log           ActivityLogSpec
	Notifications []NotificationSpec
	Events        []EventSpec
}

// Mutation is one ledger write. The executor applies mutations in slice order
// inside a single transaction.
type Mutation interface {
	isMutation()
}

type CreateSpa struct{ Spa *entity.Spa }
type UpdateSpa struct{ Spa *entity.Spa }
type CreateTherapist struct{ Therapist *entity.Therapist }
type UpdateTherapist struct{ Therapist *entity.Therapist }
type CreatePayment struct{ Payment *entity.Payment }
type UpdatePayment struct{ Payment *entity.Payment }

func (CreateSpa) isMutation()       {}
func (UpdateSpa) isMutation()       {}
func (CreateTherapist) isMutation() {}
func (UpdateTherapist) isMutation() {}
func (CreatePayment) isMutation()   {}
func (UpdatePayment) isMutation()   {}

// Actor identifies who issued the command, for the activity log and the
// actor-directed notification copy.
type Actor struct {
	Type entity.ActorType
	Id   uint
	Name string
}

type ActivityLogSpec struct {
	TargetType  string
	TargetId    uint
	Action      string
	Actor       Actor
	OldStatus   string
	NewStatus   string
	Description string
}

// NotificationSpec describes one durable notification row. Email carries the
// best-effort delivery address when the recipient should also be mailed; it is
// dispatch metadata only and never stored.
type NotificationSpec struct {
	RecipientType entity.RecipientType
	RecipientId   uint
	RecipientRole string
	Title         string
	Message       string
	Type          string
	RelatedType   string
	RelatedId     uint
	Email         string
}

// EventSpec is an outbound integration event, published to the event bus only
// after the transaction commits.
type EventSpec struct {
	Type    string
	Payload map[string]interface{}
}

// Spa returns the spa row this decision writes, if any.
func (d *Decision) Spa() *entity.Spa {
	for _, m := range d.Mutations {
		switch mut := m.(type) {
		case CreateSpa:
			return mut.Spa
		case UpdateSpa:
			return mut.Spa
		}
	}
	return nil
}

// Therapist returns the therapist row this decision writes, if any.
func (d *Decision) Therapist() *entity.Therapist {
	for _, m := range d.Mutations {
		switch mut := m.(type) {
		case CreateTherapist:
			return mut.Therapist
		case UpdateTherapist:
			return mut.Therapist
		}
	}
	return nil
}

// Payment returns the payment row this decision writes, if any.
func (d *Decision) Payment() *entity.Payment {
	for _, m := range d.Mutations {
		switch mut := m.(type) {
		case CreatePayment:
			return mut.Payment
		case UpdatePayment:
			return mut.Payment
		}
	}
	return nil
}

func (d *Decision) log(spec ActivityLogSpec) *Decision {
	d.Log = spec
	return d
}

func (d *Decision) notify(specs ...NotificationSpec) *Decision {
	d.Notifications = append(d.Notifications, specs...)
	return d
}
