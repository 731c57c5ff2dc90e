package availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/pharmflow/pharmflow/internal/domain/schedule"
	svc "github.com/pharmflow/pharmflow/internal/domain/service"
)

type Decision string

const (
	DecisionConfirmed  Decision = "confirmed"
	DecisionWaitlisted Decision = "waitlisted"
	DecisionRejected   Decision = "rejected"
)

// Request is a proposed booking to classify. ExcludeBookingID carries the
// id of the booking being edited, if any, so that it does not conflict with
// the slot it already holds.
type Request struct {
	ServiceID  uuid.UUID
	PharmacyID uuid.UUID
	Day        time.Time
	Start      schedule.TimeOfDay
	ClientName string

	// AllowWaitlist is the caller's explicit opt-in to overflow semantics.
	// The engine never falls back to the waitlist on its own.
	AllowWaitlist bool

	ExcludeBookingID *uuid.UUID
}

type Outcome struct {
	Decision Decision `json:"decision"`
	Reason   string   `json:"reason,omitempty"`
}

func rejected(reason string) Outcome {
	return Outcome{Decision: DecisionRejected, Reason: reason}
}

// Classify decides whether the request becomes a confirmed booking, a
// waitlist entry, or is rejected. day must be the resolved availability for
// req.Day with req.ExcludeBookingID already applied. Classify only decides;
// persistence and the write-time uniqueness race belong to the caller.
func Classify(req Request, service *svc.Service, day DayAvailability) Outcome {
	// Structural violations are always rejections, regardless of the
	// waitlist flag.
	if req.ServiceID == uuid.Nil || req.PharmacyID == uuid.Nil {
		return rejected("booking requires a service and a pharmacy")
	}
	if service == nil || req.ServiceID != service.ID {
		return rejected("unknown service")
	}
	if req.PharmacyID != service.PharmacyID {
		return rejected("service does not belong to the requested pharmacy")
	}
	if req.ClientName == "" {
		return rejected("booking requires a client name")
	}
	if !req.Start.Valid() {
		return rejected("invalid start time")
	}

	slot := day.SlotAt(req.Start)
	switch {
	case slot == nil:
		if req.AllowWaitlist {
			return Outcome{Decision: DecisionWaitlisted, Reason: "time is outside service hours"}
		}
		return rejected("time is outside service hours")
	case !slot.Available:
		if req.AllowWaitlist {
			return Outcome{Decision: DecisionWaitlisted, Reason: "slot occupied"}
		}
		return rejected("slot occupied")
	default:
		return Outcome{Decision: DecisionConfirmed}
	}
}
