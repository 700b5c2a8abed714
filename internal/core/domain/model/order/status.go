package order

import (
	"fmt"

	"sibcargo/internal/pkg/errs"
)

// Status represents the lifecycle state of a freight order.
// It is a closed enum: the enum value is the single source of truth, and the
// persistence name and display text are derived from it through fixed mapping
// tables, never through runtime case coercion.
//
// State transitions:
//
//	Draft ──> Pending ──> Confirmed ──> InProgress ──> Completed
//	  │          │            │             │
//	  └──────────┴────────────┴─────────────┴──> Cancelled
//
// The intake flow only ever produces Pending orders; all later transitions
// belong to manager tooling.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusDraft is an order still being assembled and not yet submitted.
	StatusDraft

	// StatusPending is a submitted order awaiting manager confirmation.
	// This is the status the intake flow produces at the confirm transition.
	StatusPending

	// StatusConfirmed is an order accepted by a manager.
	StatusConfirmed

	// StatusInProgress is an order currently being fulfilled.
	StatusInProgress

	// StatusCompleted is a delivered order. Final state.
	StatusCompleted

	// StatusCancelled is an abandoned order. Final state.
	StatusCancelled
)

// statusNames maps statuses to their canonical persistence names.
func statusNames() map[Status]string {
	return map[Status]string{
		StatusDraft:      "draft",
		StatusPending:    "pending",
		StatusConfirmed:  "confirmed",
		StatusInProgress: "in_progress",
		StatusCompleted:  "completed",
		StatusCancelled:  "cancelled",
	}
}

// statusDisplay maps statuses to the emoji and Russian text shown to users.
func statusDisplay() map[Status]struct {
	Emoji string
	Text  string
} {
	return map[Status]struct {
		Emoji string
		Text  string
	}{
		StatusDraft:      {"📝", "Черновик"},
		StatusPending:    {"⏳", "Ожидает подтверждения"},
		StatusConfirmed:  {"✅", "Подтверждён"},
		StatusInProgress: {"🚚", "В процессе доставки"},
		StatusCompleted:  {"✔️", "Завершён"},
		StatusCancelled:  {"❌", "Отменён"},
	}
}

// allowedTransitions defines the directed graph of valid status changes.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusDraft:      {StatusPending, StatusCancelled},
		StatusPending:    {StatusConfirmed, StatusCancelled},
		StatusConfirmed:  {StatusInProgress, StatusCancelled},
		StatusInProgress: {StatusCompleted, StatusCancelled},
		// Final states: no further transitions.
		StatusCompleted: {},
		StatusCancelled: {},
	}
}

// StatusFromName resolves a canonical persistence name back to a Status.
// Returns an error for names outside the closed enum.
func StatusFromName(name string) (Status, error) {
	for status, statusName := range statusNames() {
		if statusName == name {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status name", name))
}

// Validate checks if the Status value belongs to the closed enum.
func (s Status) Validate() error {
	if _, ok := statusNames()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// Name returns the canonical persistence name of the status, e.g. "pending".
// Returns "unknown" for invalid values.
func (s Status) Name() string {
	if name, ok := statusNames()[s]; ok {
		return name
	}
	return "unknown"
}

// String implements fmt.Stringer and is an alias for Name.
func (s Status) String() string {
	return s.Name()
}

// DisplayText returns the Russian user-facing text for the status.
func (s Status) DisplayText() string {
	if d, ok := statusDisplay()[s]; ok {
		return d.Text
	}
	return "Неизвестно"
}

// Emoji returns the emoji shown next to the status in order listings.
func (s Status) Emoji() string {
	if d, ok := statusDisplay()[s]; ok {
		return d.Emoji
	}
	return "❓"
}

// IsFinal reports whether no further transitions are allowed from the status.
func (s Status) IsFinal() bool {
	allowed, ok := allowedTransitions()[s]
	return ok && len(allowed) == 0
}

// CanTransitionTo reports whether the change from s to target is a valid
// lifecycle transition. A no-op transition to the same status is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	if s == target {
		return true
	}
	allowed, ok := allowedTransitions()[s]
	if !ok {
		return false
	}
	for _, candidate := range allowed {
		if candidate == target {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs the transition from s to target.
//
// Returns:
//   - (target, nil) on a valid transition
//   - (StatusUnknown, error) if the transition is not allowed
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return StatusUnknown, err
	}
	if !s.CanTransitionTo(target) {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("transition %s -> %s is not allowed", s.Name(), target.Name()),
		)
	}
	return target, nil
}
