package intake

import (
	"fmt"

	"sibcargo/internal/pkg/errs"
)

// Step identifies the current question of the order intake dialog.
// A session walks the steps strictly in order; the only other moves are
// cancellation (from any step) and staying put on invalid input.
type Step int

const (
	// StepUnknown represents an invalid or undefined step.
	StepUnknown Step = iota

	// StepAwaitingDate waits for the pickup date.
	StepAwaitingDate

	// StepAwaitingTime waits for the pickup time slot.
	StepAwaitingTime

	// StepAwaitingPickupAddress waits for the free-text pickup address.
	StepAwaitingPickupAddress

	// StepAwaitingDropoffAddress waits for the free-text drop-off address.
	StepAwaitingDropoffAddress

	// StepAwaitingWeight waits for the cargo weight in kilograms.
	StepAwaitingWeight

	// StepAwaitingConfirmation waits for the final confirm or cancel answer.
	StepAwaitingConfirmation
)

func stepNames() map[Step]string {
	return map[Step]string{
		StepAwaitingDate:           "awaiting_date",
		StepAwaitingTime:           "awaiting_time",
		StepAwaitingPickupAddress:  "awaiting_pickup_address",
		StepAwaitingDropoffAddress: "awaiting_dropoff_address",
		StepAwaitingWeight:         "awaiting_weight",
		StepAwaitingConfirmation:   "awaiting_confirmation",
	}
}

// Validate checks if the Step value belongs to the closed enum.
func (s Step) Validate() error {
	if _, ok := stepNames()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"step", fmt.Errorf("%d is not a valid intake step", s))
	}
	return nil
}

// Name returns the canonical name of the step, e.g. "awaiting_weight".
// Returns "unknown" for invalid values.
func (s Step) Name() string {
	if name, ok := stepNames()[s]; ok {
		return name
	}
	return "unknown"
}

// String implements fmt.Stringer and is an alias for Name.
func (s Step) String() string {
	return s.Name()
}

// Next returns the step that follows s in the dialog.
// StepAwaitingConfirmation is terminal and returns itself.
func (s Step) Next() Step {
	if s >= StepAwaitingDate && s < StepAwaitingConfirmation {
		return s + 1
	}
	return s
}
