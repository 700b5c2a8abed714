// Package intake orchestrates the multi-step order-intake conversation:
// one state-machine session per telegram user, fed by chat events and
// replying with formatted messages plus keyboard hints.
package intake

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"sibcargo/internal/core/application/usecases/commands"
	intakemodel "sibcargo/internal/core/domain/model/intake"
	"sibcargo/internal/core/domain/model/kernel"
	"sibcargo/internal/core/domain/model/order"
	"sibcargo/internal/core/domain/services"
	"sibcargo/internal/pkg/errs"
)

// OrderConfirmer persists a completed draft as a pending order.
type OrderConfirmer interface {
	Handle(ctx context.Context, cmd commands.ConfirmOrderCommand) (*order.Order, error)
}

// session is one user's in-flight conversation. Events for a session are
// serialized on its mutex; different users proceed concurrently.
type session struct {
	mu         sync.Mutex
	draft      *intakemodel.Draft
	step       intakemodel.Step
	lastActive time.Time
	closed     bool
}

// Machine drives the order-intake conversation. It owns one session slot per
// telegram user id; starting a fresh intake discards any prior conversation
// for that user unconditionally.
type Machine struct {
	resolver  *services.AddressResolver
	tariff    services.Tariff
	confirmer OrderConfirmer
	location  *time.Location
	logger    *slog.Logger
	now       func() time.Time

	mu       sync.Mutex
	sessions map[int64]*session
}

// NewMachine creates the intake state machine. A nil location defaults to
// time.Local, a nil logger to slog.Default().
func NewMachine(
	resolver *services.AddressResolver,
	tariff services.Tariff,
	confirmer OrderConfirmer,
	location *time.Location,
	logger *slog.Logger,
) (*Machine, error) {
	if resolver == nil {
		return nil, errs.NewValueIsRequiredError("resolver")
	}
	if confirmer == nil {
		return nil, errs.NewValueIsRequiredError("confirmer")
	}
	if location == nil {
		location = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Machine{
		resolver:  resolver,
		tariff:    tariff,
		confirmer: confirmer,
		location:  location,
		logger:    logger,
		now:       time.Now,
		sessions:  make(map[int64]*session),
	}, nil
}

// Start opens a fresh conversation for the user, discarding any prior one.
func (m *Machine) Start(userID int64) []Reply {
	m.mu.Lock()
	if prior, ok := m.sessions[userID]; ok {
		prior.closed = true
	}
	m.sessions[userID] = &session{
		draft:      intakemodel.NewDraft(),
		step:       intakemodel.StepAwaitingDate,
		lastActive: m.now(),
	}
	m.mu.Unlock()

	return reply(textStartIntake, KeyboardCalendar)
}

// HasActiveSession reports whether the user has an in-flight conversation.
func (m *Machine) HasActiveSession(userID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[userID]
	return ok
}

// ActiveSessions returns the number of in-flight conversations.
func (m *Machine) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// ChooseDate handles a calendar selection while awaiting the pickup date.
func (m *Machine) ChooseDate(userID int64, date time.Time) []Reply {
	return m.withSession(userID, func(s *session) []Reply {
		if s.step != intakemodel.StepAwaitingDate {
			return nil
		}

		if err := s.draft.SetDate(date, m.now()); err != nil {
			return reply(textPastDate, KeyboardNone)
		}

		s.step = s.step.Next()
		return reply(textDateChosen(s.draft.PickupDate()), KeyboardTimeSlots)
	})
}

// ChooseTimeSlot handles a time-slot selection while awaiting the pickup time.
func (m *Machine) ChooseTimeSlot(userID int64, slot string) []Reply {
	return m.withSession(userID, func(s *session) []Reply {
		if s.step != intakemodel.StepAwaitingTime {
			return nil
		}

		if err := s.draft.SetTimeSlot(slot); err != nil {
			return reply(textBadTimeSlot, KeyboardTimeSlots)
		}

		pickupAt, err := s.draft.PickupAt(m.location)
		if err != nil {
			return reply(textBadTimeSlot, KeyboardTimeSlots)
		}

		s.step = s.step.Next()
		return []Reply{
			{Text: textTimeChosen(pickupAt)},
			{Text: textPickupAddressHint, Keyboard: KeyboardCancel},
		}
	})
}

// HandleText routes a free-text message to the step that expects it. The
// cancel caption tears the conversation down from any text-driven step.
func (m *Machine) HandleText(ctx context.Context, userID int64, text string) []Reply {
	if strings.TrimSpace(text) == CancelButtonText {
		return m.Cancel(userID)
	}

	return m.withSession(userID, func(s *session) []Reply {
		switch s.step {
		case intakemodel.StepAwaitingPickupAddress:
			return m.handlePickupAddress(ctx, s, text)
		case intakemodel.StepAwaitingDropoffAddress:
			return m.handleDropoffAddress(ctx, s, text)
		case intakemodel.StepAwaitingWeight:
			return m.handleWeight(s, text)
		default:
			return nil
		}
	})
}

// Confirm persists the draft as a pending order and closes the conversation.
// A persistence failure keeps the conversation alive so the user can retry.
func (m *Machine) Confirm(ctx context.Context, userID int64) []Reply {
	replies := m.withSession(userID, func(s *session) []Reply {
		if s.step != intakemodel.StepAwaitingConfirmation {
			// Stale button from an earlier message; the conversation moved on.
			return []Reply{}
		}

		pickupAt, err := s.draft.PickupAt(m.location)
		if err != nil {
			m.logger.Error("intake draft is incomplete at confirmation",
				slog.Int64("user_id", userID), slog.Any("error", err))
			return reply(textConfirmFailed, KeyboardNone)
		}

		cmd, err := commands.NewConfirmOrderCommand(
			kernel.NewUUID(),
			userID,
			pickupAt,
			s.draft.Pickup(),
			s.draft.Dropoff(),
			s.draft.WeightKg(),
			s.draft.DistanceKm(),
			s.draft.PriceRub(),
			"",
		)
		if err != nil {
			m.logger.Error("intake draft produced an invalid order command",
				slog.Int64("user_id", userID), slog.Any("error", err))
			return reply(textConfirmFailed, KeyboardNone)
		}

		created, err := m.confirmer.Handle(ctx, cmd)
		if err != nil {
			m.logger.Error("order creation failed",
				slog.Int64("user_id", userID), slog.Any("error", err))
			return reply(textConfirmFailed, KeyboardNone)
		}

		s.closed = true
		m.logger.Info("order created",
			slog.String("order_id", created.ID().String()),
			slog.Int64("user_id", userID))

		return []Reply{
			{Text: textOrderCreated(OrderRef(created.ID()))},
			{Text: textChooseAction, Keyboard: KeyboardMainMenu},
		}
	})

	if replies == nil {
		return reply(textNoActiveIntake, KeyboardNone)
	}

	m.reapClosed(userID)
	return replies
}

// RejectConfirmation handles the decline button on the confirmation summary.
func (m *Machine) RejectConfirmation(userID int64) []Reply {
	replies := m.withSession(userID, func(s *session) []Reply {
		if s.step != intakemodel.StepAwaitingConfirmation {
			return []Reply{}
		}
		s.closed = true
		return []Reply{
			{Text: textOrderRejected},
			{Text: textChooseAction, Keyboard: KeyboardMainMenu},
		}
	})

	if replies == nil {
		return reply(textNoActiveIntake, KeyboardNone)
	}

	m.reapClosed(userID)
	return replies
}

// Cancel tears down the user's conversation from any step. It acknowledges
// even when no conversation is active, mirroring the cancel button being a
// global menu action.
func (m *Machine) Cancel(userID int64) []Reply {
	m.withSession(userID, func(s *session) []Reply {
		s.closed = true
		return nil
	})
	m.reapClosed(userID)

	return reply(textIntakeCancelled, KeyboardMainMenu)
}

// Sweep discards conversations idle longer than ttl and returns how many
// were removed.
func (m *Machine) Sweep(ttl time.Duration) int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for userID, s := range m.sessions {
		if now.Sub(s.lastActive) > ttl {
			s.closed = true
			delete(m.sessions, userID)
			removed++
		}
	}
	return removed
}

func (m *Machine) handlePickupAddress(ctx context.Context, s *session, text string) []Reply {
	point := m.resolver.Resolve(ctx, text)
	if point == nil {
		return reply(textAddressNotFound(text), KeyboardCancel)
	}

	s.draft.SetPickup(order.Waypoint{Address: text, Point: point})
	s.step = s.step.Next()
	return reply(textPickupResolved(text), KeyboardCancel)
}

func (m *Machine) handleDropoffAddress(ctx context.Context, s *session, text string) []Reply {
	point := m.resolver.Resolve(ctx, text)
	if point == nil {
		return reply(textAddressNotFound(text), KeyboardCancel)
	}

	s.draft.SetDropoff(order.Waypoint{Address: text, Point: point})
	s.step = s.step.Next()
	return reply(textDropoffResolved(text, point.Latitude(), point.Longitude()), KeyboardCancel)
}

func (m *Machine) handleWeight(s *session, text string) []Reply {
	if err := s.draft.SetWeightFromText(text); err != nil {
		switch {
		case errors.Is(err, intakemodel.ErrWeightTooSmall):
			return reply(textWeightTooSmall, KeyboardNone)
		case errors.Is(err, intakemodel.ErrWeightTooLarge):
			return reply(textWeightTooLarge, KeyboardNone)
		default:
			return reply(textWeightNotANumber, KeyboardNone)
		}
	}

	distanceKm := m.quoteDistance(s)
	priceRub := m.tariff.Quote(distanceKm, s.draft.WeightKg())
	s.draft.SetQuote(distanceKm, priceRub)

	pickupAt, err := s.draft.PickupAt(m.location)
	if err != nil {
		return reply(textWeightNotANumber, KeyboardNone)
	}

	s.step = s.step.Next()
	return reply(textSummary(s.draft, pickupAt), KeyboardConfirm)
}

// quoteDistance computes the great-circle distance between the resolved
// waypoints, substituting the fixed fallback when either side is unresolved.
func (m *Machine) quoteDistance(s *session) float64 {
	pickup := s.draft.Pickup().Point
	dropoff := s.draft.Dropoff().Point
	if pickup == nil || dropoff == nil {
		m.logger.Warn("coordinates missing, using fallback distance",
			slog.Float64("fallback_km", intakemodel.FallbackDistanceKm))
		return intakemodel.FallbackDistanceKm
	}

	distanceKm, err := pickup.DistanceKm(*dropoff)
	if err != nil {
		m.logger.Warn("distance computation failed, using fallback distance",
			slog.Float64("fallback_km", intakemodel.FallbackDistanceKm),
			slog.Any("error", err))
		return intakemodel.FallbackDistanceKm
	}
	return distanceKm
}

// withSession runs fn with the user's session locked, serializing events per
// user. It returns nil when the user has no active conversation.
func (m *Machine) withSession(userID int64, fn func(*session) []Reply) []Reply {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	m.mu.Unlock()
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}

	s.lastActive = m.now()
	return fn(s)
}

// reapClosed removes the user's session slot once an event marked it closed.
func (m *Machine) reapClosed(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok && s.closed {
		delete(m.sessions, userID)
	}
}

// OrderRef renders a chat-friendly short order reference from the identifier.
func OrderRef(id kernel.UUID) string {
	return strings.SplitN(id.String(), "-", 2)[0]
}
