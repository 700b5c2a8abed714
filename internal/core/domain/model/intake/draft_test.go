package intake_test

import (
	"testing"
	"time"

	"sibcargo/internal/core/domain/model/intake"
	"sibcargo/internal/core/domain/model/kernel"
	"sibcargo/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)

func TestDraft_SetDate(t *testing.T) {
	t.Run("should accept a future date", func(t *testing.T) {
		d := intake.NewDraft()

		err := d.SetDate(now.AddDate(0, 0, 3), now)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC), d.PickupDate())
	})

	t.Run("should accept today even late in the day", func(t *testing.T) {
		d := intake.NewDraft()

		err := d.SetDate(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), now)

		require.NoError(t, err)
	})

	t.Run("should reject a past date", func(t *testing.T) {
		d := intake.NewDraft()

		err := d.SetDate(now.AddDate(0, 0, -1), now)

		assert.ErrorIs(t, err, intake.ErrDateInPast)
		assert.True(t, d.PickupDate().IsZero())
	})

	t.Run("should truncate the stored date to midnight", func(t *testing.T) {
		d := intake.NewDraft()

		require.NoError(t, d.SetDate(time.Date(2025, 6, 15, 18, 45, 12, 0, time.UTC), now))

		assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), d.PickupDate())
	})
}

func TestDraft_SetTimeSlot(t *testing.T) {
	t.Run("should accept every offered slot", func(t *testing.T) {
		d := intake.NewDraft()
		require.NoError(t, d.SetDate(now, now))

		for _, slot := range intake.TimeSlots() {
			require.NoError(t, d.SetTimeSlot(slot), slot)
		}
		assert.Equal(t, "19:00", d.PickupTime())
	})

	t.Run("should reject a slot before the date is set", func(t *testing.T) {
		d := intake.NewDraft()

		assert.ErrorIs(t, d.SetTimeSlot("10:00"), intake.ErrDateNotSet)
	})

	t.Run("should reject hours outside the offered range", func(t *testing.T) {
		d := intake.NewDraft()
		require.NoError(t, d.SetDate(now, now))

		assert.ErrorIs(t, d.SetTimeSlot("07:00"), intake.ErrTimeSlotInvalid)
		assert.ErrorIs(t, d.SetTimeSlot("20:00"), intake.ErrTimeSlotInvalid)
		assert.ErrorIs(t, d.SetTimeSlot("10:30"), intake.ErrTimeSlotInvalid)
		assert.ErrorIs(t, d.SetTimeSlot("вечером"), intake.ErrTimeSlotInvalid)
	})
}

func TestTimeSlots(t *testing.T) {
	slots := intake.TimeSlots()

	require.Len(t, slots, 12)
	assert.Equal(t, "08:00", slots[0])
	assert.Equal(t, "19:00", slots[11])
}

func TestDraft_PickupAt(t *testing.T) {
	t.Run("should merge date and slot in the given location", func(t *testing.T) {
		d := intake.NewDraft()
		require.NoError(t, d.SetDate(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), now))
		require.NoError(t, d.SetTimeSlot("10:00"))

		got, err := d.PickupAt(time.UTC)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC), got)
	})

	t.Run("should fail while parts are missing", func(t *testing.T) {
		d := intake.NewDraft()

		_, err := d.PickupAt(time.UTC)
		assert.ErrorIs(t, err, intake.ErrDraftIncomplete)

		require.NoError(t, d.SetDate(now, now))
		_, err = d.PickupAt(time.UTC)
		assert.ErrorIs(t, err, intake.ErrDraftIncomplete)
	})
}

func TestParseWeight(t *testing.T) {
	t.Run("should parse plain and decimal input", func(t *testing.T) {
		cases := map[string]float64{
			"500":     500,
			"500.5":   500.5,
			"500,5":   500.5,
			" 42 ":    42,
			"0.1":     0.1,
			"10000":   10000,
			"9999,99": 9999.99,
		}

		for text, want := range cases {
			got, err := intake.ParseWeight(text)

			require.NoError(t, err, text)
			assert.InDelta(t, want, got, 1e-9, text)
		}
	})

	t.Run("should reject non-numeric input", func(t *testing.T) {
		for _, text := range []string{"", "тонна", "12кг", "1.2.3"} {
			_, err := intake.ParseWeight(text)

			assert.ErrorIs(t, err, intake.ErrWeightNotANumber, text)
		}
	})

	t.Run("should reject zero and negative weight", func(t *testing.T) {
		_, err := intake.ParseWeight("0")
		assert.ErrorIs(t, err, intake.ErrWeightTooSmall)

		_, err = intake.ParseWeight("-5")
		assert.ErrorIs(t, err, intake.ErrWeightTooSmall)
	})

	t.Run("should reject weight above the maximum", func(t *testing.T) {
		_, err := intake.ParseWeight("10000.1")
		assert.ErrorIs(t, err, intake.ErrWeightTooLarge)

		_, err = intake.ParseWeight("10001")
		assert.ErrorIs(t, err, intake.ErrWeightTooLarge)
	})
}

func TestDraft_Completeness(t *testing.T) {
	point, err := kernel.NewGeoPoint(55.0084, 82.9357)
	require.NoError(t, err)

	fill := func(d *intake.Draft) {
		require.NoError(t, d.SetDate(now.AddDate(0, 0, 1), now))
		require.NoError(t, d.SetTimeSlot("09:00"))
		d.SetPickup(order.Waypoint{Address: "Новосибирск Кирова 10", Point: &point})
		d.SetDropoff(order.Waypoint{Address: "Барнаул Ленина 5", Point: &point})
		require.NoError(t, d.SetWeightFromText("750,5"))
		d.SetQuote(190.5, 7170)
	}

	t.Run("should be complete after all answers", func(t *testing.T) {
		d := intake.NewDraft()
		fill(d)

		assert.True(t, d.IsComplete())
		assert.Equal(t, 750.5, d.WeightKg())
		assert.Equal(t, 190.5, d.DistanceKm())
		assert.Equal(t, int64(7170), d.PriceRub())
		assert.False(t, d.DistanceIsApproximate())
	})

	t.Run("should be incomplete before the quote", func(t *testing.T) {
		d := intake.NewDraft()
		require.NoError(t, d.SetDate(now, now))
		require.NoError(t, d.SetTimeSlot("09:00"))

		assert.False(t, d.IsComplete())
	})

	t.Run("unresolved coordinates mark the distance approximate", func(t *testing.T) {
		d := intake.NewDraft()
		fill(d)
		d.SetDropoff(order.Waypoint{Address: "где-то в Барнауле"})

		assert.True(t, d.DistanceIsApproximate())
	})
}

func TestStep(t *testing.T) {
	t.Run("should walk the dialog in order", func(t *testing.T) {
		sequence := []intake.Step{
			intake.StepAwaitingDate,
			intake.StepAwaitingTime,
			intake.StepAwaitingPickupAddress,
			intake.StepAwaitingDropoffAddress,
			intake.StepAwaitingWeight,
			intake.StepAwaitingConfirmation,
		}

		for i := 0; i < len(sequence)-1; i++ {
			assert.Equal(t, sequence[i+1], sequence[i].Next())
		}
	})

	t.Run("confirmation is terminal", func(t *testing.T) {
		assert.Equal(t, intake.StepAwaitingConfirmation, intake.StepAwaitingConfirmation.Next())
	})

	t.Run("should validate the closed enum", func(t *testing.T) {
		require.NoError(t, intake.StepAwaitingWeight.Validate())
		require.Error(t, intake.StepUnknown.Validate())
		require.Error(t, intake.Step(99).Validate())
	})

	t.Run("should expose names for logging", func(t *testing.T) {
		assert.Equal(t, "awaiting_weight", intake.StepAwaitingWeight.Name())
		assert.Equal(t, "unknown", intake.StepUnknown.Name())
	})
}
