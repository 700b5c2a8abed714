package services_test

import (
	"testing"

	"sibcargo/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTariff(t *testing.T) {
	t.Run("should create tariff with valid rates", func(t *testing.T) {
		tariff, err := services.NewTariff(500, 35, 2)

		require.NoError(t, err)
		assert.Equal(t, 500.0, tariff.BasePriceRub())
		assert.Equal(t, 35.0, tariff.PricePerKmRub())
		assert.Equal(t, 2.0, tariff.PricePerKgRub())
	})

	t.Run("should accept zero rates", func(t *testing.T) {
		_, err := services.NewTariff(0, 0, 0)

		require.NoError(t, err)
	})

	t.Run("should reject negative rates", func(t *testing.T) {
		_, err := services.NewTariff(-1, 35, 2)
		require.Error(t, err)

		_, err = services.NewTariff(500, -1, 2)
		require.Error(t, err)

		_, err = services.NewTariff(500, 35, -1)
		require.Error(t, err)
	})
}

func TestTariff_Quote(t *testing.T) {
	tariff, err := services.NewTariff(500, 35, 2)
	require.NoError(t, err)

	t.Run("should price the reference trip", func(t *testing.T) {
		// 500 + 10*35 + 500*2 = 1850
		assert.Equal(t, int64(1850), tariff.Quote(10, 500))
	})

	t.Run("should round to whole roubles", func(t *testing.T) {
		// 500 + 5.5*35 + 0.1*2 = 692.7
		assert.Equal(t, int64(693), tariff.Quote(5.5, 0.1))

		// 500 + 0.01*35 + 0.01*2 = 500.37
		assert.Equal(t, int64(500), tariff.Quote(0.01, 0.01))
	})

	t.Run("zero distance and weight price at the base", func(t *testing.T) {
		assert.Equal(t, int64(500), tariff.Quote(0, 0))
	})

	t.Run("fallback distance prices at the minimum trip", func(t *testing.T) {
		// 500 + 5*35 + 100*2 = 875
		assert.Equal(t, int64(875), tariff.Quote(5.0, 100))
	})
}
