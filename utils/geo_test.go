package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateDistance(t *testing.T) {
	t.Run("zero distance for identical points", func(t *testing.T) {
		assert.Equal(t, 0.0, CalculateDistance(48.8566, 2.3522, 48.8566, 2.3522))
	})

	t.Run("known distance Paris to London", func(t *testing.T) {
		// Paris (48.8566, 2.3522) to London (51.5074, -0.1278) is ~343.5 km
		d := CalculateDistance(48.8566, 2.3522, 51.5074, -0.1278)
		assert.InDelta(t, 343.5, d, 1.0)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := CalculateDistance(12.97, 77.59, 13.08, 80.27)
		b := CalculateDistance(13.08, 80.27, 12.97, 77.59)
		assert.InDelta(t, a, b, 1e-9)
	})

	t.Run("short distances resolve", func(t *testing.T) {
		// ~111 m of latitude
		d := CalculateDistance(10.0, 20.0, 10.001, 20.0)
		assert.InDelta(t, 0.111, d, 0.001)
	})
}

func TestRoundKm(t *testing.T) {
	assert.Equal(t, 1.23, RoundKm(1.2345))
	assert.Equal(t, 1.24, RoundKm(1.235))
	assert.Equal(t, 0.0, RoundKm(0))
}
