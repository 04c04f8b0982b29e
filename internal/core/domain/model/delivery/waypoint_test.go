package delivery_test

import (
	"testing"

	"courierhub/internal/core/domain/model/delivery"
	"courierhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWaypoint(t *testing.T) {
	t.Run("should create valid waypoint", func(t *testing.T) {
		w, err := delivery.NewWaypoint("Cafe Aroma", "+35722123456", "12 Ledra St, Nicosia")

		require.NoError(t, err)
		require.NoError(t, w.Validate())
		assert.Equal(t, "Cafe Aroma", w.Name())
		assert.Equal(t, "+35722123456", w.Phone())
		assert.Equal(t, "12 Ledra St, Nicosia", w.Address())
	})

	t.Run("should require every field", func(t *testing.T) {
		testCases := []struct {
			name, phone, address string
		}{
			{"", "+35722123456", "12 Ledra St"},
			{"Cafe Aroma", "", "12 Ledra St"},
			{"Cafe Aroma", "+35722123456", ""},
		}

		for _, tc := range testCases {
			_, err := delivery.NewWaypoint(tc.name, tc.phone, tc.address)

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		}
	})

	t.Run("should reject zero-value waypoint on Validate", func(t *testing.T) {
		var w delivery.Waypoint
		require.ErrorIs(t, w.Validate(), delivery.ErrWaypointIsNotConstructed)
	})
}

func TestWaypoint_IsEqual(t *testing.T) {
	a, _ := delivery.NewWaypoint("Cafe Aroma", "+35722123456", "12 Ledra St")
	b, _ := delivery.NewWaypoint("Cafe Aroma", "+35722123456", "12 Ledra St")
	c, _ := delivery.NewWaypoint("Warehouse 4", "+35722123456", "12 Ledra St")

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}
