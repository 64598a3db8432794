package appointment

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalInt64_TriState(t *testing.T) {
	t.Run("absent field keeps current value", func(t *testing.T) {
		var req UpdateAppointmentRequest
		require.NoError(t, json.Unmarshal([]byte(`{"notes":"x"}`), &req))
		assert.False(t, req.StaffID.Set)
	})

	t.Run("explicit null clears", func(t *testing.T) {
		var req UpdateAppointmentRequest
		require.NoError(t, json.Unmarshal([]byte(`{"staff_id":null}`), &req))
		assert.True(t, req.StaffID.Set)
		assert.Nil(t, req.StaffID.Value)
	})

	t.Run("value assigns", func(t *testing.T) {
		var req UpdateAppointmentRequest
		require.NoError(t, json.Unmarshal([]byte(`{"staff_id":7}`), &req))
		assert.True(t, req.StaffID.Set)
		require.NotNil(t, req.StaffID.Value)
		assert.Equal(t, int64(7), *req.StaffID.Value)
	})

	t.Run("non-numeric value is rejected", func(t *testing.T) {
		var req UpdateAppointmentRequest
		assert.Error(t, json.Unmarshal([]byte(`{"staff_id":"seven"}`), &req))
	})
}
