package request

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateActivityRequest() CreateActivityRequest {
	return CreateActivityRequest{
		Title:       "chess night",
		Description: "weekly chess night",
		CategoryID:  1,
		Location:    "room 204",
		StartDate:   "2026-10-01T18:00:00Z",
		EndDate:     "2026-10-01T20:00:00Z",
	}
}

func TestCreateActivityRequestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := validCreateActivityRequest()
		require.NoError(t, req.Validate())
		assert.Equal(t, time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC), req.ParsedStartDate)
		assert.Equal(t, time.Date(2026, 10, 1, 20, 0, 0, 0, time.UTC), req.ParsedEndDate)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		req := validCreateActivityRequest()
		req.Title = "  chess night  "
		require.NoError(t, req.Validate())
		assert.Equal(t, "chess night", req.Title)
	})

	t.Run("missing title", func(t *testing.T) {
		req := validCreateActivityRequest()
		req.Title = "   "
		assert.Error(t, req.Validate())
	})

	t.Run("malformed date", func(t *testing.T) {
		req := validCreateActivityRequest()
		req.StartDate = "next tuesday"
		assert.ErrorIs(t, req.Validate(), errInvalidDate)
	})

	t.Run("start not before end", func(t *testing.T) {
		req := validCreateActivityRequest()
		req.StartDate, req.EndDate = req.EndDate, req.StartDate
		assert.ErrorIs(t, req.Validate(), errStartAfterEnd)

		req = validCreateActivityRequest()
		req.EndDate = req.StartDate
		assert.ErrorIs(t, req.Validate(), errStartAfterEnd)
	})

	t.Run("zero capacity", func(t *testing.T) {
		req := validCreateActivityRequest()
		zero := 0
		req.MaxParticipants = &zero
		assert.Error(t, req.Validate())
	})
}

func TestUpdateActivityRequestValidate(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	t.Run("empty update is valid", func(t *testing.T) {
		req := UpdateActivityRequest{}
		assert.NoError(t, req.Validate())
	})

	t.Run("unknown status", func(t *testing.T) {
		req := UpdateActivityRequest{Status: strPtr("archived")}
		assert.ErrorIs(t, req.Validate(), errInvalidStatusUpdate)
	})

	t.Run("capacity zero rejected", func(t *testing.T) {
		req := UpdateActivityRequest{MaxParticipants: OptionalInt{Set: true, Value: 0}}
		assert.ErrorIs(t, req.Validate(), errInvalidCapacity)
	})

	t.Run("capacity below minus one rejected", func(t *testing.T) {
		req := UpdateActivityRequest{MaxParticipants: OptionalInt{Set: true, Value: -2}}
		assert.ErrorIs(t, req.Validate(), errInvalidCapacity)
	})

	t.Run("start date alone is accepted", func(t *testing.T) {
		req := UpdateActivityRequest{StartDate: strPtr("2026-10-01T18:00:00Z")}
		require.NoError(t, req.Validate())
		require.NotNil(t, req.ParsedStartDate)
		assert.Nil(t, req.ParsedEndDate)
	})

	t.Run("end date alone is accepted", func(t *testing.T) {
		req := UpdateActivityRequest{EndDate: strPtr("2026-10-01T20:00:00Z")}
		require.NoError(t, req.Validate())
		assert.Nil(t, req.ParsedStartDate)
		require.NotNil(t, req.ParsedEndDate)
	})

	t.Run("ordering checked when both given", func(t *testing.T) {
		req := UpdateActivityRequest{
			StartDate: strPtr("2026-10-01T20:00:00Z"),
			EndDate:   strPtr("2026-10-01T18:00:00Z"),
		}
		assert.ErrorIs(t, req.Validate(), errStartAfterEnd)
	})

	t.Run("dates parsed together", func(t *testing.T) {
		req := UpdateActivityRequest{
			StartDate: strPtr("2026-10-01T18:00:00Z"),
			EndDate:   strPtr("2026-10-01T20:00:00Z"),
		}
		require.NoError(t, req.Validate())
		require.NotNil(t, req.ParsedStartDate)
		require.NotNil(t, req.ParsedEndDate)
		assert.True(t, req.ParsedStartDate.Before(*req.ParsedEndDate))
	})
}

func TestOptionalIntCapacityUpdate(t *testing.T) {
	t.Run("absent means no change", func(t *testing.T) {
		var req UpdateActivityRequest
		require.NoError(t, json.Unmarshal([]byte(`{"title":"x"}`), &req))
		assert.Nil(t, req.CapacityUpdate())
	})

	t.Run("null clears the limit", func(t *testing.T) {
		var req UpdateActivityRequest
		require.NoError(t, json.Unmarshal([]byte(`{"maxParticipants":null}`), &req))
		upd := req.CapacityUpdate()
		require.NotNil(t, upd)
		assert.Equal(t, -1, *upd)
	})

	t.Run("minus one clears the limit", func(t *testing.T) {
		var req UpdateActivityRequest
		require.NoError(t, json.Unmarshal([]byte(`{"maxParticipants":-1}`), &req))
		require.NoError(t, req.Validate())
		upd := req.CapacityUpdate()
		require.NotNil(t, upd)
		assert.Equal(t, -1, *upd)
	})

	t.Run("positive sets the limit", func(t *testing.T) {
		var req UpdateActivityRequest
		require.NoError(t, json.Unmarshal([]byte(`{"maxParticipants":30}`), &req))
		require.NoError(t, req.Validate())
		upd := req.CapacityUpdate()
		require.NotNil(t, upd)
		assert.Equal(t, 30, *upd)
	})
}
