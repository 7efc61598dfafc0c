package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestViewingUpcoming(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name      string
		scheduled time.Time
		status    ViewingStatus
		want      bool
	}{
		// The date branch alone is enough.
		{"future completed", future, ViewingCompleted, true},
		{"future canceled", future, ViewingCanceled, true},
		// The status branch alone is enough.
		{"past confirmed", past, ViewingConfirmed, true},
		{"past pending", past, ViewingPending, true},
		// Neither branch holds.
		{"past completed", past, ViewingCompleted, false},
		{"past canceled", past, ViewingCanceled, false},
		{"past no-show", past, ViewingNoShow, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := Viewing{ScheduledDate: tc.scheduled, Status: tc.status}
			require.Equal(t, tc.want, v.Upcoming(now))
		})
	}
}

func TestViewingReferencesDecodeStringsAndObjects(t *testing.T) {
	t.Run("bare id strings", func(t *testing.T) {
		raw := `{
			"_id": "v-1",
			"property": "p-1",
			"tenant": "t-1",
			"agent": "a-1",
			"scheduledDate": "2025-06-16T10:00:00Z",
			"status": "confirmed"
		}`

		var v Viewing
		require.NoError(t, json.Unmarshal([]byte(raw), &v))
		require.Equal(t, "p-1", v.Property.ID)
		require.Empty(t, v.Property.Title)
		require.Equal(t, "t-1", v.Tenant.ID)
		require.Equal(t, "a-1", v.Agent.ID)
		require.Nil(t, v.Landlord)
	})

	t.Run("populated objects", func(t *testing.T) {
		raw := `{
			"_id": "v-1",
			"property": {"_id": "p-1", "title": "2-bed in Yaba"},
			"tenant": {"_id": "t-1", "user": {"id": "u-1", "name": "Ada Obi"}},
			"scheduledDate": "2025-06-16T10:00:00Z",
			"status": "pending"
		}`

		var v Viewing
		require.NoError(t, json.Unmarshal([]byte(raw), &v))
		require.Equal(t, "p-1", v.Property.ID)
		require.Equal(t, "2-bed in Yaba", v.Property.Title)
		require.Equal(t, "t-1", v.Tenant.ID)
		require.Equal(t, "Ada Obi", v.Tenant.User.Name)
	})
}
