package stores

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/crowdhq/crowd-client-go/internal/api"
	"github.com/crowdhq/crowd-client-go/internal/dtos"
	"github.com/crowdhq/crowd-client-go/internal/models"
)

func TestFetchViewingsPartition(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	client, _ := newTestBackend(t, func(r *mux.Router) {
		r.HandleFunc("/tenant/viewings", func(w http.ResponseWriter, req *http.Request) {
			writeList(t, w, []models.Viewing{
				// Date elapsed, but still confirmed: stays upcoming until an
				// explicit status transition.
				testViewing("v-confirmed-past", models.ViewingConfirmed, yesterday),
				testViewing("v-pending-past", models.ViewingPending, yesterday),
				testViewing("v-completed-past", models.ViewingCompleted, yesterday),
				// Future date keeps even a canceled viewing in the upcoming
				// bucket.
				testViewing("v-canceled-future", models.ViewingCanceled, tomorrow),
			}, api.ListMeta{Page: 1, Limit: 10, TotalPages: 1, TotalCount: 4})
		}).Methods(http.MethodGet)
	})
	b := NewBookingStore(client)
	b.now = func() time.Time { return now }

	_, err := b.FetchTenantViewings(context.Background())
	require.NoError(t, err)

	ids := func(list []models.Viewing) []string {
		out := make([]string, len(list))
		for i, v := range list {
			out[i] = v.ID
		}
		return out
	}

	require.Len(t, b.Viewings(), 4)
	require.ElementsMatch(t,
		[]string{"v-confirmed-past", "v-pending-past", "v-canceled-future"},
		ids(b.UpcomingViewings()))
	require.Equal(t, []string{"v-completed-past"}, ids(b.PastViewings()))
}

func TestScopedViewingPaths(t *testing.T) {
	var hitPath string
	client, _ := newTestBackend(t, func(r *mux.Router) {
		record := func(w http.ResponseWriter, req *http.Request) {
			hitPath = req.URL.Path
			writeList(t, w, []models.Viewing{}, api.ListMeta{Page: 1, Limit: 10, TotalPages: 1})
		}
		r.HandleFunc("/landlord/viewings", record).Methods(http.MethodGet)
		r.HandleFunc("/agent/viewings", record).Methods(http.MethodGet)
		r.HandleFunc("/properties/p-7/viewings", record).Methods(http.MethodGet)
	})
	b := NewBookingStore(client)

	_, err := b.FetchLandlordViewings(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, "/landlord/viewings", hitPath)

	_, err = b.FetchAgentViewings(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, "/agent/viewings", hitPath)

	_, err = b.FetchLandlordViewings(context.Background(), "p-7")
	require.NoError(t, err)
	require.Equal(t, "/properties/p-7/viewings", hitPath)
}

func TestBookViewing(t *testing.T) {
	selected := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)

	client, _ := newTestBackend(t, func(r *mux.Router) {
		r.HandleFunc("/tenant/viewings", func(w http.ResponseWriter, req *http.Request) {
			require.NotEmpty(t, req.Header.Get("Idempotency-Key"))

			var body dtos.BookViewingRequest
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			require.Equal(t, "p-1", body.PropertyID)
			// The zero date was filled with the store's selected date.
			require.True(t, body.ScheduledDate.Equal(selected))

			writeData(t, w, testViewing("v-new", models.ViewingPending, selected))
		}).Methods(http.MethodPost)
	})
	b := NewBookingStore(client)
	b.SetSelectedDate(selected)

	viewing, err := b.BookViewing(context.Background(),
		dtos.BookViewingRequest{PropertyID: "p-1", Notes: "After work please"})
	require.NoError(t, err)
	require.Equal(t, "v-new", viewing.ID)

	require.Equal(t, "v-new", b.Viewings()[0].ID)
	require.Equal(t, "v-new", b.UpcomingViewings()[0].ID)
	require.Equal(t, "v-new", b.CurrentViewing().ID)
}

func TestBookViewingValidation(t *testing.T) {
	client, _ := newTestBackend(t, func(r *mux.Router) {})
	b := NewBookingStore(client)

	_, err := b.BookViewing(context.Background(), dtos.BookViewingRequest{})
	require.Error(t, err)
	require.Equal(t, "Failed to book viewing", b.Err())
	require.Empty(t, b.Viewings())
}

func TestCancelViewingPatchesOptimistically(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	scheduled := now.Add(48 * time.Hour)
	status := models.ViewingConfirmed

	client, _ := newTestBackend(t, func(r *mux.Router) {
		r.HandleFunc("/tenant/viewings", func(w http.ResponseWriter, req *http.Request) {
			writeList(t, w, []models.Viewing{
				testViewing("v-1", status, scheduled),
				testViewing("v-2", models.ViewingCompleted, now.Add(-48*time.Hour)),
			}, api.ListMeta{Page: 1, Limit: 10, TotalPages: 1, TotalCount: 2})
		}).Methods(http.MethodGet)
		r.HandleFunc("/tenant/viewings/v-1", func(w http.ResponseWriter, req *http.Request) {
			switch req.Method {
			case http.MethodGet:
				writeData(t, w, testViewing("v-1", status, scheduled))
			case http.MethodDelete:
				status = models.ViewingCanceled
				w.Write([]byte(`{}`))
			}
		}).Methods(http.MethodGet, http.MethodDelete)
	})
	b := NewBookingStore(client)
	b.now = func() time.Time { return now }

	_, err := b.FetchTenantViewings(context.Background())
	require.NoError(t, err)
	_, err = b.FetchViewingByID(context.Background(), "v-1")
	require.NoError(t, err)

	require.NoError(t, b.CancelViewing(context.Background(), "v-1"))

	// Every list and the current pointer flip to canceled with no re-fetch.
	require.Equal(t, models.ViewingCanceled, b.Viewings()[0].Status)
	require.Equal(t, models.ViewingCanceled, b.UpcomingViewings()[0].Status)
	require.Equal(t, models.ViewingCanceled, b.CurrentViewing().Status)
	require.Equal(t, models.ViewingCompleted, b.Viewings()[1].Status)

	// A later re-fetch agrees with the optimistic patch.
	_, err = b.FetchViewingByID(context.Background(), "v-1")
	require.NoError(t, err)
	require.Equal(t, models.ViewingCanceled, b.CurrentViewing().Status)
}

func TestUpdateViewingStatusRoutesByRole(t *testing.T) {
	cases := []struct {
		role models.Role
		path string
	}{
		{models.RoleLandlord, "/landlord/viewings/v-1"},
		{models.RoleTenant, "/tenant/viewings/v-1"},
		{models.RoleAgent, "/agent/viewings/v-1"},
	}

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			var hitPath string
			client, _ := newTestBackend(t, func(r *mux.Router) {
				record := func(w http.ResponseWriter, req *http.Request) {
					hitPath = req.URL.Path
					writeData(t, w, testViewing("v-1", models.ViewingConfirmed, time.Now()))
				}
				r.HandleFunc("/landlord/viewings/v-1", record).Methods(http.MethodPut)
				r.HandleFunc("/tenant/viewings/v-1", record).Methods(http.MethodPut)
				r.HandleFunc("/agent/viewings/v-1", record).Methods(http.MethodPut)
			})
			b := NewBookingStore(client)

			_, err := b.UpdateViewingStatus(context.Background(), "v-1", tc.role,
				dtos.UpdateViewingStatusRequest{Status: models.ViewingConfirmed})
			require.NoError(t, err)
			require.Equal(t, tc.path, hitPath)
		})
	}
}

func TestUpdateViewingStatusFallbackNamesStatus(t *testing.T) {
	client, _ := newTestBackend(t, func(r *mux.Router) {
		r.HandleFunc("/landlord/viewings/v-1", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}).Methods(http.MethodPut)
	})
	b := NewBookingStore(client)

	_, err := b.UpdateViewingStatus(context.Background(), "v-1", models.RoleLandlord,
		dtos.UpdateViewingStatusRequest{Status: models.ViewingNoShow})
	require.Error(t, err)
	require.Equal(t, "Failed to update viewing to no_show", b.Err())
}

func TestSubmitFeedback(t *testing.T) {
	now := time.Now()
	client, _ := newTestBackend(t, func(r *mux.Router) {
		r.HandleFunc("/tenant/viewings", func(w http.ResponseWriter, req *http.Request) {
			writeList(t, w, []models.Viewing{testViewing("v-1", models.ViewingCompleted, now.Add(-48*time.Hour))},
				api.ListMeta{Page: 1, Limit: 10, TotalPages: 1, TotalCount: 1})
		}).Methods(http.MethodGet)
		r.HandleFunc("/tenant/viewings/v-1/feedback", func(w http.ResponseWriter, req *http.Request) {
			var body dtos.FeedbackRequest
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			require.Equal(t, 4, body.Rating)

			v := testViewing("v-1", models.ViewingCompleted, now.Add(-48*time.Hour))
			v.Feedback = &models.ViewingFeedback{
				Tenant: &models.FeedbackEntry{Rating: body.Rating, Comment: body.Comment},
			}
			writeData(t, w, v)
		}).Methods(http.MethodPost)
	})
	b := NewBookingStore(client)

	_, err := b.FetchTenantViewings(context.Background())
	require.NoError(t, err)

	viewing, err := b.SubmitFeedback(context.Background(), "v-1",
		dtos.FeedbackRequest{Rating: 4, Comment: "Agent was on time"})
	require.NoError(t, err)
	require.NotNil(t, viewing.Feedback.Tenant)
	require.Equal(t, 4, b.PastViewings()[0].Feedback.Tenant.Rating)

	t.Run("rating outside 1-5 never reaches the server", func(t *testing.T) {
		_, err := b.SubmitFeedback(context.Background(), "v-1",
			dtos.FeedbackRequest{Rating: 0, Comment: "no stars"})
		require.Error(t, err)
		require.Equal(t, "Failed to submit feedback", b.Err())
	})
}

func TestSubscriptionLifecycle(t *testing.T) {
	client, _ := newTestBackend(t, func(r *mux.Router) {
		r.HandleFunc("/tenant/subscription", func(w http.ResponseWriter, req *http.Request) {
			switch req.Method {
			case http.MethodGet:
				writeData(t, w, models.Subscription{IsActive: false})
			case http.MethodPost:
				require.NotEmpty(t, req.Header.Get("Idempotency-Key"))
				writeData(t, w, models.Subscription{
					IsActive:          true,
					BaseViewings:      models.ViewingQuota,
					ViewingsRemaining: models.ViewingQuota,
				})
			}
		}).Methods(http.MethodGet, http.MethodPost)
	})
	b := NewBookingStore(client)

	sub, err := b.CheckSubscriptionStatus(context.Background())
	require.NoError(t, err)
	require.False(t, sub.IsActive)

	sub, err = b.PurchaseSubscription(context.Background())
	require.NoError(t, err)
	require.True(t, sub.IsActive)
	require.Equal(t, models.ViewingQuota, sub.ViewingsRemaining)
}
