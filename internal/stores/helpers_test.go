package stores

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/crowdhq/crowd-client-go/internal/api"
	"github.com/crowdhq/crowd-client-go/internal/models"
	"github.com/crowdhq/crowd-client-go/internal/storage"
)

// newTestBackend spins up a fake REST API and a client pointed at it.
func newTestBackend(t *testing.T, configure func(r *mux.Router)) (*api.Client, *storage.Store) {
	t.Helper()

	r := mux.NewRouter()
	configure(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	st, err := storage.New(t.TempDir())
	require.NoError(t, err)

	client, err := api.New(srv.URL, 0, st)
	require.NoError(t, err)
	return client, st
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// writeData wraps v in the standard { "data": ... } envelope.
func writeData(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	writeJSON(t, w, map[string]any{"data": v})
}

// writeList wraps items in the paginated list envelope.
func writeList(t *testing.T, w http.ResponseWriter, items any, meta api.ListMeta) {
	t.Helper()
	writeJSON(t, w, map[string]any{
		"data":       items,
		"page":       meta.Page,
		"limit":      meta.Limit,
		"totalPages": meta.TotalPages,
		"totalCount": meta.TotalCount,
	})
}

func testProperty(id, title string) models.Property {
	return models.Property{
		ID:           id,
		Title:        title,
		PropertyType: models.PropertyApartment,
		Bedrooms:     2,
		Status:       models.PropertyAvailable,
		Price: models.Price{
			Amount:           500000,
			Currency:         "NGN",
			PaymentFrequency: models.PayYearly,
		},
	}
}

func testViewing(id string, status models.ViewingStatus, scheduled time.Time) models.Viewing {
	return models.Viewing{
		ID:            id,
		Property:      models.ViewingProperty{ID: "p-1", Title: "2-bed in Yaba"},
		Tenant:        models.Party{ID: "t-1"},
		ScheduledDate: scheduled,
		Status:        status,
	}
}
