package stores

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/crowdhq/crowd-client-go/internal/api"
	"github.com/crowdhq/crowd-client-go/internal/dtos"
	"github.com/crowdhq/crowd-client-go/internal/models"
)

// BookingStore holds viewing records partitioned into upcoming and past at
// fetch time, plus one current detail record. The partition is a derived
// view, never persisted: see models.Viewing.Upcoming.
type BookingStore struct {
	mu     sync.Mutex
	client *api.Client

	viewings         []models.Viewing
	upcomingViewings []models.Viewing
	pastViewings     []models.Viewing
	currentViewing   *models.Viewing
	selectedDate     time.Time

	loading bool
	errMsg  string

	now func() time.Time
}

func NewBookingStore(client *api.Client) *BookingStore {
	return &BookingStore{
		client:       client,
		selectedDate: time.Now(),
		now:          time.Now,
	}
}

// -----------------------------------------------------------------------------
// Observable state
// -----------------------------------------------------------------------------

func (b *BookingStore) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

func (b *BookingStore) Err() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errMsg
}

func (b *BookingStore) ClearError() {
	b.mu.Lock()
	b.errMsg = ""
	b.mu.Unlock()
}

func (b *BookingStore) Viewings() []models.Viewing {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Viewing(nil), b.viewings...)
}

func (b *BookingStore) UpcomingViewings() []models.Viewing {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Viewing(nil), b.upcomingViewings...)
}

func (b *BookingStore) PastViewings() []models.Viewing {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Viewing(nil), b.pastViewings...)
}

func (b *BookingStore) CurrentViewing() *models.Viewing {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.currentViewing == nil {
		return nil
	}
	cv := *b.currentViewing
	return &cv
}

func (b *BookingStore) SelectedDate() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selectedDate
}

func (b *BookingStore) SetSelectedDate(date time.Time) {
	b.mu.Lock()
	b.selectedDate = date
	b.mu.Unlock()
}

// -----------------------------------------------------------------------------
// Internal plumbing
// -----------------------------------------------------------------------------

func (b *BookingStore) begin() {
	b.mu.Lock()
	b.loading = true
	b.errMsg = ""
	b.mu.Unlock()
}

func (b *BookingStore) fail(err error, fallback string) error {
	b.mu.Lock()
	b.errMsg = api.Message(err, fallback)
	b.loading = false
	b.mu.Unlock()
	return err
}

type viewingListEnvelope struct {
	api.ListMeta
	Data []models.Viewing `json:"data"`
}

type viewingEnvelope struct {
	Data models.Viewing `json:"data"`
}

// fetchViewings runs a list call and recomputes the upcoming/past partition
// against the current wall clock.
func (b *BookingStore) fetchViewings(ctx context.Context, reqPath string) ([]models.Viewing, error) {
	b.begin()

	var env viewingListEnvelope
	if err := b.client.Get(ctx, reqPath, nil, &env); err != nil {
		return nil, b.fail(err, "Failed to fetch viewings")
	}

	now := b.now()
	var upcoming, past []models.Viewing
	for _, v := range env.Data {
		if v.Upcoming(now) {
			upcoming = append(upcoming, v)
		} else {
			past = append(past, v)
		}
	}

	b.mu.Lock()
	b.viewings = env.Data
	b.upcomingViewings = upcoming
	b.pastViewings = past
	b.loading = false
	b.mu.Unlock()
	return env.Data, nil
}

// scopedPath returns the property-scoped viewings path when propertyID is
// set, else the role path.
func scopedPath(rolePath, propertyID string) string {
	if propertyID != "" {
		return "/properties/" + propertyID + "/viewings"
	}
	return rolePath
}

// -----------------------------------------------------------------------------
// Listing
// -----------------------------------------------------------------------------

func (b *BookingStore) FetchTenantViewings(ctx context.Context) ([]models.Viewing, error) {
	return b.fetchViewings(ctx, "/tenant/viewings")
}

// FetchLandlordViewings lists the landlord's viewings, optionally scoped to
// one property.
func (b *BookingStore) FetchLandlordViewings(ctx context.Context, propertyID string) ([]models.Viewing, error) {
	return b.fetchViewings(ctx, scopedPath("/landlord/viewings", propertyID))
}

// FetchAgentViewings lists the agent's viewings, optionally scoped to one
// property.
func (b *BookingStore) FetchAgentViewings(ctx context.Context, propertyID string) ([]models.Viewing, error) {
	return b.fetchViewings(ctx, scopedPath("/agent/viewings", propertyID))
}

func (b *BookingStore) FetchViewingByID(ctx context.Context, viewingID string) (*models.Viewing, error) {
	b.begin()

	var env viewingEnvelope
	if err := b.client.Get(ctx, "/tenant/viewings/"+viewingID, nil, &env); err != nil {
		return nil, b.fail(err, "Failed to fetch viewing details")
	}

	b.mu.Lock()
	b.currentViewing = &env.Data
	b.loading = false
	b.mu.Unlock()
	return &env.Data, nil
}

// -----------------------------------------------------------------------------
// Booking lifecycle
// -----------------------------------------------------------------------------

// BookViewing creates a viewing request. A zero scheduled date falls back to
// the store's selected date.
func (b *BookingStore) BookViewing(ctx context.Context, req dtos.BookViewingRequest) (*models.Viewing, error) {
	b.begin()

	b.mu.Lock()
	if req.ScheduledDate.IsZero() {
		req.ScheduledDate = b.selectedDate
	}
	b.mu.Unlock()

	if err := validate.Struct(req); err != nil {
		return nil, b.fail(err, "Failed to book viewing")
	}

	var env viewingEnvelope
	err := b.client.Post(ctx, "/tenant/viewings", req, &env,
		api.WithIdempotencyKey(uuid.NewString()))
	if err != nil {
		return nil, b.fail(err, "Failed to book viewing")
	}

	b.mu.Lock()
	b.viewings = append([]models.Viewing{env.Data}, b.viewings...)
	b.upcomingViewings = append([]models.Viewing{env.Data}, b.upcomingViewings...)
	b.currentViewing = &env.Data
	b.loading = false
	b.mu.Unlock()
	return &env.Data, nil
}

// UpdateViewing reschedules or annotates a viewing and patches it in every
// list that may contain it.
func (b *BookingStore) UpdateViewing(ctx context.Context, viewingID string, req dtos.RescheduleRequest) (*models.Viewing, error) {
	b.begin()

	var env viewingEnvelope
	if err := b.client.Put(ctx, "/tenant/viewings/"+viewingID, req, &env); err != nil {
		return nil, b.fail(err, "Failed to update viewing")
	}

	b.replaceEverywhere(viewingID, env.Data)
	return &env.Data, nil
}

// CancelViewing calls the dedicated cancellation endpoint, then patches the
// status to canceled in the full, upcoming, and past lists and the current
// pointer without waiting for a re-fetch.
func (b *BookingStore) CancelViewing(ctx context.Context, viewingID string) error {
	b.begin()

	if err := b.client.Delete(ctx, "/tenant/viewings/"+viewingID, nil); err != nil {
		return b.fail(err, "Failed to cancel viewing")
	}

	markCanceled := func(list []models.Viewing) []models.Viewing {
		out := make([]models.Viewing, len(list))
		for i, v := range list {
			if v.ID == viewingID {
				v.Status = models.ViewingCanceled
			}
			out[i] = v
		}
		return out
	}

	b.mu.Lock()
	b.viewings = markCanceled(b.viewings)
	b.upcomingViewings = markCanceled(b.upcomingViewings)
	b.pastViewings = markCanceled(b.pastViewings)
	if b.currentViewing != nil && b.currentViewing.ID == viewingID {
		cv := *b.currentViewing
		cv.Status = models.ViewingCanceled
		b.currentViewing = &cv
	}
	b.loading = false
	b.mu.Unlock()
	return nil
}

// SubmitFeedback attaches a rating and comment to a completed viewing.
func (b *BookingStore) SubmitFeedback(ctx context.Context, viewingID string, req dtos.FeedbackRequest) (*models.Viewing, error) {
	b.begin()
	if err := validate.Struct(req); err != nil {
		return nil, b.fail(err, "Failed to submit feedback")
	}

	var env viewingEnvelope
	if err := b.client.Post(ctx, "/tenant/viewings/"+viewingID+"/feedback", req, &env); err != nil {
		return nil, b.fail(err, "Failed to submit feedback")
	}

	b.replaceEverywhere(viewingID, env.Data)
	return &env.Data, nil
}

// UpdateViewingStatus transitions a viewing's status. The acting role picks
// the endpoint and must come from the caller; the store does not guess it
// from the session.
func (b *BookingStore) UpdateViewingStatus(
	ctx context.Context,
	viewingID string,
	actingRole models.Role,
	req dtos.UpdateViewingStatusRequest,
) (*models.Viewing, error) {
	b.begin()
	if err := validate.Struct(req); err != nil {
		return nil, b.fail(err, fmt.Sprintf("Failed to update viewing to %s", req.Status))
	}

	var endpoint string
	switch actingRole {
	case models.RoleLandlord:
		endpoint = "/landlord/viewings/"
	case models.RoleTenant:
		endpoint = "/tenant/viewings/"
	default:
		endpoint = "/agent/viewings/"
	}

	var env viewingEnvelope
	if err := b.client.Put(ctx, endpoint+viewingID, req, &env); err != nil {
		return nil, b.fail(err, fmt.Sprintf("Failed to update viewing to %s", req.Status))
	}

	b.replaceEverywhere(viewingID, env.Data)
	return &env.Data, nil
}

// -----------------------------------------------------------------------------
// Subscription (tenant)
// -----------------------------------------------------------------------------

func (b *BookingStore) CheckSubscriptionStatus(ctx context.Context) (*models.Subscription, error) {
	b.begin()

	var env struct {
		Data models.Subscription `json:"data"`
	}
	if err := b.client.Get(ctx, "/tenant/subscription", nil, &env); err != nil {
		return nil, b.fail(err, "Failed to check subscription status")
	}

	b.mu.Lock()
	b.loading = false
	b.mu.Unlock()
	return &env.Data, nil
}

func (b *BookingStore) PurchaseSubscription(ctx context.Context) (*models.Subscription, error) {
	b.begin()

	var env struct {
		Data models.Subscription `json:"data"`
	}
	err := b.client.Post(ctx, "/tenant/subscription", nil, &env,
		api.WithIdempotencyKey(uuid.NewString()))
	if err != nil {
		return nil, b.fail(err, "Failed to purchase subscription")
	}

	b.mu.Lock()
	b.loading = false
	b.mu.Unlock()
	return &env.Data, nil
}

// -----------------------------------------------------------------------------
// List helpers
// -----------------------------------------------------------------------------

// replaceEverywhere swaps the updated record into the full, upcoming, and
// past lists and the current pointer, then clears the loading flag.
func (b *BookingStore) replaceEverywhere(viewingID string, updated models.Viewing) {
	swap := func(list []models.Viewing) []models.Viewing {
		out := make([]models.Viewing, len(list))
		for i, v := range list {
			if v.ID == viewingID {
				out[i] = updated
			} else {
				out[i] = v
			}
		}
		return out
	}

	b.mu.Lock()
	b.viewings = swap(b.viewings)
	b.upcomingViewings = swap(b.upcomingViewings)
	b.pastViewings = swap(b.pastViewings)
	b.currentViewing = &updated
	b.loading = false
	b.mu.Unlock()
}
