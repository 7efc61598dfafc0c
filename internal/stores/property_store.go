package stores

import (
	"context"
	"net/url"
	"strconv"
	"sync"

	"github.com/crowdhq/crowd-client-go/internal/api"
	"github.com/crowdhq/crowd-client-go/internal/dtos"
	"github.com/crowdhq/crowd-client-go/internal/location"
	"github.com/crowdhq/crowd-client-go/internal/models"
)

// LocationErrorMessage is the error recorded when a nearby fetch cannot
// obtain device coordinates. Distinct from the generic fetch fallbacks so
// the UI can prompt for location services instead of a plain retry.
const LocationErrorMessage = "Failed to get your location. Please enable location services."

const defaultPageLimit = 10

// PropertyStore holds search results, nearby results, saved results, and one
// current detail record. Filters and the pagination cursor live here too;
// changing filters resets the cursor to page 1 in the same state update.
type PropertyStore struct {
	mu       sync.Mutex
	client   *api.Client
	location *location.Service

	properties       []models.Property
	nearbyProperties []models.Property
	savedProperties  []models.Property
	currentProperty  *models.Property

	filters    models.PropertyFilters
	pagination models.Pagination

	loading bool
	errMsg  string
}

func NewPropertyStore(client *api.Client, loc *location.Service) *PropertyStore {
	return &PropertyStore{
		client:     client,
		location:   loc,
		filters:    models.DefaultFilters(),
		pagination: models.Pagination{Page: 1, Limit: defaultPageLimit, TotalPages: 1},
	}
}

// -----------------------------------------------------------------------------
// Observable state
// -----------------------------------------------------------------------------

func (p *PropertyStore) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

func (p *PropertyStore) Err() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errMsg
}

func (p *PropertyStore) ClearError() {
	p.mu.Lock()
	p.errMsg = ""
	p.mu.Unlock()
}

func (p *PropertyStore) Properties() []models.Property {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Property(nil), p.properties...)
}

func (p *PropertyStore) NearbyProperties() []models.Property {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Property(nil), p.nearbyProperties...)
}

func (p *PropertyStore) SavedProperties() []models.Property {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Property(nil), p.savedProperties...)
}

func (p *PropertyStore) CurrentProperty() *models.Property {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.currentProperty == nil {
		return nil
	}
	cp := *p.currentProperty
	return &cp
}

func (p *PropertyStore) Filters() models.PropertyFilters {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filters
}

func (p *PropertyStore) Pagination() models.Pagination {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pagination
}

// SetFilters merges the given criteria and resets the page cursor to 1 in
// the same update, so no fetch can ever pair new filters with a stale page.
func (p *PropertyStore) SetFilters(apply func(*models.PropertyFilters)) {
	p.mu.Lock()
	apply(&p.filters)
	p.pagination.Page = 1
	p.mu.Unlock()
}

// ResetFilters restores the defaults and resets the page cursor.
func (p *PropertyStore) ResetFilters() {
	p.mu.Lock()
	p.filters = models.DefaultFilters()
	p.pagination.Page = 1
	p.mu.Unlock()
}

// ResetPagination restores the cursor to its initial state.
func (p *PropertyStore) ResetPagination() {
	p.mu.Lock()
	p.pagination = models.Pagination{Page: 1, Limit: defaultPageLimit, TotalPages: 1}
	p.mu.Unlock()
}

// -----------------------------------------------------------------------------
// Internal plumbing
// -----------------------------------------------------------------------------

func (p *PropertyStore) begin() {
	p.mu.Lock()
	p.loading = true
	p.errMsg = ""
	p.mu.Unlock()
}

func (p *PropertyStore) fail(err error, fallback string) error {
	p.mu.Lock()
	p.errMsg = api.Message(err, fallback)
	p.loading = false
	p.mu.Unlock()
	return err
}

func (p *PropertyStore) failWith(err error, message string) error {
	p.mu.Lock()
	p.errMsg = message
	p.loading = false
	p.mu.Unlock()
	return err
}

type propertyListEnvelope struct {
	api.ListMeta
	Data []models.Property `json:"data"`
}

type propertyEnvelope struct {
	Data models.Property `json:"data"`
}

func (p *PropertyStore) applyListMeta(meta api.ListMeta) {
	p.pagination = models.Pagination{
		Page:       meta.Page,
		Limit:      meta.Limit,
		TotalPages: meta.TotalPages,
		TotalCount: meta.TotalCount,
	}
}

// -----------------------------------------------------------------------------
// Fetching
// -----------------------------------------------------------------------------

// Fetch loads a page of properties matching the current filters, replacing
// the main list.
func (p *PropertyStore) Fetch(ctx context.Context) ([]models.Property, error) {
	p.begin()

	p.mu.Lock()
	query := p.filters.Query()
	query.Set("page", strconv.Itoa(p.pagination.Page))
	query.Set("limit", strconv.Itoa(p.pagination.Limit))
	p.mu.Unlock()

	var env propertyListEnvelope
	if err := p.client.Get(ctx, "/properties", query, &env); err != nil {
		return nil, p.fail(err, "Failed to fetch properties")
	}

	p.mu.Lock()
	p.properties = env.Data
	p.applyListMeta(env.ListMeta)
	p.loading = false
	p.mu.Unlock()
	return env.Data, nil
}

// FetchNearby loads properties around the given coordinates. When coords is
// nil the device position is requested from the location service; a
// geolocation failure records LocationErrorMessage rather than the generic
// fetch fallback.
func (p *PropertyStore) FetchNearby(ctx context.Context, coords *location.Coordinates) ([]models.Property, error) {
	p.begin()

	if coords == nil {
		loc, err := p.location.CurrentLocation(ctx, false)
		if err != nil {
			return nil, p.failWith(err, LocationErrorMessage)
		}
		coords = &loc
	}

	p.mu.Lock()
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	query.Set("maxDistance", strconv.Itoa(p.filters.Distance))
	query.Set("page", strconv.Itoa(p.pagination.Page))
	query.Set("limit", strconv.Itoa(p.pagination.Limit))
	p.mu.Unlock()

	var env propertyListEnvelope
	if err := p.client.Get(ctx, "/properties/nearby", query, &env); err != nil {
		return nil, p.fail(err, "Failed to fetch nearby properties")
	}

	p.mu.Lock()
	p.nearbyProperties = env.Data
	p.applyListMeta(env.ListMeta)
	p.loading = false
	p.mu.Unlock()
	return env.Data, nil
}

// FetchByID loads one property into the current pointer, replacing whatever
// was current before.
func (p *PropertyStore) FetchByID(ctx context.Context, propertyID string) (*models.Property, error) {
	p.begin()

	var env propertyEnvelope
	if err := p.client.Get(ctx, "/properties/"+propertyID, nil, &env); err != nil {
		return nil, p.fail(err, "Failed to fetch property details")
	}

	p.mu.Lock()
	p.currentProperty = &env.Data
	p.loading = false
	p.mu.Unlock()
	return &env.Data, nil
}

// -----------------------------------------------------------------------------
// Mutations (landlord)
// -----------------------------------------------------------------------------

func (p *PropertyStore) Create(ctx context.Context, input dtos.PropertyInput) (*models.Property, error) {
	p.begin()
	if err := validate.Struct(input); err != nil {
		return nil, p.fail(err, "Failed to create property")
	}

	var env propertyEnvelope
	if err := p.client.Post(ctx, "/properties", input, &env); err != nil {
		return nil, p.fail(err, "Failed to create property")
	}

	p.mu.Lock()
	p.properties = append([]models.Property{env.Data}, p.properties...)
	p.currentProperty = &env.Data
	p.loading = false
	p.mu.Unlock()
	return &env.Data, nil
}

// Update patches the record everywhere it may appear (main list, nearby
// list, and the current pointer) so edits stay consistent regardless of
// which list the user came from.
func (p *PropertyStore) Update(ctx context.Context, propertyID string, input dtos.PropertyInput) (*models.Property, error) {
	p.begin()
	if err := validate.Struct(input); err != nil {
		return nil, p.fail(err, "Failed to update property")
	}

	var env propertyEnvelope
	if err := p.client.Put(ctx, "/properties/"+propertyID, input, &env); err != nil {
		return nil, p.fail(err, "Failed to update property")
	}

	p.mu.Lock()
	p.properties = replaceProperty(p.properties, propertyID, env.Data)
	p.nearbyProperties = replaceProperty(p.nearbyProperties, propertyID, env.Data)
	p.currentProperty = &env.Data
	p.loading = false
	p.mu.Unlock()
	return &env.Data, nil
}

func (p *PropertyStore) Delete(ctx context.Context, propertyID string) error {
	p.begin()

	if err := p.client.Delete(ctx, "/properties/"+propertyID, nil); err != nil {
		return p.fail(err, "Failed to delete property")
	}

	p.mu.Lock()
	p.properties = removeProperty(p.properties, propertyID)
	p.nearbyProperties = removeProperty(p.nearbyProperties, propertyID)
	p.currentProperty = nil
	p.loading = false
	p.mu.Unlock()
	return nil
}

// UploadImages sends the local files and replaces the current property's
// image list wholesale with the server's response. Ordering and ids are the
// server's call.
func (p *PropertyStore) UploadImages(ctx context.Context, propertyID string, files []dtos.ImageFile) ([]models.PropertyImage, error) {
	p.begin()

	var env struct {
		Data struct {
			Images []models.PropertyImage `json:"images"`
		} `json:"data"`
	}
	if err := p.client.UploadImages(ctx, "/properties/"+propertyID+"/images", files, &env); err != nil {
		return nil, p.fail(err, "Failed to upload images")
	}

	p.mu.Lock()
	if p.currentProperty != nil {
		cp := *p.currentProperty
		cp.Images = env.Data.Images
		p.currentProperty = &cp
	}
	p.loading = false
	p.mu.Unlock()
	return env.Data.Images, nil
}

func (p *PropertyStore) DeleteImage(ctx context.Context, propertyID, imageID string) error {
	p.begin()

	if err := p.client.Delete(ctx, "/properties/"+propertyID+"/images/"+imageID, nil); err != nil {
		return p.fail(err, "Failed to delete image")
	}

	p.mu.Lock()
	if p.currentProperty != nil {
		cp := *p.currentProperty
		images := make([]models.PropertyImage, 0, len(cp.Images))
		for _, img := range cp.Images {
			if img.ID != imageID {
				images = append(images, img)
			}
		}
		cp.Images = images
		p.currentProperty = &cp
	}
	p.loading = false
	p.mu.Unlock()
	return nil
}

// -----------------------------------------------------------------------------
// Saved properties (tenant)
// -----------------------------------------------------------------------------

func (p *PropertyStore) FetchSaved(ctx context.Context) ([]models.Property, error) {
	p.begin()

	var env struct {
		Data []models.Property `json:"data"`
	}
	if err := p.client.Get(ctx, "/tenant/saved-properties", nil, &env); err != nil {
		return nil, p.fail(err, "Failed to fetch saved properties")
	}

	p.mu.Lock()
	p.savedProperties = env.Data
	p.loading = false
	p.mu.Unlock()
	return env.Data, nil
}

func (p *PropertyStore) Save(ctx context.Context, propertyID string) (*models.Property, error) {
	p.begin()

	var env propertyEnvelope
	if err := p.client.Post(ctx, "/tenant/saved-properties/"+propertyID, nil, &env); err != nil {
		return nil, p.fail(err, "Failed to save property")
	}

	p.mu.Lock()
	p.savedProperties = append(append([]models.Property(nil), p.savedProperties...), env.Data)
	p.loading = false
	p.mu.Unlock()
	return &env.Data, nil
}

func (p *PropertyStore) Unsave(ctx context.Context, propertyID string) error {
	p.begin()

	if err := p.client.Delete(ctx, "/tenant/saved-properties/"+propertyID, nil); err != nil {
		return p.fail(err, "Failed to remove saved property")
	}

	p.mu.Lock()
	p.savedProperties = removeProperty(p.savedProperties, propertyID)
	p.loading = false
	p.mu.Unlock()
	return nil
}

// -----------------------------------------------------------------------------
// Pagination
// -----------------------------------------------------------------------------

// LoadMore fetches the next page and appends it to the main list. Returns
// nil when the last page is already loaded.
func (p *PropertyStore) LoadMore(ctx context.Context) ([]models.Property, error) {
	p.mu.Lock()
	if p.pagination.Page >= p.pagination.TotalPages {
		p.mu.Unlock()
		return nil, nil
	}
	p.pagination.Page++
	previous := p.properties
	p.mu.Unlock()

	page, err := p.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.properties = append(append([]models.Property(nil), previous...), page...)
	p.mu.Unlock()
	return page, nil
}

// LoadMoreNearby is LoadMore for the nearby list.
func (p *PropertyStore) LoadMoreNearby(ctx context.Context) ([]models.Property, error) {
	p.mu.Lock()
	if p.pagination.Page >= p.pagination.TotalPages {
		p.mu.Unlock()
		return nil, nil
	}
	p.pagination.Page++
	previous := p.nearbyProperties
	p.mu.Unlock()

	page, err := p.FetchNearby(ctx, nil)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.nearbyProperties = append(append([]models.Property(nil), previous...), page...)
	p.mu.Unlock()
	return page, nil
}

// -----------------------------------------------------------------------------
// List helpers (always full-slice replace, never in-place mutation)
// -----------------------------------------------------------------------------

func replaceProperty(list []models.Property, id string, updated models.Property) []models.Property {
	out := make([]models.Property, len(list))
	for i, prop := range list {
		if prop.ID == id {
			out[i] = updated
		} else {
			out[i] = prop
		}
	}
	return out
}

func removeProperty(list []models.Property, id string) []models.Property {
	out := make([]models.Property, 0, len(list))
	for _, prop := range list {
		if prop.ID != id {
			out = append(out, prop)
		}
	}
	return out
}
