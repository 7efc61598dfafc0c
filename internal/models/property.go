package models

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// GeoPoint is a GeoJSON point: coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

type PropertyAddress struct {
	Street      string   `json:"street"`
	Area        string   `json:"area"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	FullAddress string   `json:"fullAddress,omitempty"`
	Location    GeoPoint `json:"location"`
}

type Price struct {
	Amount           float64          `json:"amount"`
	Currency         string           `json:"currency"`
	PaymentFrequency PaymentFrequency `json:"paymentFrequency"`
}

type PropertyImage struct {
	ID        string `json:"_id,omitempty"`
	URL       string `json:"url"`
	Caption   string `json:"caption,omitempty"`
	IsPrimary bool   `json:"isPrimary"`
}

type Property struct {
	ID               string            `json:"_id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	Landlord         string            `json:"landlord"`
	Agent            string            `json:"agent,omitempty"`
	PropertyType     PropertyType      `json:"propertyType"`
	Bedrooms         int               `json:"bedrooms"`
	Bathrooms        int               `json:"bathrooms"`
	Size             float64           `json:"size"`
	Features         []PropertyFeature `json:"features"`
	Address          PropertyAddress   `json:"address"`
	Price            Price             `json:"price"`
	Images           []PropertyImage   `json:"images"`
	AvailabilityDate string            `json:"availabilityDate,omitempty"`
	Status           PropertyStatus    `json:"status"`
	Verified         bool              `json:"verified"`
	LastUpdated      time.Time         `json:"lastUpdated"`
	SaveCount        int               `json:"saveCount"`
	ViewCount        int               `json:"viewCount"`
	CreatedAt        time.Time         `json:"createdAt"`
}

// Pagination is the cursor state for paginated list endpoints.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
	TotalCount int `json:"totalCount"`
}

// DefaultTravelDistance is the default max travel-distance filter, in minutes.
const DefaultTravelDistance = 30

// PropertyFilters is the transient search criteria. Nil fields are absent
// from the outbound query entirely.
type PropertyFilters struct {
	PriceMin     *float64
	PriceMax     *float64
	Bedrooms     *int
	Bathrooms    *int
	PropertyType *PropertyType
	Features     []PropertyFeature
	Location     *string
	Distance     int
}

// DefaultFilters returns the criteria a fresh store starts with.
func DefaultFilters() PropertyFilters {
	return PropertyFilters{Distance: DefaultTravelDistance}
}

// Query encodes the filters as query parameters. Unset fields are stripped
// and the features list collapses to a comma-joined string.
func (f PropertyFilters) Query() url.Values {
	q := url.Values{}
	if f.PriceMin != nil {
		q.Set("priceMin", strconv.FormatFloat(*f.PriceMin, 'f', -1, 64))
	}
	if f.PriceMax != nil {
		q.Set("priceMax", strconv.FormatFloat(*f.PriceMax, 'f', -1, 64))
	}
	if f.Bedrooms != nil {
		q.Set("bedrooms", strconv.Itoa(*f.Bedrooms))
	}
	if f.Bathrooms != nil {
		q.Set("bathrooms", strconv.Itoa(*f.Bathrooms))
	}
	if f.PropertyType != nil {
		q.Set("propertyType", string(*f.PropertyType))
	}
	if len(f.Features) > 0 {
		parts := make([]string, len(f.Features))
		for i, feat := range f.Features {
			parts[i] = string(feat)
		}
		q.Set("features", strings.Join(parts, ","))
	}
	if f.Location != nil {
		q.Set("location", *f.Location)
	}
	if f.Distance > 0 {
		q.Set("distance", strconv.Itoa(f.Distance))
	}
	return q
}
