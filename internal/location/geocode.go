package location

import (
	"context"
	"fmt"

	"github.com/bradfitz/latlong"
	"googlemaps.github.io/maps"
)

// TimezoneFor resolves the IANA zone name for a point from the embedded
// timezone shapefile data. Returns "" over open ocean.
func TimezoneFor(lat, lng float64) string {
	return latlong.LookupZoneName(lat, lng)
}

// GoogleGeocoder implements Geocoder against the Google Maps Geocoding API.
type GoogleGeocoder struct {
	client *maps.Client
}

func NewGoogleGeocoder(apiKey string) (*GoogleGeocoder, error) {
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("init maps client: %w", err)
	}
	return &GoogleGeocoder{client: c}, nil
}

func (g *GoogleGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (*Address, error) {
	results, err := g.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: lat, Lng: lng},
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	addr := &Address{Name: results[0].FormattedAddress}
	for _, comp := range results[0].AddressComponents {
		for _, t := range comp.Types {
			switch t {
			case "route":
				addr.Street = comp.LongName
			case "sublocality", "sublocality_level_1":
				addr.District = comp.LongName
			case "locality":
				addr.City = comp.LongName
			case "administrative_area_level_1":
				addr.Region = comp.LongName
			case "postal_code":
				addr.PostalCode = comp.LongName
			case "country":
				addr.Country = comp.LongName
				addr.ISOCountryCode = comp.ShortName
			}
		}
	}
	return addr, nil
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (*Coordinates, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	loc := results[0].Geometry.Location
	return &Coordinates{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}
