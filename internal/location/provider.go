package location

import "context"

// StaticProvider reports a fixed position. Used by crowdctl, where the
// "device" position comes from flags or environment rather than GPS.
type StaticProvider struct {
	Lat float64
	Lng float64
}

func (p StaticProvider) HasPermission(ctx context.Context) (bool, error) {
	return true, nil
}

func (p StaticProvider) RequestPermission(ctx context.Context) (bool, error) {
	return true, nil
}

func (p StaticProvider) CurrentPosition(ctx context.Context) (Fix, error) {
	return Fix{Latitude: p.Lat, Longitude: p.Lng}, nil
}

// DeniedProvider always refuses. It stands in when no position source is
// configured at all.
type DeniedProvider struct{}

func (DeniedProvider) HasPermission(ctx context.Context) (bool, error) {
	return false, nil
}

func (DeniedProvider) RequestPermission(ctx context.Context) (bool, error) {
	return false, nil
}

func (DeniedProvider) CurrentPosition(ctx context.Context) (Fix, error) {
	return Fix{}, ErrPermissionDenied
}
