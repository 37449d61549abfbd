package geofence

import (
	"context"
	"encoding/json"
	"slices"

	"go-timely/internal/kvstore"
)

const (
	EntitlementPremium    = "premium"
	EntitlementGeofencing = "geofencing"
)

// Entitlements mirrors the subscription state the device last reported.
type Entitlements struct {
	Active     []string `json:"active"`
	Subscribed bool     `json:"subscribed"`
}

func (e Entitlements) Has(id string) bool {
	return slices.Contains(e.Active, id)
}

func (e Entitlements) HasPremium() bool {
	return e.Subscribed || e.Has(EntitlementPremium)
}

func (e Entitlements) HasGeofencing() bool {
	return e.HasPremium() || e.Has(EntitlementGeofencing)
}

// LoadEntitlements reads the stored entitlements. A missing or unreadable
// value grants nothing.
func LoadEntitlements(ctx context.Context, kv kvstore.Store) (Entitlements, error) {
	var e Entitlements
	v, ok, err := kv.Get(ctx, kvstore.KeyEntitlements)
	if err != nil || !ok {
		return e, err
	}
	if err := json.Unmarshal([]byte(v), &e); err != nil {
		return Entitlements{}, err
	}
	return e, nil
}

func SaveEntitlements(ctx context.Context, kv kvstore.Store, e Entitlements) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return kv.Set(ctx, kvstore.KeyEntitlements, string(b))
}
