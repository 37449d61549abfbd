package deeplink

import (
	"net/url"
	"strings"
	"time"

	"go-timely/internal/domain"
	"go-timely/internal/reconcile"
)

const quickActionMarker = "quick-action=true"

// IsClockURL reports whether raw is one of the shapes the clock flow owns:
// the bare marker, or any URL carrying time or hour.
func IsClockURL(raw, scheme string) bool {
	return reconcile.IsBareMarker(raw, scheme) || reconcile.HasTimeParam(raw)
}

// IsNavigationRoute reports whether the in-app router may handle raw. Clock
// URLs are never navigation routes.
func IsNavigationRoute(raw, scheme string) bool {
	if strings.Contains(raw, "time=") || strings.Contains(raw, "hour=") {
		return false
	}
	return !reconcile.IsBareMarker(raw, scheme)
}

func IsQuickAction(raw string) bool {
	return strings.Contains(raw, quickActionMarker)
}

// hasValidTime requires a non-empty time parameter that parses as a date.
func hasValidTime(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	v := u.Query().Get("time")
	if v == "" {
		return false
	}
	_, err = domain.ParseISO(v)
	return err == nil
}

func hasTypeParam(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	_, ok := u.Query()["type"]
	return ok
}

// ClockURL builds scheme://clock?time=<at>[&type=<entry|exit>].
func ClockURL(scheme string, at time.Time, action domain.ClockAction) string {
	q := url.Values{}
	q.Set("time", domain.FormatISO(at))
	if action.Valid() {
		q.Set("type", domain.TypeFromAction(action))
	}
	return scheme + "://clock?" + q.Encode()
}
