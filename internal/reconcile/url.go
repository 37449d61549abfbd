package reconcile

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go-timely/internal/domain"
)

// DefaultScheme is the app's URL scheme.
const DefaultScheme = "timely"

// IsBareMarker reports whether raw is the scheme's "clock" marker, written
// either as scheme://clock or scheme:///clock, with or without a query.
func IsBareMarker(raw, scheme string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !strings.EqualFold(u.Scheme, scheme) {
		return false
	}
	if strings.EqualFold(u.Host, "clock") && (u.Path == "" || u.Path == "/") {
		return true
	}
	return u.Host == "" && strings.EqualFold(strings.Trim(u.Path, "/"), "clock")
}

// HasTimeParam reports whether raw carries a time or hour query parameter.
func HasTimeParam(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	q := u.Query()
	return q.Get("time") != "" || q.Get("hour") != ""
}

// Normalize turns raw into the URL the core processes. A bare marker without
// a time gets now appended; anything else must already carry time or hour.
func Normalize(raw, scheme string, now time.Time) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if IsBareMarker(raw, scheme) {
		if HasTimeParam(raw) {
			return raw, true
		}
		sep := "?"
		if strings.Contains(raw, "?") {
			sep = "&"
		}
		return raw + sep + "time=" + url.QueryEscape(domain.FormatISO(now)), true
	}
	if !HasTimeParam(raw) {
		return "", false
	}
	return raw, true
}

// params is the clock-relevant part of a normalized URL's query.
type params struct {
	Hour     string
	Type     string
	HasType  bool
	Location *domain.Point
	PhotoURL *string
	Notes    *string
}

func parseParams(normalized string) (params, error) {
	u, err := url.Parse(normalized)
	if err != nil {
		return params{}, err
	}
	q := u.Query()

	p := params{Hour: q.Get("time")}
	if p.Hour == "" {
		p.Hour = q.Get("hour")
	}
	if _, ok := q["type"]; ok {
		p.HasType = true
		p.Type = q.Get("type")
	}
	if v := q.Get("location"); v != "" {
		p.Location = parseLocation(v)
	}
	if v := q.Get("photoUrl"); v != "" {
		p.PhotoURL = &v
	}
	if v := q.Get("notes"); v != "" {
		p.Notes = &v
	}
	return p, nil
}

// parseLocation accepts a GeoJSON point or "lat,lon". Anything else is
// dropped.
func parseLocation(v string) *domain.Point {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "{") {
		var pt domain.Point
		if err := json.Unmarshal([]byte(v), &pt); err != nil {
			return nil
		}
		if pt.Type == "" {
			pt.Type = "Point"
		}
		return &pt
	}

	parts := strings.Split(v, ",")
	if len(parts) != 2 {
		return nil
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return nil
	}
	return domain.NewPoint(lat, lon)
}

// resolveAction prefers the caller's explicit action only when the URL has no
// type parameter. Without either, the result is clock-out.
func resolveAction(p params, explicit domain.ClockAction) domain.ClockAction {
	if explicit.Valid() && !p.HasType {
		return explicit
	}
	return domain.ActionFromType(p.Type)
}
