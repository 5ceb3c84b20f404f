package helpers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"eventura/internal/domain"
)

// PathID parses a positive integer path value such as {eventID}. On failure it
// writes a 400 JSON error and returns false; callers should return immediately.
func PathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("invalid %s", name))
		return 0, false
	}
	return id, true
}

// ParseEventFilter reads the event list filters from the query string.
// Unknown parameters are ignored; malformed ones produce an error message each.
func ParseEventFilter(q url.Values) (domain.EventFilter, []string) {
	var (
		f    domain.EventFilter
		errs []string
	)
	if s := q.Get("category_id"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v <= 0 {
			errs = append(errs, "category_id must be a positive integer")
		}
		f.CategoryID = v
	}
	if s := q.Get("status"); s != "" {
		f.Status = domain.EventStatus(strings.ToLower(s))
		if !f.Status.Valid() {
			errs = append(errs, "status must be one of active, cancelled, ended")
		}
	}
	f.MinPrice = parseFloatParam(q, "min_price", &errs)
	f.MaxPrice = parseFloatParam(q, "max_price", &errs)
	if s := q.Get("free"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			errs = append(errs, "free must be a boolean")
		}
		f.FreeOnly = v
	}
	f.From = parseTimeParam(q, "from", &errs)
	f.To = parseTimeParam(q, "to", &errs)
	f.Search = strings.TrimSpace(q.Get("q"))
	return f, errs
}

func parseFloatParam(q url.Values, key string, errs *[]string) *float64 {
	s := q.Get(key)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*errs = append(*errs, key+" must be a number")
		return nil
	}
	return &v
}

// parseTimeParam accepts RFC 3339 timestamps or plain YYYY-MM-DD dates (UTC midnight).
func parseTimeParam(q url.Values, key string, errs *[]string) *time.Time {
	s := q.Get(key)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	*errs = append(*errs, key+" must be an RFC 3339 timestamp or YYYY-MM-DD date")
	return nil
}
