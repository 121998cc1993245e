package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/atdash-org/atdash/engine"
)

// ============================================================================
// HANDLERS — query params → FilterSpec → engine output as JSON
// ============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type sourceInfo struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
}

func (s *Server) handleSources(w http.ResponseWriter, _ *http.Request) {
	out := make([]sourceInfo, 0)
	for _, name := range s.store.Names() {
		if p, ok := s.store.Get(name); ok {
			out = append(out, sourceInfo{Name: name, Rows: p.Raw.NumRows()})
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	p, ok := s.store.Get(r.URL.Query().Get("source"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown source")
		return
	}
	writeJSON(w, http.StatusOK, p.FilterOptions())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	p, ok := s.store.Get(query.Get("source"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown source")
		return
	}

	spec, err := parseFilterSpec(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	dash := p.Dashboard(spec, s.engineOpts...)
	dashboardBuildSeconds.Observe(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, dash)
}

// parseFilterSpec maps query parameters onto a FilterSpec. Categorical
// params repeat (?territory=US&territory=EU); from/to are calendar dates
// and get the end-of-day widening here, before the engine ever sees them.
func parseFilterSpec(query url.Values) (engine.FilterSpec, error) {
	spec := engine.FilterSpec{
		Territory:       query["territory"],
		GeoArchetype:    query["geo_archetype"],
		CourierFlow:     query["courier_flow"],
		MerchantSurface: query["merchant_surface"],
	}

	from, to := query.Get("from"), query.Get("to")
	if (from == "") != (to == "") {
		return spec, fmt.Errorf("from and to must be supplied together")
	}
	if from != "" {
		start, err := time.Parse("2006-01-02", from)
		if err != nil {
			return spec, fmt.Errorf("invalid from date %q", from)
		}
		end, err := time.Parse("2006-01-02", to)
		if err != nil {
			return spec, fmt.Errorf("invalid to date %q", to)
		}
		r := engine.DayRange(start, end)
		spec.RequestTime = &r
	}

	var err error
	if spec.Pickup, err = parseRange(query, "pickup_min", "pickup_max"); err != nil {
		return spec, err
	}
	if spec.Dropoff, err = parseRange(query, "dropoff_min", "dropoff_max"); err != nil {
		return spec, err
	}

	return spec, nil
}

func parseRange(query url.Values, minKey, maxKey string) (*engine.NumberRange, error) {
	minStr, maxStr := query.Get(minKey), query.Get(maxKey)
	if minStr == "" && maxStr == "" {
		return nil, nil
	}
	if minStr == "" || maxStr == "" {
		return nil, fmt.Errorf("%s and %s must be supplied together", minKey, maxKey)
	}
	min, err := strconv.ParseFloat(minStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", minKey, minStr)
	}
	max, err := strconv.ParseFloat(maxStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", maxKey, maxStr)
	}
	return &engine.NumberRange{Min: min, Max: max}, nil
}

// ============================================================================
// RESPONSE HELPERS
// ============================================================================

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
