package refresh

import (
	"encoding/json"
	"net/http"

	"github.com/NWFWMD-IT/Wells/internal/db"
	"github.com/go-chi/chi/v5"
)

// GroupsHandler lists the refreshable dataset groups.
func GroupsHandler(w http.ResponseWriter, r *http.Request) {
	names := []string{}
	for _, g := range Groups() {
		names = append(names, g.Name)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(names); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RefreshHandler runs a full refresh of one dataset group and reports the
// row counts. The operation takes no parameters; the group name in the URL
// selects everything.
func RefreshHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "group")
	group, ok := GroupByName(name)
	if !ok {
		http.Error(w, "Unknown dataset group: "+name, http.StatusNotFound)
		return
	}

	res, err := RunGroup(db.DB, registry, group)
	if err != nil {
		// The transaction already rolled back; the feature classes are
		// unchanged. The scheduler owns alerting, so the error text is
		// enough here.
		http.Error(w, "Refresh failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
