package internal

import (
	"net/http"
	"strings"

	"portfolio-api/internal/store"
)

// parseListOptions reads the optional sort parameter. Unknown sort keys are
// dropped, so a bare request lists everything in id order.
func parseListOptions(r *http.Request) store.ListOptions {
	return store.ListOptions{
		Sort: strings.TrimSpace(r.URL.Query().Get("sort")),
	}
}
