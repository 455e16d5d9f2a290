package store

import (
	"sort"
	"strings"

	"portfolio-api/internal/models"
)

// ListOptions orders List. The zero value lists every project in id order.
type ListOptions struct {
	Sort string // comma-separated keys, '-' prefix for descending
}

// SortKey is one ORDER BY term.
type SortKey struct {
	Column string
	Desc   bool
}

// sortColumns whitelists the sort keys a caller may use.
var sortColumns = map[string]string{
	"id":         "id",
	"title":      "title",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// ParseSort turns "title,-updated_at" into sort keys, dropping unknown names.
// The result always ends with id so the order is total.
func ParseSort(s string) []SortKey {
	var keys []SortKey
	hasID := false
	for _, raw := range strings.Split(s, ",") {
		name := strings.TrimSpace(raw)
		desc := strings.HasPrefix(name, "-")
		name = strings.TrimPrefix(name, "-")
		col, ok := sortColumns[name]
		if !ok {
			continue
		}
		if col == "id" {
			hasID = true
		}
		keys = append(keys, SortKey{Column: col, Desc: desc})
	}
	if !hasID {
		keys = append(keys, SortKey{Column: "id"})
	}
	return keys
}

// orderByClause renders keys as " ORDER BY ...".
func orderByClause(keys []SortKey) string {
	clauses := make([]string, 0, len(keys))
	for _, k := range keys {
		dir := " ASC"
		if k.Desc {
			dir = " DESC"
		}
		clauses = append(clauses, k.Column+dir)
	}
	return " ORDER BY " + strings.Join(clauses, ", ")
}

// ApplyListOptions orders an in-memory slice the same way the SQL
// implementation does. The input is not modified.
func ApplyListOptions(projects []models.Project, opts ListOptions) []models.Project {
	out := make([]models.Project, len(projects))
	copy(out, projects)

	keys := ParseSort(opts.Sort)
	sort.SliceStable(out, func(i, j int) bool {
		for _, k := range keys {
			c := compareColumn(out[i], out[j], k.Column)
			if c == 0 {
				continue
			}
			if k.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return out
}

func compareColumn(a, b models.Project, col string) int {
	switch col {
	case "title":
		return strings.Compare(a.Title, b.Title)
	case "created_at":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "updated_at":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	}
}
