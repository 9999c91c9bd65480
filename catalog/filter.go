package catalog

import "strings"

// Filter narrows a posting list. Every field is optional; the zero value
// matches everything. Term and Location are case-insensitive substring
// matches (Term against title, company, and description; Location against
// location); Type is an exact match.
type Filter struct {
	Term     string
	Location string
	Type     Type
}

// Empty reports whether the filter has no active constraint.
func (f Filter) Empty() bool {
	return strings.TrimSpace(f.Term) == "" &&
		strings.TrimSpace(f.Location) == "" &&
		f.Type == ""
}

// Apply returns the subset of jobs matching every active constraint, in
// input order. It is pure: no ranking, no side effects, deterministic for
// the same inputs.
func Apply(jobs []Job, f Filter) []Job {
	if f.Empty() {
		return jobs
	}

	term := strings.ToLower(strings.TrimSpace(f.Term))
	location := strings.ToLower(strings.TrimSpace(f.Location))

	out := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if term != "" && !matchesTerm(j, term) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(j.Location), location) {
			continue
		}
		if f.Type != "" && j.Type != f.Type {
			continue
		}
		out = append(out, j)
	}
	return out
}

func matchesTerm(j Job, term string) bool {
	return strings.Contains(strings.ToLower(j.Title), term) ||
		strings.Contains(strings.ToLower(j.Company), term) ||
		strings.Contains(strings.ToLower(j.Description), term)
}
