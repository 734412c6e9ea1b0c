// internal/lookup/lookup.go

// Package lookup implements the free-text resolver shared by the member
// and catalog directories: normalize the query, collect substring
// candidates across an entity's searchable fields, and auto-select only
// when the match is unambiguous.
package lookup

import "strings"

// Fields describes how one entity participates in a lookup. Contains
// holds every searchable field; Exact holds the subset eligible for the
// exact-match tiebreak (name, email, barcode).
type Fields struct {
	Contains []string
	Exact    []string
}

// Result is the outcome of a Resolve call. Selected is non-nil only when
// the query resolved unambiguously; Candidates always carries the full
// substring-match set so callers can surface it for manual choice.
type Result[T any] struct {
	Selected   *T
	Candidates []T
}

// Normalize trims and case-folds a query.
func Normalize(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// StripPrefix removes a known barcode prefix (such as "LIB") from an
// already-normalized query, so scanned codes and raw codes resolve alike.
func StripPrefix(q, prefix string) string {
	return strings.TrimPrefix(q, strings.ToLower(prefix))
}

// Resolve applies the lookup precedence: empty query clears the
// selection, a single substring candidate auto-selects, multiple
// candidates fall back to an exact match on the tiebreak fields, and an
// ambiguous exact match leaves the selection empty.
func Resolve[T any](query string, items []T, fields func(T) Fields) Result[T] {
	q := Normalize(query)
	if q == "" {
		return Result[T]{}
	}

	var candidates []T
	for _, item := range items {
		for _, f := range fields(item).Contains {
			if strings.Contains(Normalize(f), q) {
				candidates = append(candidates, item)
				break
			}
		}
	}

	res := Result[T]{Candidates: candidates}
	switch len(candidates) {
	case 0:
		return res
	case 1:
		res.Selected = &candidates[0]
		return res
	}

	var exact []int
	for i, item := range candidates {
		for _, f := range fields(item).Exact {
			if Normalize(f) == q {
				exact = append(exact, i)
				break
			}
		}
	}
	if len(exact) == 1 {
		res.Selected = &candidates[exact[0]]
	}
	return res
}
