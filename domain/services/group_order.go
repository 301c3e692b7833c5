package services

import "sort"

// ReconcileGroupOrder merges a timeline's persisted manual order with the
// set of group keys currently derivable from its events.
//
// If the stored order matches the live key set exactly (same elements, any
// arrangement), it is returned verbatim. Reconciling never reshuffles an
// order that is still fully backed. Otherwise the surviving subsequence of
// the stored order keeps its relative positions and genuinely new keys are
// appended newest-first. The same rule covers first render, event
// additions/removals, and grouping-mode switches, which favors continuity
// of a user's manual arrangement over pure recomputation.
func ReconcileGroupOrder(stored []string, live map[string]bool) []string {
	if len(stored) > 0 && exactSetMatch(stored, live) {
		return stored
	}

	kept := make([]string, 0, len(live))
	seen := make(map[string]bool, len(live))
	for _, key := range stored {
		if live[key] && !seen[key] {
			kept = append(kept, key)
			seen[key] = true
		}
	}

	fresh := make([]string, 0, len(live))
	for key := range live {
		if !seen[key] {
			fresh = append(fresh, key)
		}
	}
	// Keys are date strings, so lexicographic descending is newest-first.
	sort.Sort(sort.Reverse(sort.StringSlice(fresh)))

	return append(kept, fresh...)
}

// exactSetMatch reports whether stored contains exactly the live keys:
// no dangling stored keys, no live keys missing, no duplicates hiding a
// mismatch in the counts.
func exactSetMatch(stored []string, live map[string]bool) bool {
	seen := make(map[string]bool, len(stored))
	for _, key := range stored {
		if !live[key] || seen[key] {
			return false
		}
		seen[key] = true
	}
	return len(seen) == len(live)
}
