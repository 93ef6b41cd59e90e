package playback

import "sort"

// Diff computes the minimal enter/leave delta between two visibility
// snapshots: entering = current − previous, leaving = previous − current.
// Identities present in both sets are untouched, which is the whole point of
// diffing instead of clear-and-redraw. The delta is recomputed from scratch
// on every call, never derived from earlier deltas, so it stays correct when
// the cursor moves backward. Results are sorted for deterministic output.
func Diff(previous, current map[string]struct{}) (entering, leaving []string) {
	for id := range current {
		if _, ok := previous[id]; !ok {
			entering = append(entering, id)
		}
	}
	for id := range previous {
		if _, ok := current[id]; !ok {
			leaving = append(leaving, id)
		}
	}
	sort.Strings(entering)
	sort.Strings(leaving)
	return entering, leaving
}
