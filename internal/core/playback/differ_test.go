package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func set(ids ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name         string
		previous     map[string]struct{}
		current      map[string]struct{}
		wantEntering []string
		wantLeaving  []string
	}{
		{
			name:         "forward_step_adds_only",
			previous:     set("a"),
			current:      set("a", "b", "c"),
			wantEntering: []string{"b", "c"},
			wantLeaving:  nil,
		},
		{
			name:         "backward_step_removes_only",
			previous:     set("a", "b", "c"),
			current:      set("a"),
			wantEntering: nil,
			wantLeaving:  []string{"b", "c"},
		},
		{
			name:         "identical_sets_produce_empty_delta",
			previous:     set("a", "b"),
			current:      set("a", "b"),
			wantEntering: nil,
			wantLeaving:  nil,
		},
		{
			name:         "disjoint_sets_swap_everything",
			previous:     set("a"),
			current:      set("b"),
			wantEntering: []string{"b"},
			wantLeaving:  []string{"a"},
		},
		{
			name:         "both_empty",
			previous:     set(),
			current:      set(),
			wantEntering: nil,
			wantLeaving:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entering, leaving := Diff(tt.previous, tt.current)
			assert.Equal(t, tt.wantEntering, entering)
			assert.Equal(t, tt.wantLeaving, leaving)
		})
	}
}

// Applying the delta to the previous set must reproduce the current set
// exactly, in either temporal direction.
func TestDiffApplyRoundTrip(t *testing.T) {
	previous := set("a", "b", "c", "d")
	current := set("b", "d", "e", "f")

	entering, leaving := Diff(previous, current)

	applied := make(map[string]struct{})
	for id := range previous {
		applied[id] = struct{}{}
	}
	for _, id := range entering {
		applied[id] = struct{}{}
	}
	for _, id := range leaving {
		delete(applied, id)
	}

	assert.Equal(t, current, applied)
}

func TestDiffOutputIsSorted(t *testing.T) {
	entering, leaving := Diff(set("z", "m", "a"), set("y", "b", "k"))
	assert.Equal(t, []string{"b", "k", "y"}, entering)
	assert.Equal(t, []string{"a", "m", "z"}, leaving)
}
