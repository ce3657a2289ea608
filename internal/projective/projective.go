// Package projective detects crossing dependency arcs.
package projective

import (
	"sort"

	"github.com/kobzarvs/depedit/internal/sentence"
)

// IsProjective reports whether none of the arcs ending in targets crosses
// another arc. An arc (h, d) is crossed when a token strictly between h and
// d has its head strictly outside that span, or a token outside the span has
// its head strictly inside. Targets without a head are skipped.
func IsProjective(tokens []*sentence.Token, targets []int) bool {
	byID := make(map[int]*sentence.Token, len(tokens))
	for _, t := range tokens {
		byID[t.ID] = t
	}
	for _, id := range targets {
		t, ok := byID[id]
		if !ok || !t.HasHead() {
			continue
		}
		if crossed(tokens, t.Head, t.ID) {
			return false
		}
	}
	return true
}

// NonProjective returns the ids of every token whose incoming arc is
// crossed, in ascending order.
func NonProjective(tokens []*sentence.Token) []int {
	var ids []int
	for _, t := range tokens {
		if t.HasHead() && crossed(tokens, t.Head, t.ID) {
			ids = append(ids, t.ID)
		}
	}
	sort.Ints(ids)
	return ids
}

func crossed(tokens []*sentence.Token, head, dep int) bool {
	lo, hi := head, dep
	if lo > hi {
		lo, hi = hi, lo
	}
	for _, t := range tokens {
		if !t.HasHead() {
			continue
		}
		inside := t.ID > lo && t.ID < hi
		headInside := t.Head > lo && t.Head < hi
		headOutside := t.Head < lo || t.Head > hi
		if inside && headOutside {
			return true
		}
		if !inside && t.ID != lo && t.ID != hi && headInside {
			return true
		}
	}
	return false
}
