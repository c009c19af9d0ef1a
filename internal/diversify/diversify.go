// Package diversify selects a small, non-redundant subset of topic labels
// for display, so near-duplicates like "battery life" and "battery and life"
// don't end up side by side.
package diversify

import (
	"math/rand"
	"strings"
	"time"
)

// Picker selects diversified topic subsets. Selection order is randomized on
// every call, so repeated picks over the same pool yield different but
// equally valid panels. Inject a seeded source for deterministic tests.
type Picker struct {
	rng *rand.Rand
}

// New returns a Picker backed by a time-seeded random source.
func New() *Picker {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Picker using the given random source.
func NewWithSource(src rand.Source) *Picker {
	return &Picker{rng: rand.New(src)}
}

// Normalize prepares a topic string for similarity comparison: lower-case,
// non-alphanumerics to spaces, whitespace collapsed.
func Normalize(topic string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(topic) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Similar reports whether two topics are near-duplicates: identical after
// normalization, or sharing more than half their significant words relative
// to the smaller label. Words of one or two characters don't count.
func Similar(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return true
	}

	wa := significantWords(na)
	wb := significantWords(nb)
	if len(wa) == 0 || len(wb) == 0 {
		return false
	}

	shared := 0
	for w := range wa {
		if wb[w] {
			shared++
		}
	}
	smaller := len(wa)
	if len(wb) < smaller {
		smaller = len(wb)
	}
	return float64(shared)/float64(smaller) > 0.5
}

func significantWords(normalized string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(normalized) {
		if len(w) > 2 {
			words[w] = true
		}
	}
	return words
}

// Pick returns up to k mutually dissimilar topics from pool. The pool is
// shuffled, then walked greedily, accepting a candidate only if it is not
// similar to any already accepted. If the diversity pass comes up short, the
// remaining shuffled candidates backfill the result regardless of
// similarity, without duplicating earlier picks.
func (p *Picker) Pick(pool []string, k int) []string {
	if k <= 0 || len(pool) == 0 {
		return nil
	}

	shuffled := make([]string, len(pool))
	copy(shuffled, pool)
	p.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	picked := make([]string, 0, k)
	taken := make(map[int]bool)

	for i, candidate := range shuffled {
		if len(picked) == k {
			return picked
		}
		clash := false
		for _, accepted := range picked {
			if Similar(candidate, accepted) {
				clash = true
				break
			}
		}
		if !clash {
			picked = append(picked, candidate)
			taken[i] = true
		}
	}

	// Backfill from the leftovers in shuffled order.
	for i, candidate := range shuffled {
		if len(picked) == k {
			break
		}
		if !taken[i] {
			picked = append(picked, candidate)
			taken[i] = true
		}
	}
	return picked
}
