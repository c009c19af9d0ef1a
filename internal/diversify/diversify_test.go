package diversify

import (
	"math/rand"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Battery Life", "battery life"},
		{"battery-life!!", "battery life"},
		{"  Screen   Quality  ", "screen quality"},
		{"Wi-Fi 6E", "wi fi 6e"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSimilar(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"battery life", "Battery Life", true},     // identical normalized
		{"battery life", "battery and life", true}, // 2/2 shared significant words
		{"battery life", "screen quality", false},
		{"camera quality", "camera", true},         // 1/1 > 0.5
		{"fast charging", "charging speed", false}, // 1/2 = 0.5, threshold is strict
		{"sound", "sound quality issues", true},
		{"it is", "is it", false}, // no significant words, forms differ
	}
	for _, tt := range tests {
		if got := Similar(tt.a, tt.b); got != tt.want {
			t.Errorf("Similar(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSimilarShortWordsIgnored(t *testing.T) {
	// "of" and "on" are too short to count as shared words.
	if Similar("tip of day", "tip on day") != true {
		t.Error("expected similar: tip/day shared, 2/2 > 0.5")
	}
	if Similar("a b c", "a b d") {
		t.Error("expected not similar: no significant words at all")
	}
}

func TestPickNoMutualSimilarity(t *testing.T) {
	pool := []string{
		"battery life", "battery and life", "screen quality",
		"camera", "camera quality", "shipping speed",
	}
	p := NewWithSource(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		picked := p.Pick(pool, 3)
		if len(picked) != 3 {
			t.Fatalf("expected 3 picks, got %d", len(picked))
		}
		for i := 0; i < len(picked); i++ {
			for j := i + 1; j < len(picked); j++ {
				if Similar(picked[i], picked[j]) {
					t.Fatalf("trial %d: picked similar pair %q / %q", trial, picked[i], picked[j])
				}
			}
		}
	}
}

func TestPickBackfill(t *testing.T) {
	// Everything is similar to everything; diversity pass yields 1,
	// backfill must still deliver k without duplicates.
	pool := []string{"battery life", "battery and life", "life battery"}
	p := NewWithSource(rand.NewSource(7))

	picked := p.Pick(pool, 3)
	if len(picked) != 3 {
		t.Fatalf("expected backfill to 3, got %d", len(picked))
	}
	seen := make(map[string]bool)
	for _, topic := range picked {
		if seen[topic] {
			t.Fatalf("duplicate pick %q", topic)
		}
		seen[topic] = true
	}
}

func TestPickExactCount(t *testing.T) {
	pool := []string{"alpha one", "bravo two", "charlie three", "delta four", "echo five"}
	p := NewWithSource(rand.NewSource(1))

	for trial := 0; trial < 20; trial++ {
		if got := len(p.Pick(pool, 4)); got != 4 {
			t.Fatalf("pool >= k must return exactly k, got %d", got)
		}
	}
}

func TestPickSmallPool(t *testing.T) {
	p := NewWithSource(rand.NewSource(3))
	if got := len(p.Pick([]string{"only one"}, 5)); got != 1 {
		t.Errorf("pool smaller than k returns whole pool, got %d", got)
	}
	if got := p.Pick(nil, 5); got != nil {
		t.Errorf("empty pool returns nil, got %v", got)
	}
	if got := p.Pick([]string{"x"}, 0); got != nil {
		t.Errorf("k = 0 returns nil, got %v", got)
	}
}

func TestPickDeterministicWithSeed(t *testing.T) {
	pool := []string{"alpha one", "bravo two", "charlie three", "delta four"}

	a := NewWithSource(rand.NewSource(99)).Pick(pool, 2)
	b := NewWithSource(rand.NewSource(99)).Pick(pool, 2)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("same seed, different picks: %v vs %v", a, b)
		}
	}
}

func TestPickDoesNotMutatePool(t *testing.T) {
	pool := []string{"alpha one", "bravo two", "charlie three"}
	orig := make([]string, len(pool))
	copy(orig, pool)

	NewWithSource(rand.NewSource(5)).Pick(pool, 2)

	for i := range pool {
		if pool[i] != orig[i] {
			t.Fatal("Pick mutated the input pool")
		}
	}
}
