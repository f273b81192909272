package noise

import (
	"math"
	"testing"
)

func TestRandomFirstValues(t *testing.T) {
	r := NewRandom(0)
	// 1664525*0 + 1013904223
	if got, want := r.Float(), 1013904223.0/twoPow32; got != want {
		t.Fatalf("first draw = %v, want %v", got, want)
	}
	// 1664525*1013904223 + 1013904223 mod 2^32
	z := uint32(1013904223)
	z = 1664525*z + 1013904223
	want := float64(z) / twoPow32
	if got := r.Float(); got != want {
		t.Fatalf("second draw = %v, want %v", got, want)
	}
}

func TestRandomDeterministic(t *testing.T) {
	a := NewRandom(42)
	b := NewRandom(42)
	for i := 0; i < 1000; i++ {
		if x, y := a.Float(), b.Float(); x != y {
			t.Fatalf("draw %d differs: %v != %v", i, x, y)
		}
	}
}

func TestRandomRanges(t *testing.T) {
	r := NewRandom(7)
	for i := 0; i < 5000; i++ {
		f := r.Float()
		if f < 0 || f >= 1 {
			t.Fatalf("Float out of range: %v", f)
		}
		v := r.Range(-3, 5)
		if v < -3 || v >= 5 {
			t.Fatalf("Range out of range: %v", v)
		}
		n := r.Intn(6)
		if n < 0 || n >= 6 {
			t.Fatalf("Intn out of range: %v", n)
		}
	}
}

func TestRandomIntnNonPositiveConsumesDraw(t *testing.T) {
	a := NewRandom(3)
	b := NewRandom(3)
	if got := a.Intn(0); got != 0 {
		t.Errorf("Intn(0) = %d, want 0", got)
	}
	b.Float()
	if a.Float() != b.Float() {
		t.Error("Intn(0) should advance the stream by one draw")
	}
}

func TestRandomReset(t *testing.T) {
	r := NewRandom(99)
	first := r.Float()
	r.Float()
	r.Reset()
	if got := r.Float(); got != first {
		t.Errorf("after Reset got %v, want %v", got, first)
	}
}

func TestDeriveIndependentStreams(t *testing.T) {
	r := NewRandom(42)
	dirt := r.Derive("dirt")
	tex := r.Derive("texture")
	if dirt.Seed() == tex.Seed() {
		t.Fatal("derived seeds should differ per label")
	}
	if again := r.Derive("dirt"); again.Seed() != dirt.Seed() {
		t.Error("Derive should be a pure function of seed and label")
	}
	before := NewRandom(42)
	if r.Float() != before.Float() {
		t.Error("Derive must not advance the parent stream")
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	r := NewRandom(5)
	xs := []int{0, 1, 2, 3, 4, 5, 6, 7}
	r.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
	seen := make(map[int]bool)
	for _, x := range xs {
		seen[x] = true
	}
	if len(seen) != 8 {
		t.Errorf("shuffle lost elements: %v", xs)
	}
}

func TestHashSeedSpreads(t *testing.T) {
	seen := make(map[uint32]bool)
	for s := uint32(0); s < 64; s++ {
		h := HashSeed(s, "x")
		if seen[h] {
			t.Fatalf("collision at seed %d", s)
		}
		seen[h] = true
	}
	if math.IsNaN(NewRandom(HashSeed(1, "")).Float()) {
		t.Fatal("unexpected NaN")
	}
}
