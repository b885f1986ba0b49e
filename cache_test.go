package sherlock_test

import (
	"testing"

	"sherlock"
	"sherlock/board"
)

func TestIsLegalCachedMatchesIsLegal(t *testing.T) {
	b := mustParse(t, board.FENStartPos)
	cache := sherlock.NewCache(1)
	want := sherlock.IsLegal(b)
	if got := sherlock.IsLegalCached(b, cache); got != want {
		t.Fatalf("IsLegalCached(%v) = %v, want %v", b, got, want)
	}
}

func TestIsLegalCachedHitsOnSecondCall(t *testing.T) {
	b := mustParse(t, board.FENStartPos)
	cache := sherlock.NewCache(1)
	first := sherlock.IsLegalCached(b, cache)
	second := sherlock.IsLegalCached(b, cache)
	if first != second {
		t.Fatalf("cached verdict changed between calls: %v then %v", first, second)
	}
}

func TestIsLegalCachedNilCacheDegrades(t *testing.T) {
	b := mustParse(t, board.FENStartPos)
	if got, want := sherlock.IsLegalCached(b, nil), sherlock.IsLegal(b); got != want {
		t.Fatalf("IsLegalCached with a nil cache = %v, want %v", got, want)
	}
}

func TestNewCacheNonPositiveSizeUsesDefault(t *testing.T) {
	cache := sherlock.NewCache(0)
	if cache == nil {
		t.Fatalf("NewCache(0) must still return a usable cache")
	}
	b := mustParse(t, board.FENStartPos)
	sherlock.IsLegalCached(b, cache)
}

func TestIsLegalCachedDistinguishesPositions(t *testing.T) {
	cache := sherlock.NewCache(1)
	legal := mustParse(t, board.FENStartPos)
	illegal := mustParse(t, "rnbqkbnr/pppppppp/8/8/8/4K3/PPPPPPPP/RNBQKBNR w KQkq - 0 1")

	if !sherlock.IsLegalCached(legal, cache) {
		t.Fatalf("starting position must be legal")
	}
	if sherlock.IsLegalCached(illegal, cache) {
		t.Fatalf("two-kings position must be illegal")
	}
}
