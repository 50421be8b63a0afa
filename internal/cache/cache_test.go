package cache

import (
	"testing"
	"time"
)

func newTestCache() *ResponseCache {
	return New(DefaultConfig(), DefaultPrecomputed())
}

func TestExactRoundTrip(t *testing.T) {
	c := newTestCache()

	c.Set("cuanto cuesta apex", "apex", "respuesta", 0)

	hit, ok := c.Get("cuanto cuesta apex", "apex")
	if !ok {
		t.Fatal("expected exact hit after set")
	}
	if hit.Answer != "respuesta" {
		t.Fatalf("unexpected answer %q", hit.Answer)
	}
	if hit.Tier != TierExact {
		t.Fatalf("expected exact tier, got %s", hit.Tier)
	}
}

func TestExactKeyIncludesFirm(t *testing.T) {
	c := newTestCache()

	c.Set("cuanto cuesta", "apex", "respuesta apex", 0)

	if _, ok := c.Get("cuanto cuesta", "bulenox"); ok {
		t.Fatal("entry for apex must not serve bulenox")
	}
}

func TestSetIsIdempotent(t *testing.T) {
	c := newTestCache()

	c.Set("cuanto cuesta apex", "apex", "respuesta", 0)
	before := c.Stats().ExactSize
	c.Set("cuanto cuesta apex", "apex", "respuesta", 0)

	if after := c.Stats().ExactSize; after != before {
		t.Fatalf("re-setting the same key changed size: %d -> %d", before, after)
	}
	hit, ok := c.Get("cuanto cuesta apex", "apex")
	if !ok || hit.Answer != "respuesta" {
		t.Fatalf("expected answer to survive idempotent set, got %q ok=%v", hit.Answer, ok)
	}
}

func TestSemanticTierMatchesEquivalentPhrasing(t *testing.T) {
	c := newTestCache()

	c.Set("cual es el precio de apex", "apex", "respuesta", 0)

	// Different literal question, same keyword signature, same firm.
	hit, ok := c.Get("¿cual es el precio de apex?", "apex")
	if !ok {
		t.Fatal("expected semantic hit for equivalent phrasing")
	}
	if hit.Tier != TierSemantic {
		t.Fatalf("expected semantic tier, got %s", hit.Tier)
	}
	if hit.Answer != "respuesta" {
		t.Fatalf("unexpected answer %q", hit.Answer)
	}
}

func TestSemanticTierIsFirmScoped(t *testing.T) {
	c := newTestCache()

	c.Set("cual es el precio de apex", "apex", "respuesta", 0)

	if _, ok := c.Get("¿cual es el precio de apex?", "bulenox"); ok {
		t.Fatal("semantic entry for apex must not serve bulenox")
	}
}

func TestPrecomputedTier(t *testing.T) {
	c := newTestCache()

	hit, ok := c.Get("Que firma es mejor para principiantes", "")
	if !ok {
		t.Fatal("expected precomputed hit")
	}
	if hit.Tier != TierPrecomputed {
		t.Fatalf("expected precomputed tier, got %s", hit.Tier)
	}
}

func TestEntryTTLExpires(t *testing.T) {
	c := newTestCache()

	c.Set("pregunta", "apex", "respuesta", time.Nanosecond)
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("pregunta", "apex"); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestLRUBoundsSize(t *testing.T) {
	c := New(Config{MaxEntries: 2, TTL: time.Hour}, nil)

	c.Set("uno", "apex", "a", 0)
	c.Set("dos", "apex", "b", 0)
	c.Set("tres", "apex", "c", 0)

	stats := c.Stats()
	if stats.ExactSize > 2 {
		t.Fatalf("exact tier exceeded bound: %d", stats.ExactSize)
	}
	if _, ok := c.Get("uno", "apex"); ok {
		t.Fatal("least recently used entry should have been evicted")
	}
}

func TestStatsAccounting(t *testing.T) {
	c := newTestCache()

	c.Set("pregunta uno", "apex", "a", 0)
	c.Get("pregunta uno", "apex")   // hit
	c.Get("pregunta dos", "apex")   // miss
	c.Get("pregunta tres", "")      // miss

	stats := c.Stats()
	if stats.Hits != 1 {
		t.Fatalf("expected 1 hit, got %d", stats.Hits)
	}
	if stats.Misses != 2 {
		t.Fatalf("expected 2 misses, got %d", stats.Misses)
	}
	want := 1.0 / 3.0
	if diff := stats.HitRate - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected hit rate %f, got %f", want, stats.HitRate)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := newTestCache()
	done := make(chan struct{})

	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 200; j++ {
				c.Set("pregunta concurrente", "apex", "respuesta", 0)
				c.Get("pregunta concurrente", "apex")
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	hit, ok := c.Get("pregunta concurrente", "apex")
	if !ok || hit.Answer != "respuesta" {
		t.Fatal("entry lost under concurrent access")
	}
}
