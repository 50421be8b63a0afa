// Package cache implements the three-tier response cache: exact match,
// semantic near-match, and a precomputed table of high-frequency answers.
// Tiers are consulted in that order; first hit wins.
package cache

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/propdesk/fundedbot/internal/keywords"
)

// Tier identifies which lookup level served an answer.
type Tier string

const (
	TierExact       Tier = "exact"
	TierSemantic    Tier = "semantic"
	TierPrecomputed Tier = "precomputed"
)

// Config sizes the two dynamic tiers. Entries past MaxEntries are evicted
// least-recently-used; TTL of zero keeps entries until evicted.
type Config struct {
	MaxEntries int
	TTL        time.Duration
}

// DefaultConfig bounds each dynamic tier at 1024 entries with a 24h TTL.
// The original deployment never expired entries, which grows without
// bound under real traffic; a bounded TTL LRU per tier is the fix.
func DefaultConfig() Config {
	return Config{MaxEntries: 1024, TTL: 24 * time.Hour}
}

type entry struct {
	answer    string
	createdAt time.Time
	ttl       time.Duration
	hits      int64
}

func (e *entry) expired(now time.Time) bool {
	return e.ttl > 0 && now.Sub(e.createdAt) > e.ttl
}

// ResponseCache is safe for concurrent use: the underlying LRUs lock
// internally and the counters are atomics.
type ResponseCache struct {
	exact    *expirable.LRU[string, *entry]
	semantic *expirable.LRU[string, *entry]
	static   map[string]string

	hits   [3]atomic.Int64
	misses atomic.Int64
}

// Result reports a cache hit and the tier that produced it.
type Result struct {
	Answer string
	Tier   Tier
}

// Stats is the observability snapshot exposed to the /stats command.
type Stats struct {
	Hits         int64
	Misses       int64
	HitRate      float64
	ExactSize    int
	SemanticSize int
	StaticSize   int
}

// New builds a cache with an optional precomputed table. The precomputed
// tier is keyed by normalized question only; its answers are firm-agnostic.
func New(cfg Config, precomputed map[string]string) *ResponseCache {
	static := make(map[string]string, len(precomputed))
	for q, a := range precomputed {
		static[normalize(q)] = a
	}
	return &ResponseCache{
		exact:    expirable.NewLRU[string, *entry](cfg.MaxEntries, nil, cfg.TTL),
		semantic: expirable.NewLRU[string, *entry](cfg.MaxEntries, nil, cfg.TTL),
		static:   static,
	}
}

// DefaultPrecomputed is the startup table of firm-agnostic answers for the
// questions the bot sees most.
func DefaultPrecomputed() map[string]string {
	return map[string]string{
		"que firma es mejor para principiantes": "Para empezar, Apex y Bulenox son las opciones más accesibles: evaluación de una sola fase y precio de entrada bajo. Apex suele tener descuentos del 80% en la mensualidad.",
		"que es una cuenta fondeada":            "Una cuenta fondeada es una cuenta de trading con capital de la firma: tú operas, sigues sus reglas de riesgo y te llevas un porcentaje de las ganancias (normalmente 80-90%).",
		"como funciona la evaluacion":           "La evaluación es una fase de prueba: debes alcanzar un objetivo de ganancias sin violar el drawdown máximo. Al aprobarla, la firma te asigna una cuenta con capital real.",
	}
}

// Get consults the tiers in order. Every call counts as exactly one hit
// on the serving tier or one miss.
func (c *ResponseCache) Get(question, firm string) (Result, bool) {
	now := time.Now()

	if e, ok := c.lookup(c.exact, exactKey(question, firm), now); ok {
		c.hits[0].Add(1)
		return Result{Answer: e.answer, Tier: TierExact}, true
	}
	if e, ok := c.lookup(c.semantic, semanticKey(question, firm), now); ok {
		c.hits[1].Add(1)
		return Result{Answer: e.answer, Tier: TierSemantic}, true
	}
	if a, ok := c.static[normalize(question)]; ok {
		c.hits[2].Add(1)
		return Result{Answer: a, Tier: TierPrecomputed}, true
	}

	c.misses.Add(1)
	return Result{}, false
}

// Set stores an answer under the exact key and registers the question's
// semantic signature so near-identical questions for the same firm hit
// Tier 2. Re-setting the same key is idempotent.
func (c *ResponseCache) Set(question, firm, answer string, ttl time.Duration) {
	e := &entry{answer: answer, createdAt: time.Now(), ttl: ttl}
	c.exact.Add(exactKey(question, firm), e)
	c.semantic.Add(semanticKey(question, firm), e)
}

func (c *ResponseCache) lookup(l *expirable.LRU[string, *entry], key string, now time.Time) (*entry, bool) {
	e, ok := l.Get(key)
	if !ok {
		return nil, false
	}
	if e.expired(now) {
		l.Remove(key)
		return nil, false
	}
	atomic.AddInt64(&e.hits, 1)
	return e, true
}

// Stats returns the current hit/miss accounting and per-tier sizes.
func (c *ResponseCache) Stats() Stats {
	hits := c.hits[0].Load() + c.hits[1].Load() + c.hits[2].Load()
	misses := c.misses.Load()
	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}
	return Stats{
		Hits:         hits,
		Misses:       misses,
		HitRate:      rate,
		ExactSize:    c.exact.Len(),
		SemanticSize: c.semantic.Len(),
		StaticSize:   len(c.static),
	}
}

func normalize(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

func exactKey(question, firm string) string {
	return normalize(question) + "|" + firm
}

func semanticKey(question, firm string) string {
	return keywords.Signature(question) + "|" + firm
}
