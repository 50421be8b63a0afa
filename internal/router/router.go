// Package router composes the classifier, firm resolver and canned-answer
// table into the routing decision for each incoming question: serve a
// deterministic answer now, or fall through to retrieval and generation.
package router

import (
	"strings"

	"go.uber.org/zap"

	"github.com/propdesk/fundedbot/internal/classifier"
	"github.com/propdesk/fundedbot/internal/firms"
	"github.com/propdesk/fundedbot/internal/models"
	"github.com/propdesk/fundedbot/internal/responder"
)

// Config holds the two routing thresholds. They are deliberately separate
// gates: MinAnswerConfidence only guards canned answers, BypassConfidence
// is the stricter predicate for skipping the FAQ lookup entirely.
type Config struct {
	MinAnswerConfidence float64
	BypassConfidence    float64
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		MinAnswerConfidence: 0.05,
		BypassConfidence:    0.8,
	}
}

// Router is stateless per call and safe for concurrent use.
type Router struct {
	cfg        Config
	classifier *classifier.Classifier
	firms      *firms.Resolver
	responder  *responder.Responder
	logger     *zap.Logger
}

// New wires the router from its collaborators.
func New(cfg Config, c *classifier.Classifier, f *firms.Resolver, r *responder.Responder, logger *zap.Logger) *Router {
	return &Router{
		cfg:        cfg,
		classifier: c,
		firms:      f,
		responder:  r,
		logger:     logger,
	}
}

// Route classifies a question and decides whether a canned answer can be
// served immediately. A firm hint from the caller wins over alias
// resolution. Route is total: it always returns a decision, never an
// error; an unresolved firm just means the generic retrieval path.
func (r *Router) Route(question, firmHint string) models.RouteDecision {
	q := strings.TrimSpace(question)
	res := r.classifier.Classify(q)

	firm := firmHint
	if firm == "" {
		firm = r.firms.Resolve(q)
	}

	decision := models.RouteDecision{
		Intent:     res.Type,
		Subtype:    res.Subtype,
		Firm:       firm,
		Priority:   res.Priority,
		Confidence: res.Confidence,
	}

	if res.Confidence >= r.cfg.MinAnswerConfidence && firm != "" {
		if answer, ok := r.responder.Lookup(res.Type, firm); ok {
			decision.Answer = &answer
			decision.Bypass = true
			// The canned answer never touched retrieval; caching it on
			// the slow path would shadow fresher retrieved answers.
			decision.Cacheable = false

			r.logger.Info("deterministic answer generated",
				zap.String("intent", string(res.Type)),
				zap.String("firm", firm),
				zap.Float64("confidence", res.Confidence))
			return decision
		}
	}

	decision.Cacheable = true
	r.logger.Info("route computed",
		zap.String("intent", string(res.Type)),
		zap.String("subtype", res.Subtype),
		zap.String("firm", firm),
		zap.Float64("confidence", res.Confidence),
		zap.Int("matched_keywords", res.MatchedKeywords))
	return decision
}

// ShouldBypassFAQ reports whether the caller may skip the FAQ lookup even
// without a canned answer. It requires the highest-priority intent, a
// resolved firm, and near-certain confidence.
func (r *Router) ShouldBypassFAQ(res models.ClassificationResult, firm string) bool {
	return res.Confidence >= r.cfg.BypassConfidence &&
		res.Type == models.IntentDrawdown &&
		firm != ""
}
