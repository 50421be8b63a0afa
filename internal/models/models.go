package models

import "time"

// IntentType is the canonical category a question is asking about.
type IntentType string

const (
	IntentPlans      IntentType = "plans"
	IntentDrawdown   IntentType = "drawdown"
	IntentWithdrawal IntentType = "retiros"
	IntentPlatform   IntentType = "plataforma"
	IntentEvaluation IntentType = "evaluacion"
	IntentGeneral    IntentType = "general"
)

// IntentDefinition is a static configuration entry for the classifier.
// Priority acts only as a multiplicative weight on the confidence, never
// as a sort key on its own.
type IntentDefinition struct {
	Name     string
	Keywords []string
	Priority int
	Type     IntentType
	Subtypes []string
}

// ClassificationResult is the classifier's output for a single question.
type ClassificationResult struct {
	Type            IntentType
	Subtype         string
	Priority        int
	Confidence      float64
	MatchedKeywords int
}

// FirmRecord describes one of the prop-trading firms the bot has curated
// data for. The firm set is fixed at startup and never changes at runtime.
type FirmRecord struct {
	Slug    string
	Name    string
	Badge   string
	Aliases []string
}

// DeterministicAnswer is a canned, fully formatted response served without
// touching the retrieval pipeline.
type DeterministicAnswer struct {
	Title   string
	Content string
}

// RouteDecision is what the router hands back to the transport layer.
// When Bypass is true, Answer carries a canned response and the slow path
// must not run; otherwise the caller proceeds to retrieval + generation
// and may cache the eventual answer.
type RouteDecision struct {
	Intent     IntentType
	Subtype    string
	Firm       string
	Priority   int
	Confidence float64
	Answer     *DeterministicAnswer
	Bypass     bool
	Cacheable  bool
}

// FAQ is a row from the FAQ store.
type FAQ struct {
	ID       int64
	Firm     string
	Question string
	Answer   string
}

// AccountPlan is a structured account-plan row for a firm.
type AccountPlan struct {
	ID           int64
	Firm         string
	Name         string
	Size         string
	MonthlyPrice float64
	DrawdownType string
	ProfitTarget float64
}

// Message records one answered user question.
type Message struct {
	ID        string
	UserID    int64
	Question  string
	Answer    string
	Intent    string
	Firm      string
	CreatedAt time.Time
}
