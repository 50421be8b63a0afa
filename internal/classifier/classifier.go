package classifier

import (
	"fmt"
	"strings"

	"github.com/propdesk/fundedbot/internal/models"
)

// Config holds the scoring tunables. The values were tuned by hand against
// real traffic, so they are policy, not invariants: override them per
// deployment through the config file.
type Config struct {
	// Keywords longer than this score double.
	KeywordLengthCutoff int
	// Confidence multiplier for the boosted intent.
	BoostMultiplier float64
	// The intent that receives the boost. Drawdown questions are the most
	// specific and highest-value in the domain, but the drawdown definition
	// has a small keyword vocabulary and would otherwise lose to broader
	// intents on keyword-count dilution alone.
	BoostIntent models.IntentType
}

// DefaultConfig returns the production tunables.
func DefaultConfig() Config {
	return Config{
		KeywordLengthCutoff: 6,
		BoostMultiplier:     2.0,
		BoostIntent:         models.IntentDrawdown,
	}
}

// Classifier scores questions against a fixed intent table. It is pure and
// stateless per call; a single instance is safe for concurrent use.
type Classifier struct {
	cfg     Config
	intents []models.IntentDefinition
}

// DefaultIntents is the intent table of the production deployment.
// The "cuentas" definition is aliased to the plans type: account-size
// questions and pricing questions route to the same answer path.
func DefaultIntents() []models.IntentDefinition {
	return []models.IntentDefinition{
		{
			Name:     "precios",
			Keywords: []string{"precio", "cuesta", "costo", "cuanto", "pagar", "mensualidad", "descuento", "oferta", "barato"},
			Priority: 8,
			Type:     models.IntentPlans,
			Subtypes: []string{"precio", "descuento", "comparacion"},
		},
		{
			Name:     "drawdown",
			Keywords: []string{"drawdown", "trailing", "perdida maxima", "limite de perdida", "dd"},
			Priority: 10,
			Type:     models.IntentDrawdown,
			Subtypes: []string{"trailing", "eod", "intradia"},
		},
		{
			Name:     "retiros",
			Keywords: []string{"retiro", "retirar", "payout", "cobrar", "cobro", "ganancias", "comision"},
			Priority: 7,
			Type:     models.IntentWithdrawal,
			Subtypes: []string{"payout", "minimo", "frecuencia"},
		},
		{
			Name:     "plataforma",
			Keywords: []string{"plataforma", "ninjatrader", "tradovate", "tradingview", "rithmic", "quantower"},
			Priority: 6,
			Type:     models.IntentPlatform,
			Subtypes: []string{"ninjatrader", "tradovate", "tradingview"},
		},
		{
			Name:     "evaluacion",
			Keywords: []string{"evaluacion", "examen", "fondeo", "objetivo", "fase", "aprobar", "pasar"},
			Priority: 6,
			Type:     models.IntentEvaluation,
			Subtypes: []string{"objetivo", "reglas", "tiempo"},
		},
		{
			Name:     "cuentas",
			Keywords: []string{"cuenta", "contrato", "balance", "tamaño", "capital", "50k", "100k", "150k"},
			Priority: 5,
			Type:     models.IntentPlans,
			Subtypes: []string{"tamaño", "contratos", "reset"},
		},
	}
}

// New validates the intent table and builds a classifier over it.
func New(cfg Config, intents []models.IntentDefinition) (*Classifier, error) {
	if len(intents) == 0 {
		return nil, fmt.Errorf("intent table is empty")
	}
	for _, def := range intents {
		if len(def.Keywords) == 0 {
			return nil, fmt.Errorf("intent %q has no keywords", def.Name)
		}
		if def.Priority < 1 || def.Priority > 10 {
			return nil, fmt.Errorf("intent %q priority %d out of range [1,10]", def.Name, def.Priority)
		}
	}
	return &Classifier{cfg: cfg, intents: intents}, nil
}

// Classify returns the best-matching intent for a question, or the general
// sentinel when no definition scores above zero. It never fails.
func (c *Classifier) Classify(question string) models.ClassificationResult {
	q := strings.ToLower(strings.TrimSpace(question))

	var (
		best      *models.IntentDefinition
		bestScore float64
		bestCount int
	)
	for i := range c.intents {
		def := &c.intents[i]

		score := 0
		matched := 0
		for _, kw := range def.Keywords {
			if !strings.Contains(q, kw) {
				continue
			}
			matched++
			// Longer keywords are rarer and more specific.
			if len(kw) > c.cfg.KeywordLengthCutoff {
				score += 2
			} else {
				score++
			}
		}
		if matched == 0 {
			continue
		}

		confidence := float64(score) / float64(len(def.Keywords))
		confidence *= float64(def.Priority) / 10.0
		if def.Type == c.cfg.BoostIntent {
			confidence *= c.cfg.BoostMultiplier
			if confidence > 1.0 {
				confidence = 1.0
			}
		}

		// Strict greater-than: declaration order breaks ties.
		if confidence > bestScore {
			best = def
			bestScore = confidence
			bestCount = matched
		}
	}

	if best == nil {
		return models.ClassificationResult{
			Type:       models.IntentGeneral,
			Priority:   1,
			Confidence: 0,
		}
	}
	if bestScore > 1.0 {
		bestScore = 1.0
	}
	return models.ClassificationResult{
		Type:            best.Type,
		Subtype:         DetectSubtype(q, best.Subtypes),
		Priority:        best.Priority,
		Confidence:      bestScore,
		MatchedKeywords: bestCount,
	}
}

// DetectSubtype picks the first subtype label occurring in the question.
// An unmatched subtype is not an error: it silently defaults to the first
// label in the list.
func DetectSubtype(question string, subtypes []string) string {
	if len(subtypes) == 0 {
		return ""
	}
	q := strings.ToLower(question)
	for _, s := range subtypes {
		if strings.Contains(q, s) {
			return s
		}
	}
	return subtypes[0]
}
