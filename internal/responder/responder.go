// Package responder holds the hand-curated canned answers served when the
// classifier is confident enough to skip retrieval and generation.
package responder

import (
	"github.com/propdesk/fundedbot/internal/models"
)

// Key identifies a canned answer by intent and firm. A struct key keeps
// the table strongly typed instead of concatenated strings.
type Key struct {
	Intent models.IntentType
	Firm   string
}

// Responder is a read-only lookup table built once at startup.
type Responder struct {
	answers map[Key]models.DeterministicAnswer
}

// New builds a responder over a canned answer table.
func New(answers map[Key]models.DeterministicAnswer) *Responder {
	return &Responder{answers: answers}
}

// Lookup returns the canned answer for an intent+firm pair, if one was
// registered.
func (r *Responder) Lookup(intent models.IntentType, firm string) (models.DeterministicAnswer, bool) {
	a, ok := r.answers[Key{Intent: intent, Firm: firm}]
	return a, ok
}

// Len reports how many canned answers are registered.
func (r *Responder) Len() int {
	return len(r.answers)
}

// DefaultAnswers is the curated table of the production deployment.
// Drawdown rules and headline pricing are stable enough to author by hand;
// everything else goes through retrieval.
func DefaultAnswers() map[Key]models.DeterministicAnswer {
	return map[Key]models.DeterministicAnswer{
		{Intent: models.IntentDrawdown, Firm: "apex"}: {
			Title: "Drawdown en Apex",
			Content: "📉 *Drawdown en Apex Trader Funding*\n" +
				"• Tipo: trailing drawdown\n" +
				"• El límite sube con tu balance máximo hasta alcanzar el umbral inicial \\+ $100\n" +
				"• En cuentas PA el trailing se congela al llegar al umbral\n" +
				"• Violarlo cierra la cuenta de evaluación",
		},
		{Intent: models.IntentDrawdown, Firm: "bulenox"}: {
			Title: "Drawdown en Bulenox",
			Content: "📉 *Drawdown en Bulenox*\n" +
				"• Puedes elegir trailing o EOD al comprar la cuenta\n" +
				"• EOD: el límite solo se actualiza al cierre del día\n" +
				"• Trailing: se actualiza tick a tick con tu balance máximo",
		},
		{Intent: models.IntentDrawdown, Firm: "takeprofit"}: {
			Title: "Drawdown en TakeProfit",
			Content: "📉 *Drawdown en TakeProfit Trader*\n" +
				"• Tipo: EOD \\(fin de día\\)\n" +
				"• El límite se recalcula solo al cierre de la sesión\n" +
				"• Más permisivo intradía que un trailing",
		},
		{Intent: models.IntentPlans, Firm: "apex"}: {
			Title: "Planes de Apex",
			Content: "💰 *Planes de Apex Trader Funding*\n" +
				"• 25K: $147/mes\n" +
				"• 50K: $167/mes\n" +
				"• 100K: $207/mes\n" +
				"• 150K: $297/mes\n" +
				"Suelen tener cupones de 80% de descuento en la mensualidad\\.",
		},
		{Intent: models.IntentPlans, Firm: "bulenox"}: {
			Title: "Planes de Bulenox",
			Content: "💰 *Planes de Bulenox*\n" +
				"• 25K: $145/mes\n" +
				"• 50K: $175/mes\n" +
				"• 100K: $215/mes\n" +
				"• 150K: $535/mes",
		},
	}
}
