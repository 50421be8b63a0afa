// Package keywords extracts search terms from Spanish questions. The
// extracted set feeds both the FAQ store query and the semantic cache
// signature, so it must be deterministic and order-independent.
package keywords

import (
	"sort"
	"strings"
)

// MaxFreeWords caps how many words are taken from the question itself, on
// top of the domain group matches.
const MaxFreeWords = 5

// minWordLen filters out short function words the stop list misses.
const minWordLen = 3

// Domain keyword groups. A group keyword that occurs anywhere in the
// question is included in the extracted set.
var groups = map[string][]string{
	"pagos":       {"pago", "retiro", "payout", "cobrar", "comision"},
	"reglas":      {"regla", "drawdown", "trailing", "limite", "consistencia"},
	"evaluacion":  {"evaluacion", "examen", "objetivo", "fase", "aprobar"},
	"cuenta-real": {"fondeada", "real", "live", "pa", "financiada"},
	"precios":     {"precio", "costo", "cuesta", "mensualidad", "descuento"},
	"plataforma":  {"plataforma", "ninjatrader", "tradovate", "rithmic"},
	"general":     {"cuenta", "firma", "empresa", "futuros", "trading"},
}

// Spanish articles, conjunctions and other noise words.
var stopwords = map[string]struct{}{
	"que": {}, "cual": {}, "como": {}, "para": {}, "por": {}, "con": {},
	"los": {}, "las": {}, "una": {}, "uno": {}, "del": {}, "este": {},
	"esta": {}, "hay": {}, "son": {}, "mas": {}, "pero": {}, "sus": {},
	"sobre": {}, "entre": {}, "tiene": {}, "puedo": {}, "quiero": {},
}

// Extract returns the set of search keywords for a question: every domain
// group keyword found in the question plus up to MaxFreeWords words from
// the question itself. The result is a set; callers must not depend on
// any ordering.
func Extract(question string) map[string]struct{} {
	q := strings.ToLower(question)
	out := make(map[string]struct{})

	for _, kws := range groups {
		for _, kw := range kws {
			if strings.Contains(q, kw) {
				out[kw] = struct{}{}
			}
		}
	}

	free := 0
	for _, word := range strings.Fields(q) {
		if free >= MaxFreeWords {
			break
		}
		word = strings.Trim(word, "¿?¡!.,;:()\"'")
		if len(word) < minWordLen {
			continue
		}
		if _, stop := stopwords[word]; stop {
			continue
		}
		if _, dup := out[word]; dup {
			continue
		}
		out[word] = struct{}{}
		free++
	}

	return out
}

// Signature collapses an extracted set into a stable string used as the
// semantic cache key: two questions with the same signature are treated
// as the same question.
func Signature(question string) string {
	set := Extract(question)
	terms := make([]string, 0, len(set))
	for t := range set {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return strings.Join(terms, "|")
}
