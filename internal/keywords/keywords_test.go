package keywords

import (
	"reflect"
	"testing"
)

func TestExtractIsDeterministic(t *testing.T) {
	q := "¿Cuánto cuesta el plan de $10K en Apex?"

	first := Extract(q)
	for i := 0; i < 20; i++ {
		if got := Extract(q); !reflect.DeepEqual(got, first) {
			t.Fatalf("iteration %d: extraction not deterministic: %v vs %v", i, got, first)
		}
	}
}

func TestExtractIncludesDomainGroupKeywords(t *testing.T) {
	set := Extract("cual es el precio y el drawdown de la cuenta")

	for _, want := range []string{"precio", "drawdown", "cuenta"} {
		if _, ok := set[want]; !ok {
			t.Fatalf("expected %q in extracted set %v", want, set)
		}
	}
}

func TestExtractRemovesStopwords(t *testing.T) {
	set := Extract("que hay para los que tiene mas")

	for stop := range stopwords {
		if _, ok := set[stop]; ok {
			t.Fatalf("stopword %q leaked into extracted set %v", stop, set)
		}
	}
}

func TestExtractCapsFreeWords(t *testing.T) {
	// No domain keywords, eight eligible free words.
	set := Extract("mercado futuro velas soporte resistencia tendencia volumen apertura")
	if len(set) > MaxFreeWords {
		t.Fatalf("expected at most %d free words, got %d: %v", MaxFreeWords, len(set), set)
	}
}

func TestExtractStripsPunctuation(t *testing.T) {
	set := Extract("¿apex? ¡bulenox!")

	if _, ok := set["apex"]; !ok {
		t.Fatalf("expected punctuation-stripped apex in %v", set)
	}
	if _, ok := set["bulenox"]; !ok {
		t.Fatalf("expected punctuation-stripped bulenox in %v", set)
	}
}

func TestSignatureStableAcrossPhrasings(t *testing.T) {
	a := Signature("cual es el precio de apex")
	b := Signature("¿cual es el precio de apex?")
	if a != b {
		t.Fatalf("signatures differ for equivalent questions: %q vs %q", a, b)
	}
	if a == "" {
		t.Fatal("signature must not be empty for a keyword-bearing question")
	}

	c := Signature("como retiro mis ganancias de bulenox")
	if c == a {
		t.Fatalf("distinct questions must not share signature %q", a)
	}
}
