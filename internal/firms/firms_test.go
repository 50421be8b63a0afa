package firms

import (
	"testing"

	"github.com/propdesk/fundedbot/internal/models"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(Default())
	if err != nil {
		t.Fatalf("unexpected error building resolver: %v", err)
	}
	return r
}

func TestResolveKnownFirms(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		question string
		want     string
	}{
		{"cuanto cuesta apex", "apex"},
		{"precio de bulenox", "bulenox"},
		{"Drawdown en TakeProfit Trader", "takeprofit"},
		{"reglas de MyFundedFutures", "mff"},
		{"que tal es tradeify", "tradeify"},
		{"hola buenos dias", ""},
	}
	for _, tt := range tests {
		if got := r.Resolve(tt.question); got != tt.want {
			t.Fatalf("question %q: expected %q, got %q", tt.question, tt.want, got)
		}
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	r := newTestResolver(t)

	for i := 0; i < 50; i++ {
		if got := r.Resolve("comparar apex con bulenox"); got != "apex" {
			t.Fatalf("iteration %d: expected apex, got %q", i, got)
		}
	}
}

func TestResolveOverlappingAliasesUsesDeclarationOrder(t *testing.T) {
	firms := []models.FirmRecord{
		{Slug: "alpha-one", Name: "Alpha One", Aliases: []string{"alpha"}},
		{Slug: "alpha-two", Name: "Alpha Two Futures", Aliases: []string{"alpha two"}},
	}
	r, err := NewResolver(firms)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// "alpha two" contains both firms' aliases; the first declared wins
	// on every call.
	for i := 0; i < 50; i++ {
		if got := r.Resolve("cuentas de alpha two"); got != "alpha-one" {
			t.Fatalf("iteration %d: expected alpha-one, got %q", i, got)
		}
	}
}

func TestNewResolverRejectsMalformedConfig(t *testing.T) {
	tests := []struct {
		name  string
		firms []models.FirmRecord
	}{
		{"empty list", nil},
		{"missing slug", []models.FirmRecord{{Name: "X", Aliases: []string{"x"}}}},
		{"no aliases", []models.FirmRecord{{Slug: "x", Name: "X"}}},
		{"duplicate slug", []models.FirmRecord{
			{Slug: "x", Name: "X", Aliases: []string{"x"}},
			{Slug: "x", Name: "X2", Aliases: []string{"x2"}},
		}},
	}
	for _, tt := range tests {
		if _, err := NewResolver(tt.firms); err == nil {
			t.Fatalf("%s: expected configuration error", tt.name)
		}
	}
}

func TestGet(t *testing.T) {
	r := newTestResolver(t)

	f, ok := r.Get("apex")
	if !ok {
		t.Fatal("expected apex to be configured")
	}
	if f.Name != "Apex Trader Funding" {
		t.Fatalf("unexpected firm name %q", f.Name)
	}

	if _, ok := r.Get("ftmo"); ok {
		t.Fatal("unconfigured slug must not resolve")
	}
}
