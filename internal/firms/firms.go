package firms

import (
	"fmt"
	"strings"

	"github.com/propdesk/fundedbot/internal/models"
)

// Resolver maps free-text questions to a known firm slug by alias
// substring matching. The firm list is ordered: when a question mentions
// aliases of more than one firm, the firm declared first wins, on every
// call.
type Resolver struct {
	firms []models.FirmRecord
}

// Default is the firm set of the production deployment.
func Default() []models.FirmRecord {
	return []models.FirmRecord{
		{Slug: "apex", Name: "Apex Trader Funding", Badge: "🔵", Aliases: []string{"apex", "atf"}},
		{Slug: "alpha", Name: "Alpha Futures", Badge: "🟠", Aliases: []string{"alpha futures", "alpha"}},
		{Slug: "takeprofit", Name: "TakeProfit Trader", Badge: "🟢", Aliases: []string{"takeprofit", "take profit", "tpt"}},
		{Slug: "bulenox", Name: "Bulenox", Badge: "🟣", Aliases: []string{"bulenox"}},
		{Slug: "mff", Name: "MyFundedFutures", Badge: "🟡", Aliases: []string{"myfundedfutures", "my funded futures", "mff"}},
		{Slug: "tradeify", Name: "Tradeify", Badge: "⚪", Aliases: []string{"tradeify"}},
		{Slug: "vision", Name: "Vision Trade", Badge: "🔴", Aliases: []string{"vision trade", "vision"}},
	}
}

// NewResolver validates the firm set and returns a resolver over it.
// Malformed configuration (a firm without aliases) fails here, at startup,
// never at query time.
func NewResolver(firms []models.FirmRecord) (*Resolver, error) {
	if len(firms) == 0 {
		return nil, fmt.Errorf("firm list is empty")
	}
	seen := make(map[string]struct{}, len(firms))
	for _, f := range firms {
		if f.Slug == "" {
			return nil, fmt.Errorf("firm %q has no slug", f.Name)
		}
		if _, dup := seen[f.Slug]; dup {
			return nil, fmt.Errorf("duplicate firm slug %q", f.Slug)
		}
		seen[f.Slug] = struct{}{}
		if len(f.Aliases) == 0 {
			return nil, fmt.Errorf("firm %q has no aliases", f.Slug)
		}
	}
	return &Resolver{firms: firms}, nil
}

// Resolve returns the slug of the first firm whose alias occurs in the
// question, or "" when no firm matches. Not matching is not an error.
func (r *Resolver) Resolve(question string) string {
	q := strings.ToLower(question)
	for _, f := range r.firms {
		for _, alias := range f.Aliases {
			if strings.Contains(q, alias) {
				return f.Slug
			}
		}
	}
	return ""
}

// Get returns the firm record for a slug.
func (r *Resolver) Get(slug string) (models.FirmRecord, bool) {
	for _, f := range r.firms {
		if f.Slug == slug {
			return f, true
		}
	}
	return models.FirmRecord{}, false
}

// All returns the configured firms in declaration order.
func (r *Resolver) All() []models.FirmRecord {
	return r.firms
}
