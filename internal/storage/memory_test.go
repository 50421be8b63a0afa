package storage

import (
	"context"
	"testing"
	"time"

	"github.com/propdesk/fundedbot/internal/models"
)

func seededStorage() *MemoryStorage {
	s := NewMemoryStorage()
	s.AddFAQ(models.FAQ{Firm: "apex", Question: "¿Cual es el drawdown de Apex?", Answer: "Trailing drawdown que sube con tu balance."})
	s.AddFAQ(models.FAQ{Firm: "apex", Question: "¿Cuanto cuesta la cuenta 50K?", Answer: "$167/mes antes de descuentos."})
	s.AddFAQ(models.FAQ{Firm: "bulenox", Question: "¿Bulenox tiene drawdown EOD?", Answer: "Si, puedes elegir EOD o trailing."})
	s.AddPlan(models.AccountPlan{Firm: "apex", Name: "Full 50K", Size: "50K", MonthlyPrice: 167, DrawdownType: "trailing", ProfitTarget: 3000})
	s.AddPlan(models.AccountPlan{Firm: "bulenox", Name: "Option 2 50K", Size: "50K", MonthlyPrice: 175, DrawdownType: "eod", ProfitTarget: 3000})
	return s
}

func TestSearchFAQsRestrictsByFirm(t *testing.T) {
	s := seededStorage()
	kws := map[string]struct{}{"drawdown": {}}

	faqs, err := s.SearchFAQs(context.Background(), kws, "apex", MaxFAQResults)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(faqs) != 1 {
		t.Fatalf("expected 1 apex drawdown FAQ, got %d", len(faqs))
	}
	if faqs[0].Firm != "apex" {
		t.Fatalf("expected apex row, got %q", faqs[0].Firm)
	}
}

func TestSearchFAQsMatchesAnswerText(t *testing.T) {
	s := seededStorage()
	kws := map[string]struct{}{"descuentos": {}}

	faqs, err := s.SearchFAQs(context.Background(), kws, "apex", MaxFAQResults)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(faqs) != 1 {
		t.Fatalf("expected match on answer text, got %d rows", len(faqs))
	}
}

func TestSearchFAQsHonorsLimit(t *testing.T) {
	s := NewMemoryStorage()
	for i := 0; i < 12; i++ {
		s.AddFAQ(models.FAQ{Firm: "apex", Question: "drawdown", Answer: "respuesta"})
	}

	faqs, err := s.SearchFAQs(context.Background(), map[string]struct{}{"drawdown": {}}, "apex", MaxFAQResults)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(faqs) != MaxFAQResults {
		t.Fatalf("expected cap of %d rows, got %d", MaxFAQResults, len(faqs))
	}
}

func TestGetPlans(t *testing.T) {
	s := seededStorage()

	plans, err := s.GetPlans(context.Background(), "bulenox")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plans) != 1 {
		t.Fatalf("expected 1 bulenox plan, got %d", len(plans))
	}
	if plans[0].DrawdownType != "eod" {
		t.Fatalf("unexpected drawdown type %q", plans[0].DrawdownType)
	}
}

func TestMessageHistory(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 7; i++ {
		err := s.SaveMessage(ctx, &models.Message{
			ID:        string(rune('a' + i)),
			UserID:    1,
			Question:  "pregunta",
			Answer:    "respuesta",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	msgs, err := s.GetUserMessages(ctx, 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(msgs))
	}
	if !msgs[0].CreatedAt.After(msgs[4].CreatedAt) {
		t.Fatal("messages must be newest first")
	}

	other, err := s.GetUserMessages(ctx, 2, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no messages for other user, got %d", len(other))
	}
}
