package storage

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/propdesk/fundedbot/internal/models"
)

// MemoryStorage is an in-memory Storage used for tests and local runs.
type MemoryStorage struct {
	mu       sync.RWMutex
	faqs     []models.FAQ
	plans    []models.AccountPlan
	messages []models.Message
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// AddFAQ seeds a FAQ row.
func (s *MemoryStorage) AddFAQ(faq models.FAQ) {
	s.mu.Lock()
	defer s.mu.Unlock()
	faq.ID = int64(len(s.faqs) + 1)
	s.faqs = append(s.faqs, faq)
}

// AddPlan seeds an account-plan row.
func (s *MemoryStorage) AddPlan(plan models.AccountPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan.ID = int64(len(s.plans) + 1)
	s.plans = append(s.plans, plan)
}

func (s *MemoryStorage) SearchFAQs(ctx context.Context, keywords map[string]struct{}, firm string, limit int) ([]models.FAQ, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.FAQ
	for _, faq := range s.faqs {
		if firm != "" && faq.Firm != firm {
			continue
		}
		if !matchesAny(faq, keywords) {
			continue
		}
		out = append(out, faq)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func matchesAny(faq models.FAQ, keywords map[string]struct{}) bool {
	q := strings.ToLower(faq.Question)
	a := strings.ToLower(faq.Answer)
	for kw := range keywords {
		if strings.Contains(q, kw) || strings.Contains(a, kw) {
			return true
		}
	}
	return false
}

func (s *MemoryStorage) GetPlans(ctx context.Context, firm string) ([]models.AccountPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.AccountPlan
	for _, p := range s.plans {
		if p.Firm == firm {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryStorage) SaveMessage(ctx context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, *msg)
	return nil
}

func (s *MemoryStorage) GetUserMessages(ctx context.Context, userID int64, limit int) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Message
	for _, m := range s.messages {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStorage) Close() error {
	// Nothing to close for in-memory storage
	return nil
}
