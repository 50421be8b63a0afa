package storage

import (
	"context"

	"github.com/propdesk/fundedbot/internal/models"
)

// Storage is the FAQ and account-plan store the retrieval path queries
// when the router decides a question needs the slow pipeline.
type Storage interface {
	// SearchFAQs returns up to limit FAQ rows where any of the keywords
	// occurs in the question or answer text, restricted to the firm when
	// one is given.
	SearchFAQs(ctx context.Context, keywords map[string]struct{}, firm string, limit int) ([]models.FAQ, error)
	// GetPlans returns all account plans for a firm.
	GetPlans(ctx context.Context, firm string) ([]models.AccountPlan, error)
	// SaveMessage records an answered question for the /history command.
	SaveMessage(ctx context.Context, msg *models.Message) error
	// GetUserMessages returns a user's recent messages, newest first.
	GetUserMessages(ctx context.Context, userID int64, limit int) ([]models.Message, error)
	Close() error
}

// MaxFAQResults caps FAQ rows per search so prompts stay bounded.
const MaxFAQResults = 8
