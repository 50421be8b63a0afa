package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/propdesk/fundedbot/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config DatabaseConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	storage := &PostgresStorage{db: db}

	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %v", err)
	}

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %v", err)
	}

	_, err = s.db.Exec(string(migrationSQL))
	if err != nil {
		return fmt.Errorf("error executing migrations: %v", err)
	}

	return nil
}

func (s *PostgresStorage) SearchFAQs(ctx context.Context, keywords map[string]struct{}, firm string, limit int) ([]models.FAQ, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	// Any keyword in question or answer, optionally firm-restricted.
	query := `
		SELECT id, firm, question, answer
		FROM faqs
		WHERE ($1 = '' OR firm = $1)`
	args := []any{firm}

	i := 2
	query += " AND ("
	first := true
	for kw := range keywords {
		if !first {
			query += " OR "
		}
		query += fmt.Sprintf("question ILIKE $%d OR answer ILIKE $%d", i, i)
		args = append(args, "%"+kw+"%")
		i++
		first = false
	}
	query += fmt.Sprintf(") LIMIT $%d", i)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying faqs: %v", err)
	}
	defer rows.Close()

	var faqs []models.FAQ
	for rows.Next() {
		var f models.FAQ
		if err := rows.Scan(&f.ID, &f.Firm, &f.Question, &f.Answer); err != nil {
			return nil, fmt.Errorf("error scanning faq: %v", err)
		}
		faqs = append(faqs, f)
	}
	return faqs, rows.Err()
}

func (s *PostgresStorage) GetPlans(ctx context.Context, firm string) ([]models.AccountPlan, error) {
	query := `
		SELECT id, firm, name, size, monthly_price, drawdown_type, profit_target
		FROM account_plans
		WHERE firm = $1
		ORDER BY monthly_price`

	rows, err := s.db.QueryContext(ctx, query, firm)
	if err != nil {
		return nil, fmt.Errorf("error querying plans: %v", err)
	}
	defer rows.Close()

	var plans []models.AccountPlan
	for rows.Next() {
		var p models.AccountPlan
		err := rows.Scan(
			&p.ID,
			&p.Firm,
			&p.Name,
			&p.Size,
			&p.MonthlyPrice,
			&p.DrawdownType,
			&p.ProfitTarget,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning plan: %v", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (s *PostgresStorage) SaveMessage(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT INTO messages (id, user_id, question, answer, intent, firm, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		msg.ID, msg.UserID, msg.Question, msg.Answer, msg.Intent, msg.Firm, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("error saving message: %v", err)
	}
	return nil
}

func (s *PostgresStorage) GetUserMessages(ctx context.Context, userID int64, limit int) ([]models.Message, error) {
	query := `
		SELECT id, user_id, question, answer, intent, firm, created_at
		FROM messages
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying messages: %v", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		err := rows.Scan(&m.ID, &m.UserID, &m.Question, &m.Answer, &m.Intent, &m.Firm, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning message: %v", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
