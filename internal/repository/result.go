package repository

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"sentiment-service/internal/models"
)

// ResultStats summarizes the stored results.
type ResultStats struct {
	Total     int64            `json:"total"`
	Validated int64            `json:"validated"`
	ByLabel   map[string]int64 `json:"by_label"`
}

type SentimentResultRepository interface {
	Create(text, label string, score float64) (*models.SentimentResult, error)
	GetByID(id int64) (*models.SentimentResult, error)
	GetAll() ([]*models.SentimentResult, error)
	GetByDate(day time.Time) ([]*models.SentimentResult, error)
	UpdateTrueResult(id int64, trueResult string) (*models.SentimentResult, error)
	Stats() (*ResultStats, error)
}

type sentimentResultRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewSentimentResultRepository(db *sqlx.DB, logger *zap.Logger) SentimentResultRepository {
	return &sentimentResultRepository{db: db, logger: logger}
}

// Queries are written with ? placeholders and passed through Rebind so the
// same SQL works on both postgres and sqlite.

func (r *sentimentResultRepository) Create(text, label string, score float64) (*models.SentimentResult, error) {
	result := &models.SentimentResult{Text: text, Result: label, Score: score}
	query := r.db.Rebind(`INSERT INTO sentiment_results (text, result, score) VALUES (?, ?, ?) RETURNING id, created_at`)
	if err := r.db.QueryRowx(query, text, label, score).Scan(&result.ID, &result.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert sentiment result: %w", err)
	}
	return result, nil
}

func (r *sentimentResultRepository) GetByID(id int64) (*models.SentimentResult, error) {
	var result models.SentimentResult
	query := r.db.Rebind(`SELECT id, text, result, score, true_result, created_at FROM sentiment_results WHERE id = ?`)
	err := r.db.Get(&result, query, id)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *sentimentResultRepository) GetAll() ([]*models.SentimentResult, error) {
	var results []*models.SentimentResult
	query := `SELECT id, text, result, score, true_result, created_at FROM sentiment_results ORDER BY id`
	err := r.db.Select(&results, query)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetByDate returns every row created within the given calendar day. The
// filter is a half-open range [day, day+24h) in UTC, so a row created at
// any time of the day matches and adjacent days never do.
func (r *sentimentResultRepository) GetByDate(day time.Time) ([]*models.SentimentResult, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	var results []*models.SentimentResult
	query := r.db.Rebind(`SELECT id, text, result, score, true_result, created_at FROM sentiment_results WHERE created_at >= ? AND created_at < ? ORDER BY id`)
	err := r.db.Select(&results, query, start, end)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// UpdateTrueResult sets only the true_result column. Last write wins, no
// history is kept. A missing id surfaces as sql.ErrNoRows.
func (r *sentimentResultRepository) UpdateTrueResult(id int64, trueResult string) (*models.SentimentResult, error) {
	var result models.SentimentResult
	query := r.db.Rebind(`UPDATE sentiment_results SET true_result = ? WHERE id = ? RETURNING id, text, result, score, true_result, created_at`)
	err := r.db.QueryRowx(query, trueResult, id).StructScan(&result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *sentimentResultRepository) Stats() (*ResultStats, error) {
	stats := &ResultStats{ByLabel: make(map[string]int64)}

	if err := r.db.Get(&stats.Total, `SELECT COUNT(*) FROM sentiment_results`); err != nil {
		return nil, fmt.Errorf("failed to count results: %w", err)
	}
	if err := r.db.Get(&stats.Validated, `SELECT COUNT(*) FROM sentiment_results WHERE true_result IS NOT NULL`); err != nil {
		return nil, fmt.Errorf("failed to count validated results: %w", err)
	}

	rows, err := r.db.Queryx(`SELECT result, COUNT(*) FROM sentiment_results GROUP BY result`)
	if err != nil {
		return nil, fmt.Errorf("failed to count results by label: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var label string
		var count int64
		if err := rows.Scan(&label, &count); err != nil {
			return nil, fmt.Errorf("failed to scan label count: %w", err)
		}
		stats.ByLabel[label] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
