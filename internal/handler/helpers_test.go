package handler

import (
	"context"
	"database/sql"
	"time"

	"sentiment-service/internal/models"
	"sentiment-service/internal/repository"
)

// fakeResultRepo is an in-memory SentimentResultRepository for handler tests.
type fakeResultRepo struct {
	rows      []*models.SentimentResult
	nextID    int64
	createErr error
	queryErr  error
}

func (f *fakeResultRepo) Create(text, label string, score float64) (*models.SentimentResult, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	row := &models.SentimentResult{
		ID:        f.nextID,
		Text:      text,
		Result:    label,
		Score:     score,
		CreatedAt: time.Date(2025, 2, 15, 12, 0, 0, 0, time.UTC),
	}
	f.rows = append(f.rows, row)
	return row, nil
}

func (f *fakeResultRepo) GetByID(id int64) (*models.SentimentResult, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeResultRepo) GetAll() ([]*models.SentimentResult, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.rows, nil
}

func (f *fakeResultRepo) GetByDate(day time.Time) ([]*models.SentimentResult, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	var matched []*models.SentimentResult
	for _, r := range f.rows {
		if !r.CreatedAt.Before(start) && r.CreatedAt.Before(end) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func (f *fakeResultRepo) UpdateTrueResult(id int64, trueResult string) (*models.SentimentResult, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	for _, r := range f.rows {
		if r.ID == id {
			r.TrueResult = &trueResult
			return r, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeResultRepo) Stats() (*repository.ResultStats, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	stats := &repository.ResultStats{ByLabel: make(map[string]int64)}
	for _, r := range f.rows {
		stats.Total++
		if r.TrueResult != nil {
			stats.Validated++
		}
		stats.ByLabel[r.Result]++
	}
	return stats, nil
}

// fakeClassifier is a canned analyzer.Classifier.
type fakeClassifier struct {
	predictions []models.Prediction
	err         error
}

func (f *fakeClassifier) Classify(context.Context, string) ([]models.Prediction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.predictions, nil
}
