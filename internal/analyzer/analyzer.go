package analyzer

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"sentiment-service/internal/models"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Normalize strips HTML/XML-like tags from raw text. Unmatched '<' or '>'
// characters are left in place. The returned value is what gets classified
// and what gets persisted.
func Normalize(raw string) string {
	return tagPattern.ReplaceAllString(raw, "")
}

// InferenceError signals that the underlying model call failed. The cause
// is preserved for the response detail.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("model inference failed: %v", e.Err)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// Classifier is the opaque model capability: normalized text in, ranked
// predictions out. Implemented by ml_client.Client.
type Classifier interface {
	Classify(ctx context.Context, text string) ([]models.Prediction, error)
}

// Analysis is the outcome of classifying one text. Text is the normalized
// input that was actually sent to the model.
type Analysis struct {
	Text        string
	Label       string
	Score       float64
	Predictions []models.Prediction
}

// Analyzer wraps the classifier capability with text normalization and
// top-prediction extraction.
type Analyzer struct {
	classifier Classifier
	logger     *zap.Logger
}

func NewAnalyzer(classifier Classifier, logger *zap.Logger) *Analyzer {
	return &Analyzer{classifier: classifier, logger: logger}
}

// Analyze normalizes raw input, runs the model on it and picks the
// highest-confidence candidate. Any model failure comes back as an
// *InferenceError; no retries are attempted here.
func (a *Analyzer) Analyze(ctx context.Context, raw string) (*Analysis, error) {
	text := Normalize(raw)

	predictions, err := a.classifier.Classify(ctx, text)
	if err != nil {
		a.logger.Warn("Classifier call failed", zap.Error(err))
		return nil, &InferenceError{Err: err}
	}
	if len(predictions) == 0 {
		return nil, &InferenceError{Err: errors.New("classifier returned no predictions")}
	}

	top := predictions[0]
	return &Analysis{
		Text:        text,
		Label:       top.Label,
		Score:       top.Score,
		Predictions: predictions,
	}, nil
}
