package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sentiment-service/internal/models"
)

type fakeClassifier struct {
	predictions []models.Prediction
	err         error
	lastText    string
}

func (f *fakeClassifier) Classify(_ context.Context, text string) ([]models.Prediction, error) {
	f.lastText = text
	if f.err != nil {
		return nil, f.err
	}
	return f.predictions, nil
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple tags", "<b>hi</b> there", "hi there"},
		{"attributes", `<a href="x">link</a>`, "link"},
		{"no tags", "plain text", "plain text"},
		{"unmatched angle brackets stay", "a < b > c", "a  c"},
		{"lone open bracket stays", "1 < 2", "1 < 2"},
		{"empty", "", ""},
		{"only tags", "<br><hr>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestAnalyzeTakesTopPrediction(t *testing.T) {
	classifier := &fakeClassifier{
		predictions: []models.Prediction{
			{Label: "POSITIVE", Score: 0.91},
			{Label: "NEUTRAL", Score: 0.07},
			{Label: "NEGATIVE", Score: 0.02},
		},
	}
	a := NewAnalyzer(classifier, zap.NewNop())

	analysis, err := a.Analyze(context.Background(), "great stuff")
	require.NoError(t, err)

	assert.Equal(t, "POSITIVE", analysis.Label)
	assert.Equal(t, 0.91, analysis.Score)
	assert.Len(t, analysis.Predictions, 3)
}

func TestAnalyzeNormalizesBeforeClassifying(t *testing.T) {
	classifier := &fakeClassifier{
		predictions: []models.Prediction{{Label: "POSITIVE", Score: 0.9}},
	}
	a := NewAnalyzer(classifier, zap.NewNop())

	analysis, err := a.Analyze(context.Background(), "<b>hi</b> there")
	require.NoError(t, err)

	// The model must see the cleaned text, and the same text must be what
	// callers persist.
	assert.Equal(t, "hi there", classifier.lastText)
	assert.Equal(t, "hi there", analysis.Text)
}

func TestAnalyzeWrapsClassifierFailure(t *testing.T) {
	cause := errors.New("connection refused")
	a := NewAnalyzer(&fakeClassifier{err: cause}, zap.NewNop())

	_, err := a.Analyze(context.Background(), "text")
	require.Error(t, err)

	var infErr *InferenceError
	require.ErrorAs(t, err, &infErr)
	assert.ErrorIs(t, err, cause)
}

func TestAnalyzeEmptyPredictionsIsInferenceError(t *testing.T) {
	a := NewAnalyzer(&fakeClassifier{predictions: nil}, zap.NewNop())

	_, err := a.Analyze(context.Background(), "text")

	var infErr *InferenceError
	require.ErrorAs(t, err, &infErr)
}
