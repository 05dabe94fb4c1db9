package models

import "time"

// Prediction is a single candidate returned by the sentiment model.
// The model returns candidates ranked by confidence, best first.
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// SentimentResult is a persisted classification outcome. Text always holds
// the normalized text that was actually classified, never the raw upload
// content. Result and Score are empty/zero when inference failed for the
// row. TrueResult stays nil until a human validates the prediction.
type SentimentResult struct {
	ID         int64     `db:"id" json:"id"`
	Text       string    `db:"text" json:"text"`
	Result     string    `db:"result" json:"result"`
	Score      float64   `db:"score" json:"score"`
	TrueResult *string   `db:"true_result" json:"true_result"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
