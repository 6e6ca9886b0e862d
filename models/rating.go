package models

// Rating is one star rating left by a counterparty after a connection ends.
// Ratings are append-only; the recipient's AverageRating is recomputed from
// the full list on every append.
type Rating struct {
	From      string `dynamodbav:"from" json:"from"`
	To        string `dynamodbav:"to" json:"to"`
	Stars     int    `dynamodbav:"stars" json:"stars"`
	Comment   string `dynamodbav:"comment,omitempty" json:"comment,omitempty"`
	Timestamp int64  `dynamodbav:"timestamp" json:"timestamp"`
}
