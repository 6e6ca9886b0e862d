package models

// Location is a user's last-known position. Timestamp is epoch milliseconds
// of the fix.
type Location struct {
	Latitude  float64 `dynamodbav:"latitude" json:"latitude"`
	Longitude float64 `dynamodbav:"longitude" json:"longitude"`
	Timestamp int64   `dynamodbav:"timestamp" json:"timestamp"`
}

// LatLng is a single route vertex. Routes are derived data and never
// persisted, so no dynamodbav tags here.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
