package models

// Candidate is one nearby user produced by the matcher. DistanceKm is
// rounded to two decimal places at computation time and is the value quoted
// in acceptance notifications.
type Candidate struct {
	UserID        string    `json:"userId"`
	FullName      string    `json:"fullName"`
	Skills        []string  `json:"skills"`
	Location      *Location `json:"location"`
	DistanceKm    float64   `json:"distanceKm"`
	AverageRating float64   `json:"averageRating"`
	RatingCount   int       `json:"ratingCount"`
}
