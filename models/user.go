package models

// User defines the structure for user records
type User struct {
	UserID          string           `dynamodbav:"userId" json:"userId"`
	FullName        string           `dynamodbav:"fullName,omitempty" json:"fullName,omitempty"`
	Email           string           `dynamodbav:"email,omitempty" json:"email,omitempty"`
	PhoneNumber     string           `dynamodbav:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Skills          []string         `dynamodbav:"skills,omitempty" json:"skills,omitempty"`
	Location        *Location        `dynamodbav:"location,omitempty" json:"location,omitempty"`
	Ratings         []Rating         `dynamodbav:"ratings,omitempty" json:"ratings,omitempty"`
	AverageRating   float64          `dynamodbav:"averageRating,omitempty" json:"averageRating,omitempty"`
	TrustedContacts []TrustedContact `dynamodbav:"trustedContacts,omitempty" json:"trustedContacts,omitempty"`
	CreatedAt       string           `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// TrustedContact is an out-of-band SOS recipient chosen by the user.
type TrustedContact struct {
	Name        string `dynamodbav:"name" json:"name"`
	PhoneNumber string `dynamodbav:"phoneNumber" json:"phoneNumber"`
}

// UsersTable is the DynamoDB table name for user records
const UsersTable = "Users"
