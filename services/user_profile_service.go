package services

import (
	"context"
	"errors"
	"log"
	"time"

	"travelassist_server/models"
	apperrors "travelassist_server/pkg/errors"
	"travelassist_server/utils"
)

// UserProfileService manages user records: registration, profile reads
// (optionally annotated with distance to another user), and the
// owner-mutable fields.
type UserProfileService struct {
	Users UserStore
}

// ProfileView is a profile plus the optional distance annotation.
type ProfileView struct {
	models.User
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}

// Register creates a user record. UserID, FullName and Email are required.
func (ups *UserProfileService) Register(ctx context.Context, user models.User) (*models.User, error) {
	if user.UserID == "" || user.FullName == "" || user.Email == "" {
		return nil, apperrors.Validation("userId, fullName and email are required")
	}
	user.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := ups.Users.PutUser(ctx, user); err != nil {
		return nil, apperrors.External("failed to save user", err)
	}
	return &user, nil
}

// GetProfile fetches a user record. When targetID names another user and both
// have known locations, the view carries the distance between them rounded to
// two decimal places; a missing location just omits the annotation.
func (ups *UserProfileService) GetProfile(ctx context.Context, userID, targetID string) (*ProfileView, error) {
	user, err := ups.Users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.External("failed to fetch user", err)
	}

	view := &ProfileView{User: *user}
	if targetID == "" || targetID == userID {
		return view, nil
	}

	target, err := ups.Users.GetUser(ctx, targetID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, apperrors.NotFound("target user not found")
		}
		return nil, apperrors.External("failed to fetch target user", err)
	}

	if user.Location == nil || target.Location == nil {
		log.Printf("distance skipped for %s -> %s: missing location", userID, targetID)
		return view, nil
	}

	distance := utils.RoundKm(utils.CalculateDistance(
		user.Location.Latitude, user.Location.Longitude,
		target.Location.Latitude, target.Location.Longitude,
	))
	view.DistanceKm = &distance
	return view, nil
}

// UpdateLocation stores a user's latest position fix.
func (ups *UserProfileService) UpdateLocation(ctx context.Context, userID string, loc models.Location) error {
	if loc.Timestamp == 0 {
		loc.Timestamp = time.Now().UnixMilli()
	}
	if err := ups.Users.UpdateUserLocation(ctx, userID, loc); err != nil {
		return apperrors.External("failed to update location", err)
	}
	return nil
}

// UpdateSkills replaces a user's declared skill tags.
func (ups *UserProfileService) UpdateSkills(ctx context.Context, userID string, skills []string) error {
	if err := ups.Users.UpdateUserSkills(ctx, userID, skills); err != nil {
		return apperrors.External("failed to update skills", err)
	}
	return nil
}

// UpdateTrustedContacts replaces the SOS contact list.
func (ups *UserProfileService) UpdateTrustedContacts(ctx context.Context, userID string, contacts []models.TrustedContact) error {
	if err := ups.Users.UpdateTrustedContacts(ctx, userID, contacts); err != nil {
		return apperrors.External("failed to update trusted contacts", err)
	}
	return nil
}
