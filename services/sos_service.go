package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"travelassist_server/models"
	apperrors "travelassist_server/pkg/errors"
)

// SOSService raises out-of-band alerts to a user's trusted contacts, with
// optional photo evidence stored in S3.
type SOSService struct {
	Users  UserStore
	Photos *S3Service
	SMS    SMSSender
}

// PhotoUploadURL returns a presigned upload URL and the object key for an
// SOS photo.
func (ss *SOSService) PhotoUploadURL(ctx context.Context, fileName, fileType string) (string, string, error) {
	if ss.Photos == nil {
		return "", "", apperrors.Internal("photo storage is not configured")
	}
	if fileName == "" {
		return "", "", apperrors.Validation("fileName is required")
	}

	uploadURL, key, err := ss.Photos.GenerateUploadURL(ctx, fileName, fileType)
	if err != nil {
		return "", "", apperrors.External("failed to presign photo upload", err)
	}
	return uploadURL, key, nil
}

// TriggerAlert messages every trusted contact of userID with the user's live
// position and any attached photo links. Individual sends are best-effort;
// the returned count is how many went out.
func (ss *SOSService) TriggerAlert(ctx context.Context, userID string, loc models.Location, photoKeys []string) (int, error) {
	user, err := ss.Users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return 0, apperrors.NotFound("user not found")
		}
		return 0, apperrors.External("failed to fetch user", err)
	}
	if len(user.TrustedContacts) == 0 {
		return 0, apperrors.Validation("no trusted contacts configured")
	}
	if ss.SMS == nil || !ss.SMS.Available() {
		return 0, apperrors.PermissionDenied("sms is not available")
	}

	message := ss.buildAlertMessage(ctx, user, loc, photoKeys)

	sent := 0
	for _, contact := range user.TrustedContacts {
		if contact.PhoneNumber == "" {
			continue
		}
		if err := ss.SMS.Send(contact.PhoneNumber, message); err != nil {
			log.Printf("sos alert to %s failed: %v", contact.PhoneNumber, err)
			continue
		}
		sent++
	}
	return sent, nil
}

func (ss *SOSService) buildAlertMessage(ctx context.Context, user *models.User, loc models.Location, photoKeys []string) string {
	message := fmt.Sprintf(
		"SOS! %s needs help.\n\nLive location: https://www.google.com/maps?q=%f,%f",
		user.FullName, loc.Latitude, loc.Longitude,
	)

	if ss.Photos != nil {
		for _, key := range photoKeys {
			readURL, err := ss.Photos.GenerateReadURL(ctx, key)
			if err != nil {
				log.Printf("sos photo link skipped for %s: %v", key, err)
				continue
			}
			message += "\nPhoto: " + readURL
		}
	}
	return message
}
