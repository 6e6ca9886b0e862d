package services

import (
	"context"
	"errors"
	"testing"

	"travelassist_server/models"
	apperrors "travelassist_server/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSMS struct {
	recordingSMS
	failFor string
}

func (s *failingSMS) Send(phone, message string) error {
	if phone == s.failFor {
		return errors.New("carrier rejected")
	}
	return s.recordingSMS.Send(phone, message)
}

func TestSOSService_TriggerAlert(t *testing.T) {
	ctx := context.Background()
	loc := models.Location{Latitude: 48.8566, Longitude: 2.3522}

	seedUser := func(t *testing.T, store *memStore, contacts []models.TrustedContact) {
		t.Helper()
		user := locatedUser("alice", "Alice", loc.Latitude, loc.Longitude)
		user.TrustedContacts = contacts
		require.NoError(t, store.PutUser(ctx, user))
	}

	t.Run("messages every trusted contact", func(t *testing.T) {
		store := newMemStore()
		seedUser(t, store, []models.TrustedContact{
			{Name: "Mom", PhoneNumber: "+111"},
			{Name: "Dad", PhoneNumber: "+222"},
		})
		sms := &recordingSMS{}
		ss := &SOSService{Users: store, SMS: sms}

		sent, err := ss.TriggerAlert(ctx, "alice", loc, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, sent)
		require.Len(t, sms.sent, 2)
		assert.Contains(t, sms.sent[0].Message, "SOS! Alice needs help.")
		assert.Contains(t, sms.sent[0].Message, "https://www.google.com/maps?q=")
	})

	t.Run("individual send failures do not abort", func(t *testing.T) {
		store := newMemStore()
		seedUser(t, store, []models.TrustedContact{
			{Name: "Mom", PhoneNumber: "+111"},
			{Name: "Dad", PhoneNumber: "+222"},
		})
		sms := &failingSMS{failFor: "+111"}
		ss := &SOSService{Users: store, SMS: sms}

		sent, err := ss.TriggerAlert(ctx, "alice", loc, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("no trusted contacts", func(t *testing.T) {
		store := newMemStore()
		seedUser(t, store, nil)
		ss := &SOSService{Users: store, SMS: &recordingSMS{}}

		_, err := ss.TriggerAlert(ctx, "alice", loc, nil)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		ss := &SOSService{Users: newMemStore(), SMS: &recordingSMS{}}
		_, err := ss.TriggerAlert(ctx, "ghost", loc, nil)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("sms unavailable", func(t *testing.T) {
		store := newMemStore()
		seedUser(t, store, []models.TrustedContact{{Name: "Mom", PhoneNumber: "+111"}})
		ss := &SOSService{Users: store}

		_, err := ss.TriggerAlert(ctx, "alice", loc, nil)
		assert.Equal(t, apperrors.CodePermissionDenied, apperrors.CodeOf(err))
	})
}

func TestSOSService_PhotoUploadURL(t *testing.T) {
	ctx := context.Background()

	t.Run("unconfigured storage", func(t *testing.T) {
		ss := &SOSService{Users: newMemStore()}
		_, _, err := ss.PhotoUploadURL(ctx, "evidence.jpg", "image/jpeg")
		assert.Equal(t, apperrors.CodeInternal, apperrors.CodeOf(err))
	})
}
