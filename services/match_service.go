package services

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"travelassist_server/models"
	apperrors "travelassist_server/pkg/errors"
	"travelassist_server/utils"
)

// MatchService finds users within RadiusKm of a given position. Every run
// recomputes the full candidate set from a table scan; fine for the small
// populations this serves, a scalability limit beyond that.
type MatchService struct {
	Users    UserStore
	RadiusKm float64

	// OnUpdate, when set, receives each user's fresh candidate list from the
	// polling loop.
	OnUpdate func(selfID string, candidates []models.Candidate)

	mu        sync.Mutex
	snapshots map[string]map[string]models.Candidate
}

func NewMatchService(users UserStore, radiusKm float64) *MatchService {
	return &MatchService{
		Users:     users,
		RadiusKm:  radiusKm,
		snapshots: make(map[string]map[string]models.Candidate),
	}
}

// FindNearby returns ranked candidates within the service radius of selfLoc,
// excluding selfID and users without a known location. The result is also
// cached as selfID's snapshot for the accept path.
func (ms *MatchService) FindNearby(ctx context.Context, selfID string, selfLoc models.Location) ([]models.Candidate, error) {
	users, err := ms.Users.ListUsers(ctx)
	if err != nil {
		return nil, apperrors.External("failed to fetch users", err)
	}

	var candidates []models.Candidate
	for _, user := range users {
		if user.UserID == selfID || user.Location == nil {
			continue
		}

		distance := utils.CalculateDistance(
			selfLoc.Latitude, selfLoc.Longitude,
			user.Location.Latitude, user.Location.Longitude,
		)
		if distance > ms.RadiusKm {
			continue
		}

		candidates = append(candidates, models.Candidate{
			UserID:        user.UserID,
			FullName:      user.FullName,
			Skills:        user.Skills,
			Location:      user.Location,
			DistanceKm:    utils.RoundKm(distance),
			AverageRating: user.AverageRating,
			RatingCount:   len(user.Ratings),
		})
	}

	rankCandidates(candidates)
	ms.storeSnapshot(selfID, candidates)
	return candidates, nil
}

// rankCandidates orders rated candidates (highest average first) ahead of
// unrated ones, which fall back to ascending distance. Quality over
// proximity, a policy choice.
func rankCandidates(candidates []models.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		aRated, bRated := a.AverageRating > 0, b.AverageRating > 0
		if aRated != bRated {
			return aRated
		}
		if aRated {
			if a.AverageRating != b.AverageRating {
				return a.AverageRating > b.AverageRating
			}
		}
		return a.DistanceKm < b.DistanceKm
	})
}

func (ms *MatchService) storeSnapshot(selfID string, candidates []models.Candidate) {
	byID := make(map[string]models.Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.UserID] = c
	}

	ms.mu.Lock()
	ms.snapshots[selfID] = byID
	ms.mu.Unlock()
}

// CachedCandidate returns candidateID from selfID's last snapshot. The accept
// path uses this: a requester no longer in the snapshot means the acceptance
// must be aborted.
func (ms *MatchService) CachedCandidate(selfID, candidateID string) (models.Candidate, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	snapshot, ok := ms.snapshots[selfID]
	if !ok {
		return models.Candidate{}, false
	}
	candidate, ok := snapshot[candidateID]
	return candidate, ok
}

// StartPolling refreshes every located user's candidate list at the given
// interval until ctx is cancelled. Store failures are logged and the next
// tick retries from scratch.
func (ms *MatchService) StartPolling(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ms.refreshAll(ctx)
		}
	}
}

func (ms *MatchService) refreshAll(ctx context.Context) {
	users, err := ms.Users.ListUsers(ctx)
	if err != nil {
		log.Printf("nearby refresh: failed to list users: %v", err)
		return
	}

	for _, user := range users {
		if user.Location == nil {
			continue
		}
		candidates, err := ms.FindNearby(ctx, user.UserID, *user.Location)
		if err != nil {
			log.Printf("nearby refresh: failed for user %s: %v", user.UserID, err)
			continue
		}
		if ms.OnUpdate != nil {
			ms.OnUpdate(user.UserID, candidates)
		}
	}
}
