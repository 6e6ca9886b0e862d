package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"travelassist_server/models"
	"travelassist_server/utils"
)

const defaultDirectionsURL = "https://maps.googleapis.com/maps/api/directions/json"

// RoutePlanner produces a walking route between two coordinates, or nil when
// no route is available. Absence of a route is normal, never an error.
type RoutePlanner interface {
	GetRoute(ctx context.Context, origin, destination models.LatLng) []models.LatLng
}

// DirectionsService fetches walking directions from the Google Directions
// API and decodes the overview polyline.
type DirectionsService struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func NewDirectionsService(apiKey string) *DirectionsService {
	return &DirectionsService{
		APIKey:  apiKey,
		BaseURL: defaultDirectionsURL,
		Client:  http.DefaultClient,
	}
}

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
	} `json:"routes"`
}

// GetRoute returns the decoded walking route, or nil on any failure. The
// route overlay is cosmetic, so failures are logged and swallowed.
func (ds *DirectionsService) GetRoute(ctx context.Context, origin, destination models.LatLng) []models.LatLng {
	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", origin.Latitude, origin.Longitude))
	params.Set("destination", fmt.Sprintf("%f,%f", destination.Latitude, destination.Longitude))
	params.Set("mode", "walking")
	params.Set("key", ds.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ds.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		log.Printf("directions: failed to build request: %v", err)
		return nil
	}

	resp, err := ds.Client.Do(req)
	if err != nil {
		log.Printf("directions: request failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("directions: unexpected status %d", resp.StatusCode)
		return nil
	}

	var body directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Printf("directions: failed to decode response: %v", err)
		return nil
	}

	if body.Status != "OK" || len(body.Routes) == 0 {
		log.Printf("directions: no route (status %q)", body.Status)
		return nil
	}

	return utils.DecodePolyline(body.Routes[0].OverviewPolyline.Points)
}

var _ RoutePlanner = (*DirectionsService)(nil)
