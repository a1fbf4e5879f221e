package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"droneRentalMarketplace/internal/api"
	"droneRentalMarketplace/models"
)

// DroneFilter carries the optional public-catalog query parameters. Each set
// field becomes an independent query parameter; unset fields are omitted.
type DroneFilter struct {
	Lat           *float64
	Lon           *float64
	MaxDistanceKm *float64
	MinPrice      *float64
	MaxPrice      *float64
	SortBy        string // "price" or "distance"
}

// Values translates the filter to URL query parameters.
func (f DroneFilter) Values() url.Values {
	v := url.Values{}
	setFloat := func(key string, val *float64) {
		if val != nil {
			v.Set(key, strconv.FormatFloat(*val, 'f', -1, 64))
		}
	}
	setFloat("lat", f.Lat)
	setFloat("lon", f.Lon)
	setFloat("max_dist_km", f.MaxDistanceKm)
	setFloat("min_price", f.MinPrice)
	setFloat("max_price", f.MaxPrice)
	if f.SortBy != "" {
		v.Set("sort_by", f.SortBy)
	}
	return v
}

// DroneService wraps the drone catalog and listing-management endpoints.
type DroneService struct {
	client *api.Client
}

func NewDroneService(client *api.Client) *DroneService {
	return &DroneService{client: client}
}

// List fetches the public catalog, filtered server-side by the given filter.
func (s *DroneService) List(ctx context.Context, filter DroneFilter) ([]models.Drone, error) {
	var out []models.Drone
	if err := s.client.Send(ctx, http.MethodGet, "/drones/", "", filter.Values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListOwned fetches the authenticated owner's drones.
func (s *DroneService) ListOwned(ctx context.Context, token string) ([]models.Drone, error) {
	var out []models.Drone
	if err := s.client.Send(ctx, http.MethodGet, "/owners/me/drones", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create publishes a new listing for the authenticated owner.
func (s *DroneService) Create(ctx context.Context, token string, payload models.DroneCreate) (*models.Drone, error) {
	var out models.Drone
	if err := s.client.Send(ctx, http.MethodPost, "/drones/", token, nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type availabilityPayload struct {
	Status string `json:"status"`
}

// UpdateAvailability sets a drone's status. The backend acknowledgement body
// carries no useful data, so decoding is skipped entirely.
func (s *DroneService) UpdateAvailability(ctx context.Context, token string, droneID int64, status string) error {
	path := fmt.Sprintf("/drones/%d/availability/", droneID)
	return s.client.Send(ctx, http.MethodPatch, path, token, nil, availabilityPayload{Status: status}, nil)
}
