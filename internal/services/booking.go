package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"droneRentalMarketplace/internal/api"
	"droneRentalMarketplace/models"
)

// BookingService wraps the booking lifecycle endpoints.
type BookingService struct {
	client *api.Client
}

func NewBookingService(client *api.Client) *BookingService {
	return &BookingService{client: client}
}

// List fetches the caller's bookings (owner: bookings on owned drones;
// farmer: own bookings), optionally filtered by status.
func (s *BookingService) List(ctx context.Context, token string, status string) ([]models.Booking, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	var out []models.Booking
	if err := s.client.Send(ctx, http.MethodGet, "/bookings/", token, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create places a booking for the authenticated farmer.
func (s *BookingService) Create(ctx context.Context, token string, payload models.BookingCreate) (*models.Booking, error) {
	var out models.Booking
	if err := s.client.Send(ctx, http.MethodPost, "/bookings/", token, nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type bookingStatusPayload struct {
	Status string `json:"status"`
}

// UpdateStatus transitions a booking. The backend returns an arbitrary
// key-value acknowledgement rather than a typed body.
func (s *BookingService) UpdateStatus(ctx context.Context, token string, bookingID int64, status string) (map[string]string, error) {
	path := fmt.Sprintf("/bookings/%d/", bookingID)
	var out map[string]string
	if err := s.client.Send(ctx, http.MethodPatch, path, token, nil, bookingStatusPayload{Status: status}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
