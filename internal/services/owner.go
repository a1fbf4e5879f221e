package services

import (
	"context"
	"net/http"

	"droneRentalMarketplace/internal/api"
	"droneRentalMarketplace/models"
)

// OwnerService wraps the owner directory endpoint.
type OwnerService struct {
	client *api.Client
}

func NewOwnerService(client *api.Client) *OwnerService {
	return &OwnerService{client: client}
}

// List fetches the full owner directory.
func (s *OwnerService) List(ctx context.Context, token string) ([]models.Owner, error) {
	var out []models.Owner
	if err := s.client.Send(ctx, http.MethodGet, "/owners/", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
