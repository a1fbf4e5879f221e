// Package services contains the stateless one-to-one mappings from domain
// operations to REST calls. Errors from the api client propagate unchanged;
// there is no retry or caching at this layer.
package services

import (
	"context"
	"net/http"

	"droneRentalMarketplace/internal/api"
	"droneRentalMarketplace/models"
)

// AuthService wraps the OTP authentication endpoints.
type AuthService struct {
	client *api.Client
}

func NewAuthService(client *api.Client) *AuthService {
	return &AuthService{client: client}
}

type otpRequestPayload struct {
	Mobile string `json:"mobile"`
}

// RequestOTP asks the backend to send an OTP to the given mobile number.
func (s *AuthService) RequestOTP(ctx context.Context, mobile string) (*models.OTPRequestResponse, error) {
	var out models.OTPRequestResponse
	err := s.client.Send(ctx, http.MethodPost, "/auth/request_otp", "", nil, otpRequestPayload{Mobile: mobile}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOTP exchanges a mobile/OTP pair for a bearer token and role set.
// Name provisions a new profile for first-time sign-ins; lat/lon update the
// profile's location when present.
func (s *AuthService) VerifyOTP(ctx context.Context, mobile, otp string, role models.Role, name *string, lat, lon *float64) (*models.AuthResponse, error) {
	payload := models.OTPVerify{
		Mobile: mobile,
		OTP:    otp,
		Role:   role.Wire(),
		Name:   name,
		Lat:    lat,
		Lon:    lon,
	}
	var out models.AuthResponse
	if err := s.client.Send(ctx, http.MethodPost, "/auth/verify_otp", "", nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
