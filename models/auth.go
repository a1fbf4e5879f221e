package models

import "encoding/json"

// OTPRequestResponse is the backend's acknowledgement of an OTP request.
// demo_otp is only populated by demo deployments.
type OTPRequestResponse struct {
	Mobile  string  `json:"mobile"`
	OTPSent bool    `json:"otp_sent"`
	DemoOTP *string `json:"demo_otp,omitempty"`
}

// AuthResponse is the result of a successful OTP verification.
type AuthResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	Role        string   `json:"role"`
	Roles       []string `json:"roles"`
	ProfileName *string  `json:"profile_name,omitempty"`
}

// UnmarshalJSON reconciles the role fields defensively: a present `role` is
// trusted as primary; otherwise the first entry of `roles` is promoted. When
// both are absent the response is a degenerate auth outcome (both empty) and
// the caller must treat it as invalid.
func (a *AuthResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		AccessToken string   `json:"access_token"`
		TokenType   string   `json:"token_type"`
		Role        *string  `json:"role"`
		Roles       []string `json:"roles"`
		ProfileName *string  `json:"profile_name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.AccessToken = raw.AccessToken
	a.TokenType = raw.TokenType
	a.ProfileName = raw.ProfileName
	a.Role = ""
	a.Roles = nil

	primary := ""
	if raw.Role != nil && *raw.Role != "" {
		primary = *raw.Role
	} else if len(raw.Roles) > 0 {
		primary = raw.Roles[0]
	}
	if primary == "" {
		return nil
	}
	a.Role = primary
	if len(raw.Roles) > 0 {
		a.Roles = raw.Roles
	} else {
		a.Roles = []string{primary}
	}
	return nil
}

// OTPVerify is the payload for /auth/verify_otp.
type OTPVerify struct {
	Mobile string   `json:"mobile"`
	OTP    string   `json:"otp"`
	Role   string   `json:"role"`
	Name   *string  `json:"name,omitempty"`
	Lat    *float64 `json:"lat,omitempty"`
	Lon    *float64 `json:"lon,omitempty"`
}
