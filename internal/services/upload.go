package services

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"droneRentalMarketplace/internal/api"
)

// UploadService wraps the asset upload endpoint. Payloads are base64-encoded
// client-side; the backend returns the hosted URL.
type UploadService struct {
	client *api.Client
}

func NewUploadService(client *api.Client) *UploadService {
	return &UploadService{client: client}
}

type uploadPayload struct {
	Filename  *string `json:"filename,omitempty"`
	Extension string  `json:"extension"`
	Data      string  `json:"data"`
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload sends image bytes and returns the hosted URL. The extension is
// derived from the filename when present, defaulting to jpg.
func (s *UploadService) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	payload := uploadPayload{
		Extension: "jpg",
		Data:      base64.StdEncoding.EncodeToString(data),
	}
	if filename != "" {
		payload.Filename = &filename
		if i := strings.LastIndexByte(filename, '.'); i >= 0 && i < len(filename)-1 {
			payload.Extension = filename[i+1:]
		}
	}
	var out uploadResponse
	if err := s.client.Send(ctx, http.MethodPost, "/assets/upload", "", nil, payload, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}
