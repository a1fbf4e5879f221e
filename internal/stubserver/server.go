// Package stubserver is an in-memory implementation of the marketplace REST
// backend, used by tests and the development server. It mirrors the
// production contract: demo OTP auth, role-scoped catalogs, owner-gated
// mutations, and base64 asset upload.
package stubserver

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"droneRentalMarketplace/models"
)

// DemoOTP is the fixed one-time password accepted by the stub.
const DemoOTP = "1234"

// defaultImagePool backs listings created without an image, keyed by the
// number of drones already listed.
var defaultImagePool = [...]string{
	"https://lh3.googleusercontent.com/aida-public/AB6AXuDw3EbDprqmgL5vEuv4kwV7bhY5RFilj_p4P9AERyMOGxEO9ITL2XwDoRxkOCeZU50jnu7xne0FiHdLTlZIJB2dSTbp5_gBfA9WhmdLVWHyzFhQPe9Jo7PD0vv6-dCgt1g3YnnLe_4opFr9BIXJD-p-r7l65ouwI6eKBN_tab8Q4oytcXmTfJKtZPo96ZyZBBKPv-Yl8VUVDIdXXHOjtU-0zaOCLGIftg3o6XJFk_BsV4qxQ2s1a4dLiDN_VwiqtFc-ZlezlDK97q2r",
	"https://lh3.googleusercontent.com/aida-public/AB6AXuBbQpz0KL1ynDcCeDlxxU0iJP73fczMcGFo3NBOqhsVXoZtRr-9m0gOY6vwHKPhl3EVjIF-mHOO715dHto5iVz6HO8Kww4aO4Kpu0Xue5herY4uz8f0w6XoGkZ1wRHhndBRjEmYKdvTcc9w0oHSOsd51csZCuP_NqhNu4h5BhtWGsosG4lZRIHC9xrgtETbluNf-z7I920qQYeAnWnsX2ttuIKyPORdSlNNPWtcrx9CQ_I7N9qB0NUv4019CjwJ0MmujouabufXln_S",
	"https://lh3.googleusercontent.com/aida-public/AB6AXuAmpV08bzFkSosB8mv2e8SgWObi7jdK2vPsg4xOd0rnpB5iQKwBMT2nhKmmJzADOFATT-94zILucmYeMRczuMhZqxr9fG4pZ4_zBP3jyEwTf7E6QeyD5aOW52TrpQwfhpBT-UJgZd3f5DhQJRUSsnv29DxSNtudUMMiHABADHu5W3N_2WeaGa4OIpG_mDysO_QKDcshJtmSSNQz2-2plPA0x2QzpOIhZlsv_TrNJjdlvtSXxvpc1VbspB-aA_oURxGIIbHj1OS8oS1j",
}

type profile struct {
	ID     int64
	Name   string
	Mobile string
	Lat    *float64
	Lon    *float64
}

type bookingRecord struct {
	ID            int64
	DroneID       int64
	FarmerName    string
	FarmerMobile  string
	BookingDate   time.Time
	DurationHours int
	Status        string
}

// wireDate matches the backend's zone-less UTC timestamp format, exercising
// clients' fallback date parsing.
const wireDate = "2006-01-02T15:04:05.000000"

func (b bookingRecord) wire() map[string]any {
	return map[string]any{
		"id":            b.ID,
		"drone_id":      b.DroneID,
		"farmer_name":   b.FarmerName,
		"farmer_mobile": b.FarmerMobile,
		"booking_date":  b.BookingDate.UTC().Format(wireDate),
		"duration_hrs":  b.DurationHours,
		"status":        b.Status,
	}
}

// Server holds the stub's in-memory state.
type Server struct {
	secret string

	mu            sync.Mutex
	owners        []profile
	farmers       []profile
	drones        []models.Drone
	bookings      []bookingRecord
	assets        map[string][]byte
	nextProfileID int64
	nextDroneID   int64
	nextBookingID int64
	requestCount  int
}

// NewServer builds an empty stub backend signing tokens with secret.
func NewServer(secret string) *Server {
	return &Server{
		secret:        secret,
		assets:        map[string][]byte{},
		nextProfileID: 1,
		nextDroneID:   1,
		nextBookingID: 1,
	}
}

// RequestCount reports how many requests the stub has served. Tests use it
// to prove role gates fire before any network call.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requestCount
}

// Handler returns the stub's HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.countRequests)

	r.Post("/auth/request_otp", s.handleRequestOTP)
	r.Post("/auth/verify_otp", s.handleVerifyOTP)

	r.Get("/drones/", s.handleListDrones)
	r.Method(http.MethodPost, "/drones/", s.requireRole(models.RoleOwner, s.handleCreateDrone))
	r.Method(http.MethodPatch, "/drones/{droneID}/availability/", s.requireRole(models.RoleOwner, s.handleUpdateAvailability))

	r.Method(http.MethodGet, "/owners/me/drones", s.requireRole(models.RoleOwner, s.handleOwnerDrones))
	r.Method(http.MethodGet, "/owners/", s.requireAuth(http.HandlerFunc(s.handleListOwners)))

	r.Method(http.MethodGet, "/bookings/", s.requireAuth(http.HandlerFunc(s.handleListBookings)))
	r.Method(http.MethodPost, "/bookings/", s.requireRole(models.RoleFarmer, s.handleCreateBooking))
	r.Method(http.MethodPatch, "/bookings/{bookingID}/", s.requireRole(models.RoleOwner, s.handleUpdateBooking))

	r.Post("/assets/upload", s.handleUpload)
	r.Get("/assets/{name}", s.handleGetAsset)
	return r
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requestCount++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func (s *Server) handleRequestOTP(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Mobile string `json:"mobile"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Mobile == "" {
		writeError(w, http.StatusBadRequest, "mobile required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"mobile":   payload.Mobile,
		"otp_sent": true,
		"demo_otp": DemoOTP,
	})
}

func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var payload models.OTPVerify
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if payload.OTP != DemoOTP {
		writeError(w, http.StatusUnauthorized, "Invalid OTP")
		return
	}
	role, ok := models.ParseRole(payload.Role)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid role")
		return
	}

	s.mu.Lock()
	var book *[]profile
	if role == models.RoleOwner {
		book = &s.owners
	} else {
		book = &s.farmers
	}
	target := findProfile(*book, payload.Mobile)
	if target == nil {
		if payload.Name == nil || *payload.Name == "" {
			s.mu.Unlock()
			writeError(w, http.StatusBadRequest, "Name required")
			return
		}
		*book = append(*book, profile{
			ID:     s.nextProfileID,
			Name:   *payload.Name,
			Mobile: payload.Mobile,
			Lat:    payload.Lat,
			Lon:    payload.Lon,
		})
		s.nextProfileID++
		target = &(*book)[len(*book)-1]
	} else if payload.Lat != nil && payload.Lon != nil {
		target.Lat = payload.Lat
		target.Lon = payload.Lon
	}
	profileName := target.Name

	roles := []string{}
	if findProfile(s.owners, payload.Mobile) != nil {
		roles = append(roles, models.RoleOwner.Wire())
	}
	if findProfile(s.farmers, payload.Mobile) != nil {
		roles = append(roles, models.RoleFarmer.Wire())
	}
	s.mu.Unlock()

	token, err := mintToken(s.secret, payload.Mobile, role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign token: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"role":         role.Wire(),
		"roles":        roles,
		"profile_name": profileName,
	})
}

func findProfile(book []profile, mobile string) *profile {
	for i := range book {
		if book[i].Mobile == mobile {
			return &book[i]
		}
	}
	return nil
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Filename  *string `json:"filename"`
		Extension string  `json:"extension"`
		Data      string  `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	data, err := base64.StdEncoding.DecodeString(payload.Data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid base64 data")
		return
	}
	ext := payload.Extension
	if ext == "" {
		ext = "jpg"
	}
	name := uuid.New().String() + "." + ext
	s.mu.Lock()
	s.assets[name] = data
	s.mu.Unlock()
	// Relative URL: clients resolve it against their configured base.
	writeJSON(w, http.StatusOK, map[string]string{"url": "/assets/" + name})
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s.mu.Lock()
	data, ok := s.assets[name]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "asset not found")
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(data)
}
