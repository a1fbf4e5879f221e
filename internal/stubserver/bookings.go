package stubserver

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"droneRentalMarketplace/models"
)

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())
	statusFilter := r.URL.Query().Get("status")

	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []bookingRecord
	if id.Role == models.RoleOwner {
		owner := findProfile(s.owners, id.Mobile)
		if owner == nil {
			writeError(w, http.StatusNotFound, "Owner not found")
			return
		}
		owned := map[int64]bool{}
		for _, d := range s.drones {
			if d.OwnerID == owner.ID {
				owned[d.ID] = true
			}
		}
		for _, b := range s.bookings {
			if owned[b.DroneID] {
				matches = append(matches, b)
			}
		}
	} else {
		for _, b := range s.bookings {
			if b.FarmerMobile == id.Mobile {
				matches = append(matches, b)
			}
		}
	}

	if statusFilter != "" {
		kept := matches[:0]
		for _, b := range matches {
			if b.Status == statusFilter {
				kept = append(kept, b)
			}
		}
		matches = kept
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].BookingDate.After(matches[j].BookingDate)
	})

	out := make([]map[string]any, 0, len(matches))
	for _, b := range matches {
		out = append(out, b.wire())
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())
	var payload models.BookingCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.droneExists(payload.DroneID) {
		writeError(w, http.StatusNotFound, "Drone not found")
		return
	}
	farmer := findProfile(s.farmers, id.Mobile)
	if farmer == nil {
		writeError(w, http.StatusNotFound, "Farmer not found")
		return
	}
	name := payload.FarmerName
	if name == "" {
		name = farmer.Name
	}
	booking := bookingRecord{
		ID:            s.nextBookingID,
		DroneID:       payload.DroneID,
		FarmerName:    name,
		FarmerMobile:  id.Mobile,
		BookingDate:   time.Now().UTC(),
		DurationHours: payload.DurationHours,
		Status:        string(models.BookingStatusPending),
	}
	s.nextBookingID++
	s.bookings = append(s.bookings, booking)
	writeJSON(w, http.StatusOK, booking.wire())
}

func (s *Server) handleUpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())
	bookingID, err := strconv.ParseInt(chi.URLParam(r, "bookingID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	newStatus, ok := models.ParseBookingStatus(payload.Status)
	if !ok {
		writeError(w, http.StatusBadRequest, "status must be Pending/Accepted/Rejected")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	owner := findProfile(s.owners, id.Mobile)
	if owner == nil {
		writeError(w, http.StatusNotFound, "Owner not found")
		return
	}
	for i := range s.bookings {
		if s.bookings[i].ID != bookingID {
			continue
		}
		droneIdx := -1
		for j := range s.drones {
			if s.drones[j].ID == s.bookings[i].DroneID {
				droneIdx = j
				break
			}
		}
		if droneIdx < 0 {
			writeError(w, http.StatusNotFound, "Drone not found")
			return
		}
		if s.drones[droneIdx].OwnerID != owner.ID {
			writeError(w, http.StatusForbidden, "Cannot update another owner's booking")
			return
		}
		s.bookings[i].Status = string(newStatus)
		// An accepted booking takes the drone off the market; a pending or
		// rejected one puts it back.
		if newStatus == models.BookingStatusAccepted {
			s.drones[droneIdx].Status = "Booked"
		} else {
			s.drones[droneIdx].Status = "Available"
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Booking " + string(newStatus)})
		return
	}
	writeError(w, http.StatusNotFound, "Booking not found")
}

func (s *Server) droneExists(id int64) bool {
	for _, d := range s.drones {
		if d.ID == id {
			return true
		}
	}
	return false
}
