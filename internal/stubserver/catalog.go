package stubserver

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"

	"droneRentalMarketplace/internal/geo"
	"droneRentalMarketplace/models"
)

func parseFloatQuery(r *http.Request, key string) *float64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func (s *Server) handleListDrones(w http.ResponseWriter, r *http.Request) {
	lat := parseFloatQuery(r, "lat")
	lon := parseFloatQuery(r, "lon")
	maxDistKm := parseFloatQuery(r, "max_dist_km")
	minPrice := parseFloatQuery(r, "min_price")
	maxPrice := parseFloatQuery(r, "max_price")
	sortBy := r.URL.Query().Get("sort_by")

	s.mu.Lock()
	drones := append([]models.Drone(nil), s.drones...)
	s.mu.Unlock()

	filtered := drones[:0:0]
	for _, d := range drones {
		if minPrice != nil && d.PricePerHour < *minPrice {
			continue
		}
		if maxPrice != nil && d.PricePerHour > *maxPrice {
			continue
		}
		if lat != nil && lon != nil && maxDistKm != nil {
			if !geo.IsWithinRadiusKm(*lat, *lon, d.Lat, d.Lon, *maxDistKm) {
				continue
			}
		}
		filtered = append(filtered, d)
	}

	if sortBy == "price" {
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].PricePerHour < filtered[j].PricePerHour
		})
	} else if sortBy == "distance" && lat != nil && lon != nil {
		sort.SliceStable(filtered, func(i, j int) bool {
			di := geo.HaversineKm(*lat, *lon, filtered[i].Lat, filtered[i].Lon)
			dj := geo.HaversineKm(*lat, *lon, filtered[j].Lat, filtered[j].Lon)
			return di < dj
		})
	}

	writeJSON(w, http.StatusOK, filtered)
}

func (s *Server) handleCreateDrone(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())
	var payload models.DroneCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	owner := findProfile(s.owners, id.Mobile)
	if owner == nil {
		writeError(w, http.StatusNotFound, "Owner not found")
		return
	}

	primary := ""
	if payload.ImageURL != nil && *payload.ImageURL != "" {
		primary = *payload.ImageURL
	} else if len(payload.ImageURLs) > 0 {
		primary = payload.ImageURLs[0]
	} else {
		primary = defaultImagePool[len(s.drones)%len(defaultImagePool)]
	}

	images := payload.ImageURLs
	if len(images) > 3 {
		images = images[:3]
	}

	drone := models.Drone{
		ID:             s.nextDroneID,
		Name:           payload.Name,
		Type:           payload.Type,
		Lat:            payload.Lat,
		Lon:            payload.Lon,
		Status:         "Available",
		PricePerHour:   payload.PricePerHour,
		OwnerID:        owner.ID,
		ImageURL:       &primary,
		ImageURLs:      images,
		BatteryMah:     payload.BatteryMah,
		CapacityLiters: payload.CapacityLiters,
	}
	s.nextDroneID++
	s.drones = append(s.drones, drone)
	writeJSON(w, http.StatusOK, drone)
}

func (s *Server) handleUpdateAvailability(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())
	droneID, err := strconv.ParseInt(chi.URLParam(r, "droneID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid drone id")
		return
	}
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Status == "" {
		writeError(w, http.StatusBadRequest, "status required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	owner := findProfile(s.owners, id.Mobile)
	if owner == nil {
		writeError(w, http.StatusNotFound, "Owner not found")
		return
	}
	for i := range s.drones {
		if s.drones[i].ID != droneID {
			continue
		}
		if s.drones[i].OwnerID != owner.ID {
			writeError(w, http.StatusForbidden, "Cannot modify another owner's drone")
			return
		}
		s.drones[i].Status = payload.Status
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Availability updated",
			"status":  payload.Status,
		})
		return
	}
	writeError(w, http.StatusNotFound, "Drone not found")
}

func (s *Server) handleOwnerDrones(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()
	owner := findProfile(s.owners, id.Mobile)
	if owner == nil {
		writeError(w, http.StatusNotFound, "Owner not found")
		return
	}
	owned := []models.Drone{}
	for _, d := range s.drones {
		if d.OwnerID == owner.ID {
			owned = append(owned, d)
		}
	}
	writeJSON(w, http.StatusOK, owned)
}

func (s *Server) handleListOwners(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Owner, 0, len(s.owners))
	for _, o := range s.owners {
		out = append(out, models.Owner{ID: o.ID, Name: o.Name, Mobile: o.Mobile, Lat: o.Lat, Lon: o.Lon})
	}
	writeJSON(w, http.StatusOK, out)
}
