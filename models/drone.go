package models

import (
	"hash/fnv"
	"strconv"
	"strings"
)

// Availability is the normalized display status of a drone. Backends report
// free-form strings; NormalizeAvailability maps them case-insensitively.
type Availability string

const (
	AvailabilityAvailable   Availability = "Available"
	AvailabilityBooked      Availability = "Booked"
	AvailabilityMaintenance Availability = "Maintenance"
)

// NormalizeAvailability maps a wire status string to a closed Availability.
// Returns false for values outside the known set; the raw string should then
// be shown as-is.
func NormalizeAvailability(status string) (Availability, bool) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "available":
		return AvailabilityAvailable, true
	case "booked", "rented":
		return AvailabilityBooked, true
	case "maintenance":
		return AvailabilityMaintenance, true
	}
	return "", false
}

// fallbackImagePool is the fixed placeholder set used when a drone carries no
// image. Selection is keyed off the drone id so the same drone always gets
// the same placeholder across reloads.
var fallbackImagePool = [...]string{
	"https://lh3.googleusercontent.com/aida-public/AB6AXuDw3EbDprqmgL5vEuv4kwV7bhY5RFilj_p4P9AERyMOGxEO9ITL2XwDoRxkOCeZU50jnu7xne0FiHdLTlZIJB2dSTbp5_gBfA9WhmdLVWHyzFhQPe9Jo7PD0vv6-dCgt1g3YnnLe_4opFr9BIXJD-p-r7l65ouwI6eKBN_tab8Q4oytcXmTfJKtZPo96ZyZBBKPv-Yl8VUVDIdXXHOjtU-0zaOCLGIftg3o6XJFk_BsV4qxQ2s1a4dLiDN_VwiqtFc-ZlezlDK97q2r",
	"https://lh3.googleusercontent.com/aida-public/AB6AXuBbQpz0KL1ynDcCeDlxxU0iJP73fczMcGFo3NBOqhsVXoZtRr-9m0gOY6vwHKPhl3EVjIF-mHOO715dHto5iVz6HO8Kww4aO4Kpu0Xue5herY4uz8f0w6XoGkZ1wRHhndBRjEmYKdvTcc9w0oHSOsd51csZCuP_NqhNu4h5BhtWGsosG4lZRIHC9xrgtETbluNf-z7I920qQYeAnWnsX2ttuIKyPORdSlNNPWtcrx9CQ_I7N9qB0NUv4019CjwJ0MmujouabufXln_S",
	"https://lh3.googleusercontent.com/aida-public/AB6AXuAmpV08bzFkSosB8mv2e8SgWObi7jdK2vPsg4xOd0rnpB5iQKwBMT2nhKmmJzADOFATT-94zILucmYeMRczuMhZqxr9fG4pZ4_zBP3jyEwTf7E6QeyD5aOW52TrpQwfhpBT-UJgZd3f5DhQJRUSsnv29DxSNtudUMMiHABADHu5W3N_2WeaGa4OIpG_mDysO_QKDcshJtmSSNQz2-2plPA0x2QzpOIhZlsv_TrNJjdlvtSXxvpc1VbspB-aA_oURxGIIbHj1OS8oS1j",
}

// Drone is a rentable listing owned by exactly one Owner account.
type Drone struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	Lat            float64  `json:"lat"`
	Lon            float64  `json:"lon"`
	Status         string   `json:"status"`
	PricePerHour   float64  `json:"price_per_hr"`
	OwnerID        int64    `json:"owner_id"`
	ImageURL       *string  `json:"image_url,omitempty"`
	ImageURLs      []string `json:"image_urls,omitempty"`
	BatteryMah     *float64 `json:"battery_mah,omitempty"`
	CapacityLiters *float64 `json:"capacity_liters,omitempty"`
}

// Availability returns the normalized status, or false when the backend sent
// a value outside the known set.
func (d *Drone) Availability() (Availability, bool) {
	return NormalizeAvailability(d.Status)
}

// PrimaryImageURL resolves the drone's display image. The first entry of
// image_urls wins, falling back to image_url. Relative paths are resolved
// against baseURL; absolute URLs pass through unchanged. Empty when the drone
// carries no image at all.
func (d *Drone) PrimaryImageURL(baseURL string) string {
	raw := ""
	if len(d.ImageURLs) > 0 {
		raw = d.ImageURLs[0]
	} else if d.ImageURL != nil {
		raw = *d.ImageURL
	}
	return ResolveAssetURL(baseURL, raw)
}

// FallbackImageURL picks a deterministic placeholder for drones with no
// image: hashing the id guarantees the same URL on every reload.
func (d *Drone) FallbackImageURL() string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(d.ID, 10)))
	return fallbackImagePool[h.Sum32()%uint32(len(fallbackImagePool))]
}

// ResolveAssetURL joins a relative asset path onto baseURL. Absolute URLs and
// empty strings are returned unchanged.
func ResolveAssetURL(baseURL, raw string) string {
	if raw == "" || strings.Contains(raw, "://") {
		return raw
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(raw, "/")
}

// DroneCreate is the payload for creating a listing.
type DroneCreate struct {
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	Lat            float64  `json:"lat"`
	Lon            float64  `json:"lon"`
	PricePerHour   float64  `json:"price_per_hr"`
	ImageURL       *string  `json:"image_url,omitempty"`
	ImageURLs      []string `json:"image_urls,omitempty"`
	BatteryMah     *float64 `json:"battery_mah,omitempty"`
	CapacityLiters *float64 `json:"capacity_liters,omitempty"`
}
