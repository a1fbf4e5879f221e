package models

import "strings"

// BookingStatus is the closed set of booking states. Owners write these as
// free strings on the wire; ParseBookingStatus normalizes at the boundary.
type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "Pending"
	BookingStatusAccepted BookingStatus = "Accepted"
	BookingStatusRejected BookingStatus = "Rejected"
)

// ParseBookingStatus maps a wire value to a BookingStatus. Returns false for
// values outside the known set.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return BookingStatusPending, true
	case "accepted":
		return BookingStatusAccepted, true
	case "rejected":
		return BookingStatusRejected, true
	}
	return "", false
}

// Booking is a rental request created by a farmer against a drone. Bookings
// are never deleted, only transitioned by the owning account.
type Booking struct {
	ID            int64   `json:"id"`
	DroneID       int64   `json:"drone_id"`
	FarmerName    string  `json:"farmer_name"`
	FarmerMobile  *string `json:"farmer_mobile,omitempty"`
	BookingDate   Time    `json:"booking_date"`
	DurationHours int     `json:"duration_hrs"`
	Status        string  `json:"status"`
}

// NormalizedStatus returns the closed-enum view of the wire status.
func (b *Booking) NormalizedStatus() (BookingStatus, bool) {
	return ParseBookingStatus(b.Status)
}

// BookingCreate is the payload for creating a booking.
type BookingCreate struct {
	DroneID       int64  `json:"drone_id"`
	FarmerName    string `json:"farmer_name"`
	DurationHours int    `json:"duration_hrs"`
}
