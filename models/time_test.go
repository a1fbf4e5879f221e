package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTime_ParsesISO8601WithFraction(t *testing.T) {
	var ts Time
	if err := json.Unmarshal([]byte(`"2026-08-29T10:30:00.123Z"`), &ts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ts.UTC().Hour() != 10 || ts.Nanosecond() != 123000000 {
		t.Fatalf("parsed %v", ts.Time)
	}
}

func TestTime_FallbackAssumesUTC(t *testing.T) {
	// Zone-less backend timestamps (datetime.utcnow().isoformat()).
	var ts Time
	if err := json.Unmarshal([]byte(`"2026-08-29T10:30:00.123456"`), &ts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := time.Date(2026, 8, 29, 10, 30, 0, 123456000, time.UTC)
	if !ts.Equal(want) {
		t.Fatalf("parsed %v, want %v", ts.Time, want)
	}
}

func TestTime_RejectsGarbage(t *testing.T) {
	var ts Time
	if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
		t.Fatalf("expected error for invalid date")
	}
}

func TestBooking_DecodesWirePayload(t *testing.T) {
	raw := `{"id":7,"drone_id":3,"farmer_name":"Asha","farmer_mobile":"9876543210","booking_date":"2026-08-29T08:00:00.000000","duration_hrs":4,"status":"Pending"}`
	var b Booking
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if b.ID != 7 || b.DroneID != 3 || b.DurationHours != 4 {
		t.Fatalf("decoded %+v", b)
	}
	if s, ok := b.NormalizedStatus(); !ok || s != BookingStatusPending {
		t.Fatalf("status = %q", b.Status)
	}
	if b.BookingDate.UTC().Hour() != 8 {
		t.Fatalf("booking date = %v", b.BookingDate.Time)
	}
}
