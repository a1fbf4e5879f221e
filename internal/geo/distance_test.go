package geo

import "testing"

func TestHaversineKm_ZeroDistance(t *testing.T) {
	d := HaversineKm(10, 20, 10, 20)
	if d < 0 || d > 1e-9 {
		t.Fatalf("zero distance expected ~0, got %v", d)
	}
}

func TestHaversineKm_KnownDistance(t *testing.T) {
	// Nashik to Pune is roughly 165 km as the crow flies.
	d := HaversineKm(19.9975, 73.7898, 18.5204, 73.8567)
	if d < 160 || d > 170 {
		t.Fatalf("Nashik-Pune distance = %v km, want ~165", d)
	}
}

func TestIsWithinRadiusKm(t *testing.T) {
	// ~0.11 km apart along the equator.
	if !IsWithinRadiusKm(0, 0, 0, 0.001, 1) {
		t.Fatalf("expected points to be within 1 km")
	}
	if IsWithinRadiusKm(0, 0, 0, 1, 1) {
		t.Fatalf("expected points ~111 km apart to be outside 1 km")
	}
}
