package geo

import (
	"math"
	"testing"
)

func TestHaversine_KnownDistance(t *testing.T) {
	// Seoul City Hall to Gangnam Station, roughly 8.3 km.
	d := Haversine(37.5663, 126.9779, 37.4979, 127.0276)
	if d < 8.0 || d > 9.0 {
		t.Errorf("expected ~8.3 km, got %v", d)
	}
}

func TestHaversine_ZeroForSamePoint(t *testing.T) {
	d := Haversine(37.5, 127.0, 37.5, 127.0)
	if d != 0 {
		t.Errorf("expected 0, got %v", d)
	}
}

func TestHaversine_Symmetric(t *testing.T) {
	ab := Haversine(37.5, 127.0, 35.1, 129.0)
	ba := Haversine(35.1, 129.0, 37.5, 127.0)
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("distance not symmetric: %v vs %v", ab, ba)
	}
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{"valid", 37.5, 127.0, true},
		{"lat too high", 91, 0, false},
		{"lat too low", -91, 0, false},
		{"lon too high", 0, 181, false},
		{"lon too low", 0, -181, false},
		{"boundary", 90, 180, true},
		{"negative boundary", -90, -180, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateCoordinates(tt.lat, tt.lon); got != tt.want {
				t.Errorf("ValidateCoordinates(%v, %v) = %v, want %v", tt.lat, tt.lon, got, tt.want)
			}
		})
	}
}

func TestNewBoundingBox_Invalid(t *testing.T) {
	if _, err := NewBoundingBox(38, 127, 37, 128); err == nil {
		t.Error("expected error for min lat above max lat")
	}
	if _, err := NewBoundingBox(37, 128, 38, 127); err == nil {
		t.Error("expected error for antimeridian-style box")
	}
	if _, err := NewBoundingBox(-95, 127, 38, 128); err == nil {
		t.Error("expected error for out-of-range corner")
	}
}

func TestBoundingBox_Contains(t *testing.T) {
	box, err := NewBoundingBox(37.4, 126.8, 37.7, 127.2)
	if err != nil {
		t.Fatalf("NewBoundingBox: %v", err)
	}

	if !box.Contains(Point{Lat: 37.55, Lon: 127.0}) {
		t.Error("interior point should be contained")
	}
	if !box.Contains(Point{Lat: 37.4, Lon: 126.8}) {
		t.Error("boundary point should be contained (closed interval)")
	}
	if box.Contains(Point{Lat: 37.3, Lon: 127.0}) {
		t.Error("point south of box should not be contained")
	}
	if box.Contains(Point{Lat: 37.5, Lon: 127.3}) {
		t.Error("point east of box should not be contained")
	}
}
