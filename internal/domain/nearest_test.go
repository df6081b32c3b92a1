package domain

import (
	"errors"
	"math"
	"testing"
)

func TestFindNearest_TwoUsers(t *testing.T) {
	snapshot := []User{
		{ChatID: 1, Name: "A", Latitude: 0, Longitude: 0},
		{ChatID: 2, Name: "B", Latitude: 10, Longitude: 10},
	}
	m, err := FindNearest(1, snapshot)
	if err != nil {
		t.Fatalf("find nearest: %v", err)
	}
	if m.User.ChatID != 2 {
		t.Fatalf("want chat 2, got %d", m.User.ChatID)
	}
}

func TestFindNearest_PicksMinimum(t *testing.T) {
	snapshot := []User{
		{ChatID: 1, Latitude: 0, Longitude: 0},
		{ChatID: 2, Name: "far", Latitude: 45, Longitude: 45},
		{ChatID: 3, Name: "near", Latitude: 0.5, Longitude: 0.5},
		{ChatID: 4, Name: "mid", Latitude: 5, Longitude: 5},
	}
	m, err := FindNearest(1, snapshot)
	if err != nil {
		t.Fatalf("find nearest: %v", err)
	}
	if m.User.ChatID != 3 {
		t.Fatalf("want chat 3 (nearest), got %d", m.User.ChatID)
	}
}

func TestFindNearest_NearEquidistantCandidates(t *testing.T) {
	// B and C sit one degree away along longitude and latitude respectively;
	// both are ≈111.19 km from the origin.
	snapshot := []User{
		{ChatID: 1, Name: "A", Latitude: 0, Longitude: 0},
		{ChatID: 2, Name: "B", Latitude: 0, Longitude: 1},
		{ChatID: 3, Name: "C", Latitude: 1, Longitude: 0},
	}
	m, err := FindNearest(1, snapshot)
	if err != nil {
		t.Fatalf("find nearest: %v", err)
	}
	if m.User.ChatID != 2 && m.User.ChatID != 3 {
		t.Fatalf("want chat 2 or 3, got %d", m.User.ChatID)
	}
	if math.Abs(m.DistanceKm-111.19) > 0.5 {
		t.Fatalf("want ≈111.19 km, got %v", m.DistanceKm)
	}
}

func TestFindNearest_RequesterNotRegistered(t *testing.T) {
	snapshot := []User{{ChatID: 2, Latitude: 1, Longitude: 1}}
	if _, err := FindNearest(1, snapshot); !errors.Is(err, ErrRequesterNotRegistered) {
		t.Fatalf("want ErrRequesterNotRegistered, got %v", err)
	}
}

func TestFindNearest_NoOtherUsers(t *testing.T) {
	snapshot := []User{{ChatID: 1, Latitude: 1, Longitude: 1}}
	if _, err := FindNearest(1, snapshot); !errors.Is(err, ErrNoOtherUsers) {
		t.Fatalf("want ErrNoOtherUsers, got %v", err)
	}

	if _, err := FindNearest(1, nil); !errors.Is(err, ErrRequesterNotRegistered) {
		t.Fatalf("empty snapshot: want ErrRequesterNotRegistered, got %v", err)
	}
}
