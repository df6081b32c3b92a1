package domain

import "errors"

var (
	ErrRequesterNotRegistered = errors.New("requester not registered")
	ErrNoOtherUsers           = errors.New("no other users")
)

// Match is the result of a nearest-neighbor lookup.
type Match struct {
	User       User
	DistanceKm float64
}

// FindNearest returns the user in snapshot closest to the requester by
// great-circle distance, excluding the requester themselves.
// On an exact distance tie the first candidate seen wins; snapshot order is
// whatever the registry scan produced, so ties are stable only within a pass.
func FindNearest(requesterID int64, snapshot []User) (Match, error) {
	var requester *User
	for i := range snapshot {
		if snapshot[i].ChatID == requesterID {
			requester = &snapshot[i]
			break
		}
	}
	if requester == nil {
		return Match{}, ErrRequesterNotRegistered
	}

	best := Match{DistanceKm: -1}
	for _, u := range snapshot {
		if u.ChatID == requesterID {
			continue
		}
		d := Distance(requester.Latitude, requester.Longitude, u.Latitude, u.Longitude)
		if best.DistanceKm < 0 || d < best.DistanceKm {
			best = Match{User: u, DistanceKm: d}
		}
	}
	if best.DistanceKm < 0 {
		return Match{}, ErrNoOtherUsers
	}
	return best, nil
}
