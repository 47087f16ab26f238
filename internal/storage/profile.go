package storage

import (
	"time"
)

// Profile holds the remembered derivation settings for one service.
type Profile struct {
	Service  string    `json:"service"`
	Length   int       `json:"length"`
	Scheme   string    `json:"scheme"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

// NewProfile creates a profile stamped with the current time
func NewProfile(service string, length int, scheme string) *Profile {
	now := time.Now().UTC().Truncate(time.Second)
	return &Profile{
		Service:  service,
		Length:   length,
		Scheme:   scheme,
		Created:  now,
		Modified: now,
	}
}

// Update changes the settings and bumps Modified. It reports whether
// anything changed.
func (p *Profile) Update(length int, scheme string) bool {
	if p.Length == length && p.Scheme == scheme {
		return false
	}
	p.Length = length
	p.Scheme = scheme
	p.Modified = time.Now().UTC().Truncate(time.Second)
	return true
}
