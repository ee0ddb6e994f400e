// Package tz resolves instant strings and timezone names and formats
// instants for display.
package tz

import (
	"sync"
	"time"

	"github.com/username/datecalc/internal/dateerr"
	"github.com/username/datecalc/pkg/dateutil"
)

// Service is the timezone collaborator used by the operation layer
type Service interface {
	// Resolve parses an absolute time string; failures are InvalidInstant errors
	Resolve(text string) (time.Time, error)
	// LocalName returns the name of the default timezone
	LocalName() string
	// In converts t into the named timezone; unknown names are InvalidTimezone errors
	In(t time.Time, tzName string) (time.Time, error)
	// Format renders t in the named timezone using an optional pattern
	Format(t time.Time, tzName, pattern string) (string, error)
}

// Zones implements Service on top of the system tz database.
type Zones struct {
	local string
	cache map[string]*time.Location
	mu    sync.RWMutex
}

// NewZones creates a Zones service whose default timezone is local.
// An empty local name falls back to the process timezone.
func NewZones(local string) *Zones {
	if local == "" {
		local = time.Local.String()
	}
	return &Zones{
		local: local,
		cache: make(map[string]*time.Location),
	}
}

// LocalName implements Service
func (z *Zones) LocalName() string {
	return z.local
}

// Location returns a cached location or loads and caches it.
// An empty name means the default timezone.
func (z *Zones) Location(name string) (*time.Location, error) {
	if name == "" {
		name = z.local
	}

	z.mu.RLock()
	if loc, ok := z.cache[name]; ok {
		z.mu.RUnlock()
		return loc, nil
	}
	z.mu.RUnlock()

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, dateerr.Timezone(name, err)
	}

	z.mu.Lock()
	z.cache[name] = loc
	z.mu.Unlock()

	return loc, nil
}

// Resolve implements Service. Naive inputs are read in the default timezone.
func (z *Zones) Resolve(text string) (time.Time, error) {
	loc, err := z.Location("")
	if err != nil {
		return time.Time{}, err
	}
	t, err := dateutil.ParseInstant(text, loc)
	if err != nil {
		return time.Time{}, dateerr.Instant(text, err)
	}
	return t, nil
}

// In implements Service
func (z *Zones) In(t time.Time, tzName string) (time.Time, error) {
	loc, err := z.Location(tzName)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

// Format implements Service
func (z *Zones) Format(t time.Time, tzName, pattern string) (string, error) {
	local, err := z.In(t, tzName)
	if err != nil {
		return "", err
	}
	return dateutil.Format(local, pattern), nil
}
