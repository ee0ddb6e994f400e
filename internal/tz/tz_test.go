package tz

import (
	"testing"
	"time"

	"github.com/username/datecalc/internal/dateerr"
)

func TestZonesResolve(t *testing.T) {
	z := NewZones("UTC")

	got, err := z.Resolve("2025-08-11")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if want := time.Date(2025, 8, 11, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("Resolve() = %v, want %v", got, want)
	}

	_, err = z.Resolve("someday")
	if !dateerr.Is(err, dateerr.InvalidInstant) {
		t.Errorf("Resolve(someday) error = %v, want InvalidInstant", err)
	}
}

func TestZonesFormat(t *testing.T) {
	z := NewZones("UTC")
	instant := time.Date(2025, 1, 15, 23, 30, 0, 0, time.UTC)

	got, err := z.Format(instant, "", "")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if got != "2025-01-15T23:30:00Z" {
		t.Errorf("Format() = %q", got)
	}

	if _, err := z.Location("Asia/Tokyo"); err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	got, err = z.Format(instant, "Asia/Tokyo", "date")
	if err != nil {
		t.Fatalf("Format(Tokyo) error = %v", err)
	}
	if got != "2025-01-16" {
		t.Errorf("Format(Tokyo) = %q, want 2025-01-16", got)
	}
}

func TestZonesUnknownTimezone(t *testing.T) {
	z := NewZones("UTC")
	_, err := z.In(time.Now(), "Mars/Olympus_Mons")
	if err == nil {
		t.Fatal("expected error for unknown timezone")
	}
	if got := dateerr.KindOf(err); got != dateerr.InvalidTimezone {
		t.Errorf("KindOf(In(Mars/Olympus_Mons)) = %v, want %v", got, dateerr.InvalidTimezone)
	}
}

func TestZonesCachesLocations(t *testing.T) {
	z := NewZones("UTC")
	a, err := z.Location("UTC")
	if err != nil {
		t.Fatalf("Location() error = %v", err)
	}
	b, _ := z.Location("")
	if a != b {
		t.Error("expected cached location to be reused")
	}
}
