package cache

import (
	"testing"
	"time"

	"runcoach/internal/strava"
)

func TestKey(t *testing.T) {
	if got, want := Key("runs", "athlete", "7d"), "runs|athlete|7d"; got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}
}

func TestGetPut(t *testing.T) {
	c := New(time.Minute)
	runs := []strava.Activity{{ID: 1}, {ID: 2}}

	if _, ok := c.Get("runs|7d"); ok {
		t.Error("Get() on empty cache reported a hit")
	}

	c.Put("runs|7d", runs)

	got, ok := c.Get("runs|7d")
	if !ok {
		t.Fatal("Get() after Put() reported a miss")
	}
	if len(got) != 2 || got[0].ID != 1 {
		t.Errorf("Get() = %v activities, want the 2 stored", len(got))
	}
}

func TestExpiry(t *testing.T) {
	c := New(time.Minute)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	c.Put("runs|7d", []strava.Activity{{ID: 1}})

	current = current.Add(59 * time.Second)
	if _, ok := c.Get("runs|7d"); !ok {
		t.Error("Get() before TTL reported a miss")
	}

	current = current.Add(2 * time.Second)
	if _, ok := c.Get("runs|7d"); ok {
		t.Error("Get() after TTL reported a hit")
	}

	// A later Put sweeps the expired entry.
	c.Put("runs|28d", nil)
	if c.Len() != 1 {
		t.Errorf("Len() after sweep = %v, want 1", c.Len())
	}
}
