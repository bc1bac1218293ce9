package sqlite

import (
	"errors"
	"testing"

	"github.com/kervan-app/kervan/internal/errs"
	"github.com/kervan-app/kervan/internal/models"
)

func seedUser(t *testing.T, s *Store, u models.User) {
	t.Helper()
	if err := s.SaveUser(u); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUser("missing")
	if !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveAndGetUser(t *testing.T) {
	s := newTestStore(t)
	seedUser(t, s, models.User{ID: "u1", Name: "Ayşe", Lives: 5, Gold: 10, Makam: 2, MaxHealth: 100})

	u, err := s.GetUser("u1")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if u.Name != "Ayşe" || u.Gold != 10 || u.Makam != 2 {
		t.Errorf("unexpected user %+v", u)
	}
}

func TestAdjustUserRewards(t *testing.T) {
	tests := []struct {
		name       string
		user       models.User
		goldDelta  int
		livesDelta int
		wantGold   int
		wantLives  int
	}{
		{"plain gain", models.User{ID: "u1", Gold: 10, Lives: 5, MaxHealth: 100}, 3, 2, 13, 7},
		{"gold clamps at zero", models.User{ID: "u1", Gold: 2, Lives: 5, MaxHealth: 100}, -5, 0, 0, 5},
		{"lives clamp at max health", models.User{ID: "u1", Gold: 0, Lives: 99, MaxHealth: 100}, 0, 5, 0, 100},
		{"lives clamp at zero", models.User{ID: "u1", Gold: 0, Lives: 1, MaxHealth: 100}, 0, -3, 0, 0},
		{"zero max health falls back to default cap", models.User{ID: "u1", Gold: 0, Lives: 5, MaxHealth: 0}, 0, 200, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			seedUser(t, s, tt.user)

			u, err := s.AdjustUserRewards("u1", tt.goldDelta, tt.livesDelta)
			if err != nil {
				t.Fatalf("AdjustUserRewards failed: %v", err)
			}
			if u.Gold != tt.wantGold || u.Lives != tt.wantLives {
				t.Errorf("got gold=%d lives=%d, want gold=%d lives=%d", u.Gold, u.Lives, tt.wantGold, tt.wantLives)
			}

			// The returned record must match what was persisted.
			stored, err := s.GetUser("u1")
			if err != nil {
				t.Fatalf("GetUser failed: %v", err)
			}
			if stored.Gold != u.Gold || stored.Lives != u.Lives {
				t.Errorf("persisted gold=%d lives=%d differs from returned", stored.Gold, stored.Lives)
			}
		})
	}
}

func TestAdjustUserRewardsMissingUser(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AdjustUserRewards("missing", 1, 1)
	if !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFixUserHealth(t *testing.T) {
	tests := []struct {
		name        string
		user        models.User
		wantLives   int
		wantMax     int
		wantChanged bool
	}{
		{"healthy record untouched", models.User{ID: "u1", Lives: 50, MaxHealth: 100}, 50, 100, false},
		{"missing max health backfilled", models.User{ID: "u1", Lives: 50, MaxHealth: 0}, 50, 100, true},
		{"lives clamped to max health", models.User{ID: "u1", Lives: 150, MaxHealth: 100}, 100, 100, true},
		{"backfill and clamp together", models.User{ID: "u1", Lives: 150, MaxHealth: 0}, 100, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			seedUser(t, s, tt.user)

			u, changed, err := s.FixUserHealth("u1")
			if err != nil {
				t.Fatalf("FixUserHealth failed: %v", err)
			}
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
			if u.Lives != tt.wantLives || u.MaxHealth != tt.wantMax {
				t.Errorf("got lives=%d max=%d, want lives=%d max=%d", u.Lives, u.MaxHealth, tt.wantLives, tt.wantMax)
			}
		})
	}
}
