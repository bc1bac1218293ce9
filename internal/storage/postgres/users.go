package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/kervan-app/kervan/internal/constants"
	"github.com/kervan-app/kervan/internal/errs"
	"github.com/kervan-app/kervan/internal/models"
)

func (s *Store) GetUser(id string) (models.User, error) {
	row := s.db.QueryRow(`
		SELECT id, username, profile_pic, can, altin, makam, max_health
		FROM users WHERE id = $1`, id)

	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.ProfileImage, &u.Lives, &u.Gold, &u.Makam, &u.MaxHealth)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, errs.ErrNotFound
		}
		return models.User{}, errs.Store("get user", err)
	}

	return u, nil
}

func (s *Store) SaveUser(u models.User) error {
	_, err := s.db.Exec(`
		INSERT INTO users (id, username, profile_pic, can, altin, makam, max_health)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			profile_pic = EXCLUDED.profile_pic,
			can = EXCLUDED.can,
			altin = EXCLUDED.altin,
			makam = EXCLUDED.makam,
			max_health = EXCLUDED.max_health`,
		u.ID, u.Name, u.ProfileImage, u.Lives, u.Gold, u.Makam, u.MaxHealth)
	if err != nil {
		return errs.Store("save user", err)
	}
	return nil
}

func (s *Store) AdjustUserRewards(id string, goldDelta, livesDelta int) (models.User, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.User{}, errs.Store("adjust rewards", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`
		SELECT id, username, profile_pic, can, altin, makam, max_health
		FROM users WHERE id = $1 FOR UPDATE`, id)

	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.ProfileImage, &u.Lives, &u.Gold, &u.Makam, &u.MaxHealth); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, errs.ErrNotFound
		}
		return models.User{}, errs.Store("adjust rewards", err)
	}

	u.Gold = clamp(u.Gold+goldDelta, 0, -1)
	u.Lives = clamp(u.Lives+livesDelta, 0, u.EffectiveMaxHealth())

	if _, err := tx.Exec(`UPDATE users SET altin = $1, can = $2 WHERE id = $3`, u.Gold, u.Lives, u.ID); err != nil {
		return models.User{}, errs.Store("adjust rewards", err)
	}

	if err := tx.Commit(); err != nil {
		return models.User{}, errs.Store("adjust rewards", err)
	}
	return u, nil
}

func (s *Store) FixUserHealth(id string) (models.User, bool, error) {
	u, err := s.GetUser(id)
	if err != nil {
		return models.User{}, false, err
	}

	changed := false
	if u.MaxHealth <= 0 {
		u.MaxHealth = constants.DefaultMaxHealth
		changed = true
	}
	if u.Lives > u.MaxHealth {
		u.Lives = u.MaxHealth
		changed = true
	}

	if !changed {
		return u, false, nil
	}

	if _, err := s.db.Exec(`UPDATE users SET can = $1, max_health = $2 WHERE id = $3`,
		u.Lives, u.MaxHealth, u.ID); err != nil {
		return models.User{}, false, errs.Store("fix user health", fmt.Errorf("user %s: %w", id, err))
	}
	return u, true, nil
}

// clamp bounds v to [lo, hi]; hi < 0 means unbounded above.
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if hi >= 0 && v > hi {
		return hi
	}
	return v
}
