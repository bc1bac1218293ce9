package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kervan-app/kervan/internal/constants"
	"github.com/kervan-app/kervan/internal/errs"
	"github.com/kervan-app/kervan/internal/models"
)

const habitColumns = "id, habitname, description, icon, reward, can_reward, points, frequency, repeat, weekday, is_active, makam, approval, created_at"

func scanHabit(row interface{ Scan(...any) error }) (models.Habit, error) {
	var h models.Habit
	var frequency, createdAt string

	err := row.Scan(&h.ID, &h.Name, &h.Description, &h.Icon, &h.GoldReward, &h.CanReward,
		&h.Points, &frequency, &h.Repeat, &h.Weekday, &h.IsActive, &h.Makam, &h.Approval, &createdAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.Type = constants.HabitType(frequency)
	if createdAt != "" {
		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse created_at: %w", err)
		}
		h.CreatedAt = t
	}
	return h, nil
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = $1`, id)

	h, err := scanHabit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, errs.ErrNotFound
		}
		return models.Habit{}, errs.Store("get habit", err)
	}
	return h, nil
}

func (s *Store) GetActiveHabits() ([]models.Habit, error) {
	rows, err := s.db.Query(`SELECT ` + habitColumns + ` FROM habits WHERE is_active ORDER BY created_at, id`)
	if err != nil {
		return nil, errs.Store("get active habits", err)
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, errs.Store("get active habits", err)
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Store("get active habits", err)
	}
	return habits, nil
}

func (s *Store) SaveHabit(h models.Habit) error {
	createdAt := ""
	if !h.CreatedAt.IsZero() {
		createdAt = h.CreatedAt.Format(time.RFC3339)
	}

	_, err := s.db.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			habitname = EXCLUDED.habitname,
			description = EXCLUDED.description,
			icon = EXCLUDED.icon,
			reward = EXCLUDED.reward,
			can_reward = EXCLUDED.can_reward,
			points = EXCLUDED.points,
			frequency = EXCLUDED.frequency,
			repeat = EXCLUDED.repeat,
			weekday = EXCLUDED.weekday,
			is_active = EXCLUDED.is_active,
			makam = EXCLUDED.makam,
			approval = EXCLUDED.approval,
			created_at = EXCLUDED.created_at`,
		h.ID, h.Name, h.Description, h.Icon, h.GoldReward, h.CanReward, h.Points,
		string(h.Type), h.Repeat, h.Weekday, h.IsActive, h.Makam, h.Approval, createdAt)
	if err != nil {
		return errs.Store("save habit", err)
	}
	return nil
}
