package sqlite

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
	var isActive int

	err := row.Scan(&h.ID, &h.Name, &h.Description, &h.Icon, &h.GoldReward, &h.CanReward,
		&h.Points, &frequency, &h.Repeat, &h.Weekday, &isActive, &h.Makam, &h.Approval, &createdAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.Type = constants.HabitType(frequency)
	h.IsActive = isActive != 0
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
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)

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
	rows, err := s.db.Query(`SELECT ` + habitColumns + ` FROM habits WHERE is_active = 1 ORDER BY created_at, id`)
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
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			habitname = excluded.habitname,
			description = excluded.description,
			icon = excluded.icon,
			reward = excluded.reward,
			can_reward = excluded.can_reward,
			points = excluded.points,
			frequency = excluded.frequency,
			repeat = excluded.repeat,
			weekday = excluded.weekday,
			is_active = excluded.is_active,
			makam = excluded.makam,
			approval = excluded.approval,
			created_at = excluded.created_at`,
		h.ID, h.Name, h.Description, h.Icon, h.GoldReward, h.CanReward, h.Points,
		string(h.Type), h.Repeat, h.Weekday, boolToInt(h.IsActive), h.Makam, h.Approval, createdAt)
	if err != nil {
		return errs.Store("save habit", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
