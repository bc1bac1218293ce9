package sqlite

import (
	"time"

	"github.com/kervan-app/kervan/internal/constants"
	"github.com/kervan-app/kervan/internal/errs"
	"github.com/kervan-app/kervan/internal/models"
)

// Legacy flat habit logs: one row per (user, habit, date). Kept only as the
// source for the one-time consolidation into date-array records.

func (s *Store) GetAllHabitLogs() ([]models.HabitLog, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, habit_id, date, completed, state, created_at, timestamp
		FROM habit_logs ORDER BY date, id`)
	if err != nil {
		return nil, errs.Store("get habit logs", err)
	}
	defer rows.Close()

	var logs []models.HabitLog
	for rows.Next() {
		var l models.HabitLog
		var state, createdAt string
		var completed int

		if err := rows.Scan(&l.ID, &l.UserID, &l.HabitID, &l.Date, &completed, &state, &createdAt, &l.Timestamp); err != nil {
			return nil, errs.Store("get habit logs", err)
		}
		l.Completed = completed != 0
		l.State = constants.ApprovalState(state)
		if createdAt != "" {
			if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
				l.CreatedAt = t
			}
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Store("get habit logs", err)
	}
	return logs, nil
}

func (s *Store) AddHabitLog(l models.HabitLog) error {
	createdAt := ""
	if !l.CreatedAt.IsZero() {
		createdAt = l.CreatedAt.Format(time.RFC3339)
	}

	_, err := s.db.Exec(`
		INSERT INTO habit_logs (id, user_id, habit_id, date, completed, state, created_at, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			completed = excluded.completed,
			state = excluded.state,
			timestamp = excluded.timestamp`,
		l.ID, l.UserID, l.HabitID, l.Date, boolToInt(l.Completed), string(l.State), createdAt, l.Timestamp)
	if err != nil {
		return errs.Store("add habit log", err)
	}
	return nil
}
