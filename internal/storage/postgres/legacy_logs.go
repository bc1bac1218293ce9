package postgres

import (
	"time"

	"github.com/kervan-app/kervan/internal/constants"
	"github.com/kervan-app/kervan/internal/errs"
	"github.com/kervan-app/kervan/internal/models"
)

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

		if err := rows.Scan(&l.ID, &l.UserID, &l.HabitID, &l.Date, &l.Completed, &state, &createdAt, &l.Timestamp); err != nil {
			return nil, errs.Store("get habit logs", err)
		}
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			completed = EXCLUDED.completed,
			state = EXCLUDED.state,
			timestamp = EXCLUDED.timestamp`,
		l.ID, l.UserID, l.HabitID, l.Date, l.Completed, string(l.State), createdAt, l.Timestamp)
	if err != nil {
		return errs.Store("add habit log", err)
	}
	return nil
}
