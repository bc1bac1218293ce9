package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/kervan-app/kervan/internal/constants"
	"github.com/kervan-app/kervan/internal/errs"
	"github.com/kervan-app/kervan/internal/models"
)

func scanCompletionRecord(row interface{ Scan(...any) error }) (models.CompletionRecord, error) {
	var r models.CompletionRecord
	var kind, state, completedAt, datesJSON string
	var completed int

	err := row.Scan(&r.UserID, &r.ItemID, &kind, &completed, &completedAt, &datesJSON, &r.Progress, &state)
	if err != nil {
		return models.CompletionRecord{}, err
	}

	r.Kind = constants.CompletionKind(kind)
	r.State = constants.ApprovalState(state)
	r.Completed = completed != 0
	if completedAt != "" {
		t, err := time.Parse(time.RFC3339, completedAt)
		if err == nil {
			r.CompletedAt = t
		}
	}
	if err := json.Unmarshal([]byte(datesJSON), &r.Dates); err != nil {
		return models.CompletionRecord{}, err
	}
	return r, nil
}

func (s *Store) GetCompletionRecord(userID, itemID string, kind constants.CompletionKind) (models.CompletionRecord, error) {
	row := s.db.QueryRow(`
		SELECT user_id, item_id, kind, completed, completed_at, dates, progress, state
		FROM completions WHERE user_id = ? AND item_id = ? AND kind = ?`,
		userID, itemID, string(kind))

	r, err := scanCompletionRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CompletionRecord{}, errs.ErrNotFound
		}
		return models.CompletionRecord{}, errs.Store("get completion record", err)
	}
	return r, nil
}

func (s *Store) getRecords(userID string, kind constants.CompletionKind) ([]models.CompletionRecord, error) {
	rows, err := s.db.Query(`
		SELECT user_id, item_id, kind, completed, completed_at, dates, progress, state
		FROM completions WHERE user_id = ? AND kind = ?`, userID, string(kind))
	if err != nil {
		return nil, errs.Store("get completions", err)
	}
	defer rows.Close()

	var records []models.CompletionRecord
	for rows.Next() {
		r, err := scanCompletionRecord(rows)
		if err != nil {
			return nil, errs.Store("get completions", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Store("get completions", err)
	}
	return records, nil
}

func (s *Store) GetCompletionsForDate(userID, date string, kind constants.CompletionKind) ([]models.HabitCompletion, error) {
	return s.GetCompletionsForRange(userID, date, date, kind)
}

func (s *Store) GetCompletionsForRange(userID, start, end string, kind constants.CompletionKind) ([]models.HabitCompletion, error) {
	records, err := s.getRecords(userID, kind)
	if err != nil {
		return nil, err
	}

	var out []models.HabitCompletion
	for _, r := range records {
		if !r.Completed && r.State == constants.StateCancelled {
			continue
		}
		out = append(out, r.Flatten(start, end)...)
	}
	return out, nil
}

func (s *Store) IsItemCompleted(userID, itemID, date string, kind constants.CompletionKind) (bool, error) {
	r, err := s.GetCompletionRecord(userID, itemID, kind)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return r.Completed && r.HasDate(date), nil
}

// CompleteItem records a completion for the date. Adding a date that is
// already present leaves the record untouched, so retries are safe.
func (s *Store) CompleteItem(userID, itemID, date string, kind constants.CompletionKind, state constants.ApprovalState) (models.CompletionRecord, error) {
	r, err := s.GetCompletionRecord(userID, itemID, kind)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			return models.CompletionRecord{}, err
		}
		r = models.CompletionRecord{UserID: userID, ItemID: itemID, Kind: kind}
	}

	if r.HasDate(date) {
		return r, nil
	}

	r.Dates = append(r.Dates, date)
	sort.Strings(r.Dates)
	r.Progress = len(r.Dates)
	r.Completed = true
	r.CompletedAt = time.Now()
	r.State = state

	if err := s.saveRecord(r); err != nil {
		return models.CompletionRecord{}, err
	}
	return r, nil
}

// UncompleteItem removes the date from the record. Removing a date that was
// never recorded is a no-op. Draining the array marks the record
// not-completed with state cancelled.
func (s *Store) UncompleteItem(userID, itemID, date string, kind constants.CompletionKind) (models.CompletionRecord, error) {
	r, err := s.GetCompletionRecord(userID, itemID, kind)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return models.CompletionRecord{UserID: userID, ItemID: itemID, Kind: kind}, nil
		}
		return models.CompletionRecord{}, err
	}

	if !r.HasDate(date) {
		return r, nil
	}

	kept := r.Dates[:0]
	for _, d := range r.Dates {
		if d != date {
			kept = append(kept, d)
		}
	}
	r.Dates = kept
	r.Progress = len(r.Dates)
	if len(r.Dates) == 0 {
		r.Completed = false
		r.State = constants.StateCancelled
	}

	if err := s.saveRecord(r); err != nil {
		return models.CompletionRecord{}, err
	}
	return r, nil
}

func (s *Store) saveRecord(r models.CompletionRecord) error {
	dates := r.Dates
	if dates == nil {
		dates = []string{}
	}
	datesJSON, err := json.Marshal(dates)
	if err != nil {
		return errs.Store("save completion record", err)
	}

	completedAt := ""
	if !r.CompletedAt.IsZero() {
		completedAt = r.CompletedAt.Format(time.RFC3339)
	}

	_, err = s.db.Exec(`
		INSERT INTO completions (user_id, item_id, kind, completed, completed_at, dates, progress, state)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, item_id, kind) DO UPDATE SET
			completed = excluded.completed,
			completed_at = excluded.completed_at,
			dates = excluded.dates,
			progress = excluded.progress,
			state = excluded.state`,
		r.UserID, r.ItemID, string(r.Kind), boolToInt(r.Completed), completedAt,
		string(datesJSON), r.Progress, string(r.State))
	if err != nil {
		return errs.Store("save completion record", err)
	}
	return nil
}
