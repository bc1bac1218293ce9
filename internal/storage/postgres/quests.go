package postgres

import (
	"database/sql"
	"errors"
	"time"

	"github.com/kervan-app/kervan/internal/errs"
	"github.com/kervan-app/kervan/internal/models"
)

const questColumns = "id, title, description, brief_desc, feat_img, reward, weekday, is_active, makam, created_at"

func scanQuest(row interface{ Scan(...any) error }) (models.Quest, error) {
	var q models.Quest
	var createdAt string

	err := row.Scan(&q.ID, &q.Title, &q.Description, &q.BriefDesc, &q.FeatImg,
		&q.Reward, &q.Weekday, &q.IsActive, &q.Makam, &createdAt)
	if err != nil {
		return models.Quest{}, err
	}

	if createdAt != "" {
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			q.CreatedAt = t
		}
	}
	return q, nil
}

func (s *Store) GetQuest(id string) (models.Quest, error) {
	row := s.db.QueryRow(`SELECT `+questColumns+` FROM quests WHERE id = $1`, id)

	q, err := scanQuest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Quest{}, errs.ErrNotFound
		}
		return models.Quest{}, errs.Store("get quest", err)
	}
	return q, nil
}

func (s *Store) GetActiveQuests() ([]models.Quest, error) {
	rows, err := s.db.Query(`SELECT ` + questColumns + ` FROM quests WHERE is_active ORDER BY created_at, id`)
	if err != nil {
		return nil, errs.Store("get active quests", err)
	}
	defer rows.Close()

	var quests []models.Quest
	for rows.Next() {
		q, err := scanQuest(rows)
		if err != nil {
			return nil, errs.Store("get active quests", err)
		}
		quests = append(quests, q)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Store("get active quests", err)
	}
	return quests, nil
}

func (s *Store) SaveQuest(q models.Quest) error {
	createdAt := ""
	if !q.CreatedAt.IsZero() {
		createdAt = q.CreatedAt.Format(time.RFC3339)
	}

	_, err := s.db.Exec(`
		INSERT INTO quests (`+questColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			brief_desc = EXCLUDED.brief_desc,
			feat_img = EXCLUDED.feat_img,
			reward = EXCLUDED.reward,
			weekday = EXCLUDED.weekday,
			is_active = EXCLUDED.is_active,
			makam = EXCLUDED.makam,
			created_at = EXCLUDED.created_at`,
		q.ID, q.Title, q.Description, q.BriefDesc, q.FeatImg, q.Reward,
		q.Weekday, q.IsActive, q.Makam, createdAt)
	if err != nil {
		return errs.Store("save quest", err)
	}
	return nil
}

func (s *Store) GetSliders(page string) ([]models.Slider, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, feat_img, page
		FROM sliders WHERE page = $1 ORDER BY id`, page)
	if err != nil {
		return nil, errs.Store("get sliders", err)
	}
	defer rows.Close()

	var sliders []models.Slider
	for rows.Next() {
		var sl models.Slider
		if err := rows.Scan(&sl.ID, &sl.Title, &sl.Description, &sl.FeatImg, &sl.Page); err != nil {
			return nil, errs.Store("get sliders", err)
		}
		sliders = append(sliders, sl)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Store("get sliders", err)
	}
	return sliders, nil
}

func (s *Store) SaveSlider(sl models.Slider) error {
	_, err := s.db.Exec(`
		INSERT INTO sliders (id, title, description, feat_img, page)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			feat_img = EXCLUDED.feat_img,
			page = EXCLUDED.page`,
		sl.ID, sl.Title, sl.Description, sl.FeatImg, sl.Page)
	if err != nil {
		return errs.Store("save slider", err)
	}
	return nil
}
