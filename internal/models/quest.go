package models

import "time"

// Quest is an optional adventure task shown on the quests tab.
type Quest struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	BriefDesc   string    `json:"brief_desc,omitempty"`
	FeatImg     string    `json:"feat_img,omitempty"`
	Reward      int       `json:"reward"`
	Weekday     string    `json:"weekday,omitempty"`
	IsActive    bool      `json:"is_active"`
	Makam       int       `json:"makam"`
	CreatedAt   time.Time `json:"created_at"`
}

// Slider is a banner record shown above the quest list for a given page.
type Slider struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	FeatImg     string `json:"feat_img,omitempty"`
	Page        string `json:"page"`
}
