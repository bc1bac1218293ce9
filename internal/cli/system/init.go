package system

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kervan-app/kervan/internal/cli"
	"github.com/kervan-app/kervan/internal/constants"
	"github.com/kervan-app/kervan/internal/models"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing database before initialization."`
	Seed  bool `help:"Seed a demo profile, habit catalog, quests and sliders."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if strings.HasPrefix(dbPath, "postgres") {
			return fmt.Errorf("--force only supports file-backed storage; reset the PostgreSQL database directly")
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Close first to avoid deleting a file the driver still holds open.
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized kervan storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Seed {
		if err := c.seed(ctx); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		fmt.Println("Seeded demo data. Sign in with 'kervan login demo'.")
	}

	return nil
}

func (c *InitCmd) seed(ctx *cli.Context) error {
	now := time.Now().UTC()

	user := models.User{
		ID:        "demo",
		Name:      "Demo Yolcu",
		Gold:      50,
		Lives:     100,
		MaxHealth: constants.DefaultMaxHealth,
		Makam:     1,
	}
	if err := ctx.Store.SaveUser(user); err != nil {
		return fmt.Errorf("failed to save demo user: %w", err)
	}

	habits := []models.Habit{
		{
			ID:         "sabah-duasi",
			Name:       "Sabah duası",
			Icon:       "🌅",
			GoldReward: 10,
			CanReward:  1,
			Points:     5,
			Type:       constants.HabitDaily,
			IsActive:   true,
			Makam:      0,
			CreatedAt:  now,
		},
		{
			ID:         "kitap-okuma",
			Name:       "Kitap okuma",
			Icon:       "📖",
			GoldReward: 15,
			Points:     10,
			Type:       constants.HabitDaily,
			IsActive:   true,
			Makam:      0,
			CreatedAt:  now,
		},
		{
			ID:         "spor",
			Name:       "Spor",
			Icon:       "🏃",
			GoldReward: 20,
			CanReward:  2,
			Points:     10,
			Type:       constants.HabitWeekly,
			Repeat:     3,
			Weekday:    constants.WeekdayAny,
			IsActive:   true,
			Makam:      1,
			CreatedAt:  now,
		},
		{
			ID:         "aile-ziyareti",
			Name:       "Aile ziyareti",
			Icon:       "🏠",
			GoldReward: 25,
			Points:     15,
			Type:       constants.HabitWeekly,
			Weekday:    "Sunday",
			IsActive:   true,
			Makam:      1,
			CreatedAt:  now,
		},
		{
			ID:         "sadaka",
			Name:       "Sadaka",
			Icon:       "🤲",
			GoldReward: 30,
			Points:     20,
			Type:       constants.HabitWeekly,
			Repeat:     1,
			Weekday:    constants.WeekdayAny,
			IsActive:   true,
			Makam:      2,
			Approval:   constants.ApprovalManual,
			CreatedAt:  now,
		},
	}
	for _, h := range habits {
		if err := ctx.Store.SaveHabit(h); err != nil {
			return fmt.Errorf("failed to save habit %s: %w", h.ID, err)
		}
	}
	fmt.Printf("  Seeded %d habits\n", len(habits))

	quests := []models.Quest{
		{
			ID:        "kervan-yolu",
			Title:     "Kervan Yolu",
			BriefDesc: "Bir hafta boyunca her gün bir alışkanlık tamamla.",
			Reward:    100,
			IsActive:  true,
			Makam:     0,
			CreatedAt: now,
		},
		{
			ID:        "comert-el",
			Title:     "Cömert El",
			BriefDesc: "Bu ay üç kez sadaka ver.",
			Reward:    200,
			IsActive:  true,
			Makam:     2,
			CreatedAt: now,
		},
	}
	for _, q := range quests {
		if err := ctx.Store.SaveQuest(q); err != nil {
			return fmt.Errorf("failed to save quest %s: %w", q.ID, err)
		}
	}
	fmt.Printf("  Seeded %d quests\n", len(quests))

	sliders := []models.Slider{
		{
			ID:          "hosgeldin",
			Title:       "Kervana hoş geldin!",
			Description: "Görevleri tamamla, altın ve can kazan.",
			Page:        "adventure",
		},
	}
	for _, sl := range sliders {
		if err := ctx.Store.SaveSlider(sl); err != nil {
			return fmt.Errorf("failed to save slider %s: %w", sl.ID, err)
		}
	}
	fmt.Printf("  Seeded %d sliders\n", len(sliders))

	return nil
}
