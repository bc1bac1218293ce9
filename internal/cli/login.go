package cli

import (
	"errors"
	"fmt"

	"github.com/kervan-app/kervan/internal/errs"
	"github.com/kervan-app/kervan/internal/logger"
	"github.com/kervan-app/kervan/internal/session"
	"github.com/kervan-app/kervan/internal/validation"
)

type LoginCmd struct {
	ProfileID string `arg:"" help:"Profile id to sign in with."`
}

func (c *LoginCmd) Run(ctx *Context) error {
	if err := validation.ProfileID(c.ProfileID); err != nil {
		return err
	}

	user, err := ctx.Store.GetUser(c.ProfileID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return fmt.Errorf("profile %q not found", c.ProfileID)
		}
		return err
	}

	// One-time repair of records that predate the health cap.
	if repaired, changed, err := ctx.Store.FixUserHealth(user.ID); err == nil && changed {
		logger.Info("Repaired user health fields", "user", user.ID)
		user = repaired
	}

	if err := ctx.Session.SetActiveProfile(user.ID); err != nil {
		return err
	}

	name := user.Name
	if name == "" {
		name = user.ID
	}
	fmt.Printf("Signed in as %s (gold %d, lives %d/%d)\n", name, user.Gold, user.Lives, user.EffectiveMaxHealth())
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if _, err := ctx.Session.ActiveProfile(); errors.Is(err, session.ErrNoSession) {
		fmt.Println("No active profile")
		return nil
	}
	if err := ctx.Session.Clear(); err != nil {
		return err
	}
	fmt.Println("Signed out")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *Context) error {
	id, err := ctx.Session.ActiveProfile()
	if err != nil {
		return err
	}

	user, err := ctx.Store.GetUser(id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			// The profile disappeared server-side; report and keep the
			// session so the user can decide what to do.
			fmt.Printf("%s (profile no longer exists in the store)\n", id)
			return nil
		}
		return err
	}

	name := user.Name
	if name == "" {
		name = user.ID
	}
	fmt.Printf("%s (%s)\n", name, user.ID)
	return nil
}
