package cli

import (
	"errors"
	"fmt"

	"github.com/kervan-app/kervan/internal/constants"
	"github.com/kervan-app/kervan/internal/errs"
	"github.com/kervan-app/kervan/internal/models"
)

type QuestCmd struct {
	List QuestListCmd `cmd:"" default:"1" help:"List quests available at your makam level."`
}

type QuestListCmd struct {
	All bool `help:"Include quests locked behind higher makam levels."`
}

func (c *QuestListCmd) Run(ctx *Context) error {
	id, err := ctx.Session.ActiveProfile()
	if err != nil {
		return err
	}
	user, err := ctx.Store.GetUser(id)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			return err
		}
		user = models.GuestUser(id)
	}

	quests, err := ctx.Store.GetActiveQuests()
	if err != nil {
		return err
	}

	accepted, err := ctx.Store.GetCompletionsForRange(id, "", "9999-12-31", constants.KindQuest)
	if err != nil {
		return err
	}
	acceptedIDs := make(map[string]bool, len(accepted))
	for _, comp := range accepted {
		acceptedIDs[comp.HabitID] = true
	}

	shown := 0
	for _, q := range quests {
		if !c.All && q.Makam > user.Makam {
			continue
		}
		shown++

		mark := " "
		if acceptedIDs[q.ID] {
			mark = "★"
		}
		line := fmt.Sprintf("%s %-30s %4d altın", mark, q.Title, q.Reward)
		if q.Makam > user.Makam {
			line += fmt.Sprintf("  (makam %d gerekli)", q.Makam)
		}
		fmt.Println(line)
		if q.BriefDesc != "" {
			fmt.Printf("    %s\n", q.BriefDesc)
		}
	}

	if shown == 0 {
		fmt.Println("No quests available")
	}
	return nil
}
