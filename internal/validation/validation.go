package validation

import (
	"strings"
	"time"

	"github.com/kervan-app/kervan/internal/constants"
	"github.com/kervan-app/kervan/internal/errs"
)

// ProfileID checks a profile id before it ever reaches the store. Blank ids
// fail locally.
func ProfileID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.Validation("profile id", "cannot be empty")
	}
	return nil
}

// Date checks a YYYY-MM-DD date string.
func Date(date string) error {
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return errs.Validation("date", "must be in YYYY-MM-DD format")
	}
	return nil
}

// MakamLevel checks a progression level against the rank ladder.
func MakamLevel(level int) error {
	if !constants.IsValidMakamLevel(level) {
		return errs.Validation("makam", "must be between 0 and 4")
	}
	return nil
}
