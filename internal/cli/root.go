package cli

import (
	"github.com/kervan-app/kervan/internal/session"
	"github.com/kervan-app/kervan/internal/storage"
)

// EnvConnectionString overrides the keyring as the source of the PostgreSQL
// connection string.
const EnvConnectionString = "KERVAN_DB_CONNECTION"

// Context is handed to every command's Run.
type Context struct {
	Store     storage.Provider
	Session   *session.Session
	ConfigDir string
	Debug     bool
}

// ActiveUser resolves the signed-in profile to its user record.
func (c *Context) ActiveUser() (string, error) {
	return c.Session.ActiveProfile()
}
