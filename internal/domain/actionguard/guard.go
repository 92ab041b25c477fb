// internal/domain/actionguard/guard.go
package actionguard

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Deleter issues the destructive request. Any non-success response comes
// back as an error.
type Deleter interface {
	Delete(ctx context.Context, url string) error
}

// Confirmer shows a blocking confirmation prompt and reports the choice.
type Confirmer interface {
	Confirm(title, text string) bool
}

// Notifier acknowledges the outcome to the user.
type Notifier interface {
	Success(title string)
	Error(title string)
}

// Navigator reloads the page after a confirmed, successful delete.
type Navigator interface {
	Reload()
}

// Guard gates irreversible deletes behind an explicit confirmation. No UI
// change happens before the server confirms.
type Guard struct {
	log     *logrus.Logger
	client  Deleter
	confirm Confirmer
	notify  Notifier
	nav     Navigator
}

// NewGuard creates a destructive-action guard.
func NewGuard(client Deleter, confirm Confirmer, notify Notifier, nav Navigator, log *logrus.Logger) *Guard {
	return &Guard{
		log:     log,
		client:  client,
		confirm: confirm,
		notify:  notify,
		nav:     nav,
	}
}

// Activate handles a click on a delete control carrying a target URL.
// Declining the prompt does nothing. A successful delete acknowledges and
// reloads; a failure surfaces an error prompt and stays on the page.
func (g *Guard) Activate(ctx context.Context, url string) {
	if !g.confirm.Confirm("Are you sure?", "You won't be able to revert this!") {
		return
	}

	if err := g.client.Delete(ctx, url); err != nil {
		g.log.WithError(err).WithField("url", url).Error("Delete request failed")
		g.notify.Error("Error!")
		return
	}

	g.notify.Success("Deleted!")
	g.nav.Reload()
}
