// internal/domain/quickcreate/quickcreate.go
package quickcreate

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/salesdesk/internal/pkg/apiclient"
)

// Creator is the remote customer-creation boundary.
type Creator interface {
	CreateCustomer(ctx context.Context, name, phone, address string) (*apiclient.CustomerCreateResponse, error)
}

// DialogView is the rendering boundary of the quick-create dialog.
type DialogView interface {
	// SetBusy disables the submit control and swaps its label while a
	// request is in flight.
	SetBusy(busy bool)
	ShowError(message string)
	ShowSuccess(message string)
	// AddCustomerOption injects the created customer into the order's
	// customer selector, pre-selected.
	AddCustomerOption(id uint, name string)
	ResetForm()
	Close()
}

// Dialog drives the create-customer-without-leaving-the-page flow.
type Dialog struct {
	mu     sync.Mutex
	log    *logrus.Logger
	client Creator
	view   DialogView
	busy   bool
}

// NewDialog creates a quick-create dialog controller.
func NewDialog(client Creator, view DialogView, log *logrus.Logger) *Dialog {
	return &Dialog{log: log, client: client, view: view}
}

// Submit validates locally (only that the name is non-blank — the server
// stays authoritative), then creates the customer. On success the new
// customer lands in the order's selector and the dialog resets and
// closes; on failure the control is re-enabled with the server's message
// or a generic fallback.
func (d *Dialog) Submit(ctx context.Context, name, phone, address string) {
	if strings.TrimSpace(name) == "" {
		d.view.ShowError("Customer name is required")
		return
	}

	d.mu.Lock()
	if d.busy {
		d.mu.Unlock()
		return
	}
	d.busy = true
	d.mu.Unlock()
	d.view.SetBusy(true)

	resp, err := d.client.CreateCustomer(ctx, name, phone, address)

	d.mu.Lock()
	d.busy = false
	d.mu.Unlock()
	d.view.SetBusy(false)

	if err != nil {
		d.log.WithError(err).Error("Error creating customer")
		d.view.ShowError("Error creating customer. Please try again.")
		return
	}
	if !resp.Success || resp.Customer == nil {
		message := resp.Message
		if message == "" {
			message = "Unknown error"
		}
		d.view.ShowError("Error creating customer: " + message)
		return
	}

	d.view.AddCustomerOption(resp.Customer.ID, resp.Customer.Name)
	d.view.Close()
	d.view.ResetForm()
	d.view.ShowSuccess("Customer created successfully")
}

// Dismiss resets the form and the control state unconditionally, so a
// half-filled or disabled form never leaks into the next open.
func (d *Dialog) Dismiss() {
	d.mu.Lock()
	d.busy = false
	d.mu.Unlock()

	d.view.ResetForm()
	d.view.SetBusy(false)
}
