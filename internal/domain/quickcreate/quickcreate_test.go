package quickcreate

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/salesdesk/internal/pkg/apiclient"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeCreator struct {
	mu    sync.Mutex
	resp  *apiclient.CustomerCreateResponse
	err   error
	calls int
	// hold blocks the request until released, to test the busy guard.
	hold chan struct{}
}

func (f *fakeCreator) CreateCustomer(context.Context, string, string, string) (*apiclient.CustomerCreateResponse, error) {
	f.mu.Lock()
	f.calls++
	hold := f.hold
	f.mu.Unlock()
	if hold != nil {
		<-hold
	}
	return f.resp, f.err
}

func (f *fakeCreator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type dialogRecorder struct {
	mu        sync.Mutex
	busyLog   []bool
	errors    []string
	successes []string
	options   []string
	resets    int
	closes    int
}

func (r *dialogRecorder) SetBusy(b bool) {
	r.mu.Lock()
	r.busyLog = append(r.busyLog, b)
	r.mu.Unlock()
}

func (r *dialogRecorder) ShowError(msg string) {
	r.mu.Lock()
	r.errors = append(r.errors, msg)
	r.mu.Unlock()
}

func (r *dialogRecorder) ShowSuccess(msg string) {
	r.mu.Lock()
	r.successes = append(r.successes, msg)
	r.mu.Unlock()
}

func (r *dialogRecorder) AddCustomerOption(id uint, name string) {
	r.mu.Lock()
	r.options = append(r.options, name)
	r.mu.Unlock()
}

func (r *dialogRecorder) ResetForm() {
	r.mu.Lock()
	r.resets++
	r.mu.Unlock()
}

func (r *dialogRecorder) Close() {
	r.mu.Lock()
	r.closes++
	r.mu.Unlock()
}

func TestDialog_SuccessfulCreate(t *testing.T) {
	creator := &fakeCreator{resp: &apiclient.CustomerCreateResponse{
		Success:  true,
		Customer: &apiclient.Customer{ID: 9, Name: "Rahim Traders"},
	}}
	view := &dialogRecorder{}
	d := NewDialog(creator, view, testLogger())

	d.Submit(context.Background(), "Rahim Traders", "01700000000", "Dhaka")

	if len(view.options) != 1 || view.options[0] != "Rahim Traders" {
		t.Errorf("options = %v, want the created customer", view.options)
	}
	if view.closes != 1 || view.resets != 1 {
		t.Errorf("closes=%d resets=%d, want 1/1", view.closes, view.resets)
	}
	if len(view.successes) != 1 || view.successes[0] != "Customer created successfully" {
		t.Errorf("successes = %v", view.successes)
	}
	if len(view.busyLog) != 2 || !view.busyLog[0] || view.busyLog[1] {
		t.Errorf("busy transitions = %v, want [true false]", view.busyLog)
	}
}

func TestDialog_BlankNameRejectedLocally(t *testing.T) {
	creator := &fakeCreator{}
	view := &dialogRecorder{}
	d := NewDialog(creator, view, testLogger())

	d.Submit(context.Background(), "   ", "", "")

	if creator.callCount() != 0 {
		t.Error("blank name must not reach the server")
	}
	if len(view.errors) != 1 || view.errors[0] != "Customer name is required" {
		t.Errorf("errors = %v", view.errors)
	}
	if len(view.busyLog) != 0 {
		t.Errorf("busy transitions = %v, want none", view.busyLog)
	}
}

func TestDialog_TransportFailure(t *testing.T) {
	creator := &fakeCreator{err: errors.New("connection refused")}
	view := &dialogRecorder{}
	d := NewDialog(creator, view, testLogger())

	d.Submit(context.Background(), "Karim Store", "", "")

	if len(view.errors) != 1 || view.errors[0] != "Error creating customer. Please try again." {
		t.Errorf("errors = %v", view.errors)
	}
	if view.closes != 0 {
		t.Error("dialog must stay open after a failure")
	}
	// The control is usable again.
	if len(view.busyLog) != 2 || view.busyLog[1] {
		t.Errorf("busy transitions = %v, want [true false]", view.busyLog)
	}
}

func TestDialog_ServerRejection(t *testing.T) {
	tests := []struct {
		name    string
		resp    *apiclient.CustomerCreateResponse
		wantMsg string
	}{
		{
			name:    "with message",
			resp:    &apiclient.CustomerCreateResponse{Success: false, Message: "Phone already in use"},
			wantMsg: "Error creating customer: Phone already in use",
		},
		{
			name:    "without message",
			resp:    &apiclient.CustomerCreateResponse{Success: false},
			wantMsg: "Error creating customer: Unknown error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := &dialogRecorder{}
			d := NewDialog(&fakeCreator{resp: tt.resp}, view, testLogger())

			d.Submit(context.Background(), "Karim Store", "", "")

			if len(view.errors) != 1 || view.errors[0] != tt.wantMsg {
				t.Errorf("errors = %v, want %q", view.errors, tt.wantMsg)
			}
			if len(view.options) != 0 {
				t.Error("no customer option on rejection")
			}
		})
	}
}

func TestDialog_BusyGuardBlocksDoubleSubmit(t *testing.T) {
	hold := make(chan struct{})
	creator := &fakeCreator{
		resp: &apiclient.CustomerCreateResponse{Success: true, Customer: &apiclient.Customer{ID: 1, Name: "A"}},
		hold: hold,
	}
	view := &dialogRecorder{}
	d := NewDialog(creator, view, testLogger())

	done := make(chan struct{})
	go func() {
		d.Submit(context.Background(), "A", "", "")
		close(done)
	}()
	for creator.callCount() == 0 {
		time.Sleep(time.Millisecond)
	}

	// A second submit while the first is in flight is swallowed.
	d.Submit(context.Background(), "B", "", "")
	if creator.callCount() != 1 {
		t.Errorf("calls = %d, want 1", creator.callCount())
	}

	close(hold)
	<-done
}

func TestDialog_DismissResets(t *testing.T) {
	view := &dialogRecorder{}
	d := NewDialog(&fakeCreator{}, view, testLogger())

	d.Dismiss()

	if view.resets != 1 {
		t.Errorf("resets = %d, want 1", view.resets)
	}
	if len(view.busyLog) != 1 || view.busyLog[0] {
		t.Errorf("busy transitions = %v, want [false]", view.busyLog)
	}
}
