package services

import (
	"time"

	"github.com/dmitrijs2005/usermanager/internal/client/client"
	"github.com/dmitrijs2005/usermanager/internal/logging"
)

// DefaultMessageTTL is how long a success message stays visible.
const DefaultMessageTTL = 3 * time.Second

// User-facing messages.
const (
	MsgFetchUsersFailed = "Failed to fetch users: "
	MsgFetchUserFailed  = "Failed to fetch user: "
	MsgUserCreated      = "User created successfully!"
	MsgUserUpdated      = "User updated successfully!"
	MsgUserDeleted      = "User deleted successfully!"
	MsgDeleteUserFailed = "Failed to delete user"

	MsgFetchAddressesFailed = "Failed to fetch addresses: "
	MsgFetchAddressFailed   = "Failed to fetch address: "
	MsgAddressCreated       = "Address created successfully!"
	MsgAddressUpdated       = "Address updated successfully!"
	MsgAddressDeleted       = "Address deleted successfully!"
	MsgDeleteAddressFailed  = "Failed to delete address"

	MsgOperationFailed = "Operation failed"

	ConfirmDeleteUser    = "Are you sure you want to delete this user?"
	ConfirmDeleteAddress = "Are you sure you want to delete this address?"
)

type options struct {
	logger logging.Logger
	ttl    time.Duration
	now    func() time.Time
}

// Option customises a controller.
type Option func(*options)

// WithLogger sets the controller logger.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMessageTTL sets how long success messages stay visible. Zero or a
// negative value keeps them until the next one.
func WithMessageTTL(d time.Duration) Option {
	return func(o *options) { o.ttl = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{
		logger: logging.Discard(),
		ttl:    DefaultMessageTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// messages holds the error and success banners of a view. The error stays
// until cleared; the success message expires ttl after it was set.
// Callers hold the controller mutex.
type messages struct {
	ttl time.Duration
	now func() time.Time

	errorMsg   string
	successMsg string
	successAt  time.Time
}

func newMessages(o options) messages {
	return messages{ttl: o.ttl, now: o.now}
}

func (m *messages) setError(msg string) { m.errorMsg = msg }

func (m *messages) clearError() { m.errorMsg = "" }

func (m *messages) setSuccess(msg string) {
	m.successMsg = msg
	m.successAt = m.now()
}

func (m *messages) error() string { return m.errorMsg }

func (m *messages) success() string {
	if m.successMsg == "" {
		return ""
	}
	if m.ttl > 0 && !m.now().Before(m.successAt.Add(m.ttl)) {
		m.successMsg = ""
	}
	return m.successMsg
}

// failureMessage prefers the backend's own message over fallback.
func failureMessage(err error, fallback string) string {
	if msg, ok := client.ServerMessage(err); ok {
		return msg
	}
	return fallback
}
