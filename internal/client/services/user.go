package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/usermanager/internal/client/client"
	"github.com/dmitrijs2005/usermanager/internal/client/models"
	"github.com/dmitrijs2005/usermanager/internal/logging"
	"golang.org/x/sync/singleflight"
)

// User form field names accepted by SetField and SetPendingField.
const (
	FieldUserName        = "userName"
	FieldUserPassword    = "userPassword"
	FieldUserPhoneNumber = "userPhoneNumber"
	FieldStatus          = "status"
	FieldFullAddress     = "fullAddress"
	FieldAddressType     = "addressType"
	FieldUserID          = "userId"
)

// UserRow is one line of the user table.
type UserRow struct {
	ID         models.ID
	Name       string
	Phone      string
	Registered string
	Status     models.UserStatus
	Addresses  int
}

// UserController drives the user view.
type UserController struct {
	api     client.UserAPI
	confirm Confirmer
	logger  logging.Logger

	mu           sync.Mutex
	users        []models.User
	form         models.UserForm
	pending      models.AddressFields
	editing      *models.User
	statusFilter models.UserStatus
	loading      bool
	msgs         messages

	// fetchSeq numbers list requests; a response older than appliedSeq is
	// dropped.
	fetchSeq   uint64
	appliedSeq uint64

	busy    atomic.Bool
	refresh singleflight.Group
}

// NewUserController returns a controller in the create state. It starts
// loading until the first Refresh completes. A nil confirm declines every
// delete.
func NewUserController(api client.UserAPI, confirm Confirmer, opts ...Option) *UserController {
	o := buildOptions(opts)
	return &UserController{
		api:     api,
		confirm: confirm,
		logger:  o.logger.With("view", "users"),
		users:   []models.User{},
		form:    models.NewUserForm(),
		pending: models.NewAddressDraft(),
		loading: true,
		msgs:    newMessages(o),
	}
}

// Mount resets the form and fetches the list, as when the view is opened.
func (c *UserController) Mount(ctx context.Context) error {
	c.mu.Lock()
	c.resetFormLocked()
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Refresh re-fetches the user list, honouring the status filter.
// Concurrent calls for the same filter share one request.
func (c *UserController) Refresh(ctx context.Context) error {
	c.mu.Lock()
	filter := c.statusFilter
	c.mu.Unlock()

	_, err, _ := c.refresh.Do(usersKey(filter), func() (any, error) {
		return nil, c.fetch(ctx, filter)
	})
	return err
}

// reload fetches the list with a new request that never joins one already
// in flight, so the result reflects the mutation that preceded it.
func (c *UserController) reload(ctx context.Context) error {
	c.mu.Lock()
	filter := c.statusFilter
	c.mu.Unlock()

	c.refresh.Forget(usersKey(filter))
	return c.fetch(ctx, filter)
}

func usersKey(filter models.UserStatus) string {
	return "users:" + string(filter)
}

func (c *UserController) fetch(ctx context.Context, filter models.UserStatus) error {
	c.mu.Lock()
	c.loading = true
	c.fetchSeq++
	seq := c.fetchSeq
	c.mu.Unlock()

	var (
		users []models.User
		err   error
	)
	if filter == "" {
		users, err = c.api.ListUsers(ctx)
	} else {
		users, err = c.api.ListUsersByStatus(ctx, filter)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq < c.appliedSeq {
		c.logger.Debug(ctx, "stale users response dropped", "seq", seq)
		return nil
	}
	c.appliedSeq = seq
	c.loading = seq < c.fetchSeq

	if err != nil {
		c.msgs.setError(MsgFetchUsersFailed + err.Error())
		c.logger.Warn(ctx, "fetch users failed", "status_filter", filter, "error", err)
		return fmt.Errorf("fetch users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}
	c.users = users
	c.msgs.clearError()
	c.logger.Debug(ctx, "users fetched", "count", len(users), "status_filter", filter)
	return nil
}

// FilterByStatus restricts the list to one status and refreshes. An empty
// status clears the filter.
func (c *UserController) FilterByStatus(ctx context.Context, status models.UserStatus) error {
	c.mu.Lock()
	c.statusFilter = status
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// StatusFilter returns the active status filter, empty when none.
func (c *UserController) StatusFilter() models.UserStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusFilter
}

// Lookup fetches a single user.
func (c *UserController) Lookup(ctx context.Context, id models.ID) (*models.User, error) {
	u, err := c.api.GetUser(ctx, id)
	if err != nil {
		c.mu.Lock()
		c.msgs.setError(MsgFetchUserFailed + err.Error())
		c.mu.Unlock()
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return u, nil
}

// Find returns the user with id from the last fetched list.
func (c *UserController) Find(id models.ID) (models.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := slices.IndexFunc(c.users, func(u models.User) bool { return u.UserID == id })
	if i < 0 {
		return models.User{}, false
	}
	return c.users[i], true
}

// BeginEdit switches the form to editing u. The password is left blank.
func (c *UserController) BeginEdit(u models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = models.EditUserForm(u)
	c.editing = &u
}

// Cancel discards the form and returns to create mode.
func (c *UserController) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetFormLocked()
}

func (c *UserController) resetFormLocked() {
	c.form = models.NewUserForm()
	c.pending = models.NewAddressDraft()
	c.editing = nil
	c.msgs.clearError()
}

// SetField sets one field of the user form.
func (c *UserController) SetField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch name {
	case FieldUserName:
		c.form.UserName = value
	case FieldUserPassword:
		c.form.UserPassword = value
	case FieldUserPhoneNumber:
		c.form.UserPhoneNumber = value
	case FieldStatus:
		st, err := models.ParseUserStatus(value)
		if err != nil {
			return err
		}
		c.form.Status = st
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// SetPendingField sets one field of the address draft being composed.
func (c *UserController) SetPendingField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch name {
	case FieldFullAddress:
		c.pending.FullAddress = value
	case FieldAddressType:
		t, err := models.ParseAddressType(value)
		if err != nil {
			return err
		}
		c.pending.AddressType = t
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// AddDraftAddress appends the pending address to the form and resets the
// draft. A blank address is ignored and false is returned.
func (c *UserController) AddDraftAddress() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if strings.TrimSpace(c.pending.FullAddress) == "" {
		return false
	}
	c.form.Addresses = append(c.form.Addresses, c.pending)
	c.pending = models.NewAddressDraft()
	return true
}

// RemoveDraftAddress drops the nested address at index. Out of range
// indexes are ignored.
func (c *UserController) RemoveDraftAddress(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.form.Addresses) {
		return
	}
	c.form.Addresses = slices.Delete(c.form.Addresses, index, index+1)
}

// Submit validates the form and creates or updates the user. On success the
// form is reset and the list re-fetched once with a fresh request.
func (c *UserController) Submit(ctx context.Context) error {
	if !c.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer c.busy.Store(false)

	c.mu.Lock()
	form := c.form.Clone()
	var editing *models.User
	if c.editing != nil {
		u := *c.editing
		editing = &u
	}
	if err := form.Validate(editing == nil); err != nil {
		c.msgs.setError(validationMessage(err))
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	var (
		err error
		msg string
		log = c.logger.With("phone", logging.MaskPhone(form.UserPhoneNumber))
	)
	if editing == nil {
		_, err = c.api.CreateUser(ctx, form.Payload())
		msg = MsgUserCreated
	} else {
		log = log.With("user_id", editing.UserID)
		_, err = c.api.UpdateUser(ctx, editing.UserID, form.Payload())
		msg = MsgUserUpdated
	}
	if err != nil {
		c.mu.Lock()
		c.msgs.setError(failureMessage(err, MsgOperationFailed))
		c.mu.Unlock()
		log.Error(ctx, "save user failed", "error", err)
		return fmt.Errorf("save user: %w", err)
	}

	c.mu.Lock()
	c.resetFormLocked()
	c.msgs.setSuccess(msg)
	c.mu.Unlock()
	log.Info(ctx, "user saved", "created", editing == nil)

	_ = c.reload(ctx)
	return nil
}

// Remove deletes a user after confirmation and re-fetches the list.
func (c *UserController) Remove(ctx context.Context, id models.ID) error {
	if !confirmed(ctx, c.confirm, ConfirmDeleteUser) {
		return ErrConfirmationDeclined
	}
	if !c.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer c.busy.Store(false)

	if err := c.api.DeleteUser(ctx, id); err != nil {
		c.mu.Lock()
		c.msgs.setError(MsgDeleteUserFailed)
		c.mu.Unlock()
		c.logger.Error(ctx, "delete user failed", "user_id", id, "error", err)
		return fmt.Errorf("delete user %s: %w", id, err)
	}

	c.mu.Lock()
	c.msgs.setSuccess(MsgUserDeleted)
	c.mu.Unlock()
	c.logger.Info(ctx, "user deleted", "user_id", id)

	_ = c.reload(ctx)
	return nil
}

// Users returns the last fetched list.
func (c *UserController) Users() []models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.users)
}

// Rows returns the table view of the last fetched list.
func (c *UserController) Rows() []UserRow {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows := make([]UserRow, 0, len(c.users))
	for _, u := range c.users {
		rows = append(rows, UserRow{
			ID:         u.UserID,
			Name:       u.UserName,
			Phone:      u.UserPhoneNumber,
			Registered: u.DateOfRegistration.DateString(),
			Status:     u.Status,
			Addresses:  len(u.Addresses),
		})
	}
	return rows
}

func (c *UserController) Form() models.UserForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form.Clone()
}

func (c *UserController) PendingAddress() models.AddressFields {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Editing returns the user being edited, if any.
func (c *UserController) Editing() (models.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return models.User{}, false
	}
	return *c.editing, true
}

func (c *UserController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *UserController) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.msgs.error()
}

// SuccessMessage returns the success banner until it expires.
func (c *UserController) SuccessMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.msgs.success()
}

func validationMessage(err error) string {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}
