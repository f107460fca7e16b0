package services

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/usermanager/internal/client/client"
	"github.com/dmitrijs2005/usermanager/internal/client/models"
	"github.com/dmitrijs2005/usermanager/internal/logging"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// UnknownOwner labels an address whose user is not among the options.
const UnknownOwner = "Unknown"

// UserLister is the slice of the user API the address view needs to fill
// its owner selector.
type UserLister interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

// UserOption is one entry of the owner selector.
type UserOption struct {
	Value models.ID
	Label string
}

// AddressRow is one line of the address table.
type AddressRow struct {
	ID      models.ID
	User    string
	Address string
	Type    models.AddressType
}

// AddressController drives the address view.
type AddressController struct {
	api     client.AddressAPI
	users   UserLister
	confirm Confirmer
	logger  logging.Logger

	mu         sync.Mutex
	addresses  []models.Address
	owners     []models.User
	form       models.AddressForm
	editing    *models.Address
	userFilter models.ID
	loading    bool
	msgs       messages

	fetchSeq   uint64
	appliedSeq uint64

	busy    atomic.Bool
	refresh singleflight.Group
}

// NewAddressController returns a controller in the create state. users
// feeds the owner selector. A nil confirm declines every delete.
func NewAddressController(api client.AddressAPI, users UserLister, confirm Confirmer, opts ...Option) *AddressController {
	o := buildOptions(opts)
	return &AddressController{
		api:       api,
		users:     users,
		confirm:   confirm,
		logger:    o.logger.With("view", "addresses"),
		addresses: []models.Address{},
		owners:    []models.User{},
		form:      models.NewAddressForm(),
		loading:   true,
		msgs:      newMessages(o),
	}
}

// Mount resets the form, then loads addresses and selector users in
// parallel. A failed user load is logged and leaves the selector empty;
// only the address fetch error is returned.
func (c *AddressController) Mount(ctx context.Context) error {
	c.mu.Lock()
	c.resetFormLocked()
	c.mu.Unlock()

	var g errgroup.Group
	g.Go(func() error { return c.Refresh(ctx) })
	g.Go(func() error {
		c.loadOwners(ctx)
		return nil
	})
	return g.Wait()
}

func (c *AddressController) loadOwners(ctx context.Context) {
	var owners []models.User
	if c.users != nil {
		var err error
		owners, err = c.users.ListUsers(ctx)
		if err != nil {
			c.logger.Warn(ctx, "fetch users for selector failed", "error", err)
			owners = nil
		}
	}
	if owners == nil {
		owners = []models.User{}
	}

	c.mu.Lock()
	c.owners = owners
	c.mu.Unlock()
}

// Refresh re-fetches the address list, honouring the user filter.
// Concurrent calls for the same filter share one request.
func (c *AddressController) Refresh(ctx context.Context) error {
	c.mu.Lock()
	filter := c.userFilter
	c.mu.Unlock()

	_, err, _ := c.refresh.Do(addressesKey(filter), func() (any, error) {
		return nil, c.fetch(ctx, filter)
	})
	return err
}

// reload fetches the list after a mutation without joining a request
// already in flight.
func (c *AddressController) reload(ctx context.Context) error {
	c.mu.Lock()
	filter := c.userFilter
	c.mu.Unlock()

	c.refresh.Forget(addressesKey(filter))
	return c.fetch(ctx, filter)
}

func addressesKey(filter models.ID) string {
	return "addresses:" + filter.String()
}

func (c *AddressController) fetch(ctx context.Context, filter models.ID) error {
	c.mu.Lock()
	c.loading = true
	c.fetchSeq++
	seq := c.fetchSeq
	c.mu.Unlock()

	var (
		addresses []models.Address
		err       error
	)
	if filter.IsZero() {
		addresses, err = c.api.ListAddresses(ctx)
	} else {
		addresses, err = c.api.ListAddressesByUser(ctx, filter)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq < c.appliedSeq {
		c.logger.Debug(ctx, "stale addresses response dropped", "seq", seq)
		return nil
	}
	c.appliedSeq = seq
	c.loading = seq < c.fetchSeq

	if err != nil {
		c.msgs.setError(MsgFetchAddressesFailed + err.Error())
		c.logger.Warn(ctx, "fetch addresses failed", "user_filter", filter, "error", err)
		return fmt.Errorf("fetch addresses: %w", err)
	}
	if addresses == nil {
		addresses = []models.Address{}
	}
	c.addresses = addresses
	c.msgs.clearError()
	c.logger.Debug(ctx, "addresses fetched", "count", len(addresses), "user_filter", filter)
	return nil
}

// FilterByUser restricts the list to one owner and refreshes. A zero id
// clears the filter.
func (c *AddressController) FilterByUser(ctx context.Context, userID models.ID) error {
	c.mu.Lock()
	c.userFilter = userID
	c.mu.Unlock()
	return c.Refresh(ctx)
}

func (c *AddressController) UserFilter() models.ID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userFilter
}

// Lookup fetches a single address.
func (c *AddressController) Lookup(ctx context.Context, id models.ID) (*models.Address, error) {
	a, err := c.api.GetAddress(ctx, id)
	if err != nil {
		c.mu.Lock()
		c.msgs.setError(MsgFetchAddressFailed + err.Error())
		c.mu.Unlock()
		return nil, fmt.Errorf("get address %s: %w", id, err)
	}
	return a, nil
}

// Find returns the address with id from the last fetched list.
func (c *AddressController) Find(id models.ID) (models.Address, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := slices.IndexFunc(c.addresses, func(a models.Address) bool { return a.AddressID == id })
	if i < 0 {
		return models.Address{}, false
	}
	return c.addresses[i], true
}

// BeginEdit switches the form to editing a.
func (c *AddressController) BeginEdit(a models.Address) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = models.EditAddressForm(a)
	c.editing = &a
}

// Cancel discards the form and returns to create mode.
func (c *AddressController) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetFormLocked()
}

func (c *AddressController) resetFormLocked() {
	c.form = models.NewAddressForm()
	c.editing = nil
	c.msgs.clearError()
}

// SetField sets one field of the address form. The owner cannot be
// changed while editing.
func (c *AddressController) SetField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch name {
	case FieldUserID:
		if c.editing != nil {
			return fmt.Errorf("%w: %q", ErrImmutableField, name)
		}
		id, err := models.ParseID(value)
		if err != nil {
			return err
		}
		c.form.UserID = id
	case FieldFullAddress:
		c.form.FullAddress = value
	case FieldAddressType:
		t, err := models.ParseAddressType(value)
		if err != nil {
			return err
		}
		c.form.AddressType = t
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// Submit validates the form and creates or updates the address. Updates
// never send the owner.
func (c *AddressController) Submit(ctx context.Context) error {
	if !c.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer c.busy.Store(false)

	c.mu.Lock()
	form := c.form
	var editing *models.Address
	if c.editing != nil {
		a := *c.editing
		editing = &a
	}
	if err := form.Validate(); err != nil {
		c.msgs.setError(validationMessage(err))
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	var (
		err error
		msg string
		log = c.logger.With("user_id", form.UserID)
	)
	if editing == nil {
		_, err = c.api.CreateAddress(ctx, form.CreatePayload())
		msg = MsgAddressCreated
	} else {
		log = log.With("address_id", editing.AddressID)
		_, err = c.api.UpdateAddress(ctx, editing.AddressID, form.UpdatePayload())
		msg = MsgAddressUpdated
	}
	if err != nil {
		c.mu.Lock()
		c.msgs.setError(failureMessage(err, MsgOperationFailed))
		c.mu.Unlock()
		log.Error(ctx, "save address failed", "error", err)
		return fmt.Errorf("save address: %w", err)
	}

	c.mu.Lock()
	c.resetFormLocked()
	c.msgs.setSuccess(msg)
	c.mu.Unlock()
	log.Info(ctx, "address saved", "created", editing == nil)

	_ = c.reload(ctx)
	return nil
}

// Remove deletes an address after confirmation and re-fetches the list.
func (c *AddressController) Remove(ctx context.Context, id models.ID) error {
	if !confirmed(ctx, c.confirm, ConfirmDeleteAddress) {
		return ErrConfirmationDeclined
	}
	if !c.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer c.busy.Store(false)

	if err := c.api.DeleteAddress(ctx, id); err != nil {
		c.mu.Lock()
		c.msgs.setError(MsgDeleteAddressFailed)
		c.mu.Unlock()
		c.logger.Error(ctx, "delete address failed", "address_id", id, "error", err)
		return fmt.Errorf("delete address %s: %w", id, err)
	}

	c.mu.Lock()
	c.msgs.setSuccess(MsgAddressDeleted)
	c.mu.Unlock()
	c.logger.Info(ctx, "address deleted", "address_id", id)

	_ = c.reload(ctx)
	return nil
}

func (c *AddressController) Addresses() []models.Address {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.addresses)
}

// UserOptions returns the owner selector entries labelled
// "<userName> (<phone>)".
func (c *AddressController) UserOptions() []UserOption {
	c.mu.Lock()
	defer c.mu.Unlock()

	opts := make([]UserOption, 0, len(c.owners))
	for _, u := range c.owners {
		opts = append(opts, UserOption{
			Value: u.UserID,
			Label: fmt.Sprintf("%s (%s)", u.UserName, u.UserPhoneNumber),
		})
	}
	return opts
}

// Rows returns the table view of the last fetched list.
func (c *AddressController) Rows() []AddressRow {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make(map[models.ID]string, len(c.owners))
	for _, u := range c.owners {
		names[u.UserID] = u.UserName
	}

	rows := make([]AddressRow, 0, len(c.addresses))
	for _, a := range c.addresses {
		name, ok := names[a.UserID]
		if !ok {
			name = UnknownOwner
		}
		rows = append(rows, AddressRow{
			ID:      a.AddressID,
			User:    name,
			Address: a.FullAddress,
			Type:    a.AddressType,
		})
	}
	return rows
}

func (c *AddressController) Form() models.AddressForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Editing returns the address being edited, if any.
func (c *AddressController) Editing() (models.Address, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return models.Address{}, false
	}
	return *c.editing, true
}

func (c *AddressController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *AddressController) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.msgs.error()
}

// SuccessMessage returns the success banner until it expires.
func (c *AddressController) SuccessMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.msgs.success()
}
