package services

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/usermanager/internal/client/models"
)

// ---- fake user API ----

// fakeUserAPI implements client.UserAPI and records every call.
type fakeUserAPI struct {
	mu    sync.Mutex
	calls []string

	Users     []models.User
	ListErr   error
	GetRet    *models.User
	GetErr    error
	CreateErr error
	UpdateErr error
	DeleteErr error

	// block, when set, is waited on inside the named method after it has
	// been recorded and started has been signalled.
	block   map[string]chan struct{}
	started chan string

	LastCreate   models.UserPayload
	LastUpdateID models.ID
	LastUpdate   models.UserPayload
	LastDeleteID models.ID
	LastStatus   models.UserStatus
}

func (f *fakeUserAPI) record(ctx context.Context, name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	ch := f.block[name]
	started := f.started
	f.mu.Unlock()

	if started != nil {
		started <- name
	}
	if ch != nil {
		select {
		case <-ch:
		case <-ctx.Done():
		}
	}
}

// release stops holding calls to name; calls already waiting keep waiting on
// their own channel.
func (f *fakeUserAPI) release(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.block, name)
}

func (f *fakeUserAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeUserAPI) Count(name string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == name {
			n++
		}
	}
	return n
}

// ListUsers answers with the server state at the time the request arrives,
// even when the response is held back by block.
func (f *fakeUserAPI) ListUsers(ctx context.Context) ([]models.User, error) {
	f.mu.Lock()
	users, err := append([]models.User(nil), f.Users...), f.ListErr
	f.mu.Unlock()

	f.record(ctx, "ListUsers")
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (f *fakeUserAPI) ListUsersByStatus(ctx context.Context, status models.UserStatus) ([]models.User, error) {
	f.record(ctx, "ListUsersByStatus")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastStatus = status
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	var out []models.User
	for _, u := range f.Users {
		if u.Status == status {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserAPI) GetUser(ctx context.Context, id models.ID) (*models.User, error) {
	f.record(ctx, "GetUser")
	return f.GetRet, f.GetErr
}

func (f *fakeUserAPI) CreateUser(ctx context.Context, data models.UserPayload) (*models.User, error) {
	f.record(ctx, "CreateUser")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastCreate = data
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	u := models.User{UserID: models.ID(len(f.Users) + 1), UserName: data.UserName, UserPhoneNumber: data.UserPhoneNumber, Status: data.Status}
	f.Users = append(f.Users, u)
	return &u, nil
}

func (f *fakeUserAPI) UpdateUser(ctx context.Context, id models.ID, data models.UserPayload) (*models.User, error) {
	f.record(ctx, "UpdateUser")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastUpdateID = id
	f.LastUpdate = data
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	return &models.User{UserID: id, UserName: data.UserName}, nil
}

func (f *fakeUserAPI) DeleteUser(ctx context.Context, id models.ID) error {
	f.record(ctx, "DeleteUser")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastDeleteID = id
	return f.DeleteErr
}

// ---- fake address API ----

// fakeAddressAPI implements client.AddressAPI and records every call.
type fakeAddressAPI struct {
	mu    sync.Mutex
	calls []string

	Addresses []models.Address
	ListErr   error
	GetRet    *models.Address
	GetErr    error
	CreateErr error
	UpdateErr error
	DeleteErr error

	LastCreate   models.NewAddress
	LastUpdateID models.ID
	LastUpdate   models.AddressFields
	LastDeleteID models.ID
	LastUserID   models.ID

	block   map[string]chan struct{}
	started chan string
}

func (f *fakeAddressAPI) record(ctx context.Context, name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	ch := f.block[name]
	started := f.started
	f.mu.Unlock()

	if started != nil {
		started <- name
	}
	if ch != nil {
		select {
		case <-ch:
		case <-ctx.Done():
		}
	}
}

func (f *fakeAddressAPI) release(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.block, name)
}

func (f *fakeAddressAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAddressAPI) ListAddresses(ctx context.Context) ([]models.Address, error) {
	f.mu.Lock()
	addresses, err := append([]models.Address(nil), f.Addresses...), f.ListErr
	f.mu.Unlock()

	f.record(ctx, "ListAddresses")
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

func (f *fakeAddressAPI) ListAddressesByUser(ctx context.Context, userID models.ID) ([]models.Address, error) {
	f.record(ctx, "ListAddressesByUser")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastUserID = userID
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	var out []models.Address
	for _, a := range f.Addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAddressAPI) GetAddress(ctx context.Context, id models.ID) (*models.Address, error) {
	f.record(ctx, "GetAddress")
	return f.GetRet, f.GetErr
}

func (f *fakeAddressAPI) CreateAddress(ctx context.Context, data models.NewAddress) (*models.Address, error) {
	f.record(ctx, "CreateAddress")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastCreate = data
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	return &models.Address{AddressID: 1, UserID: data.UserID}, nil
}

func (f *fakeAddressAPI) UpdateAddress(ctx context.Context, id models.ID, data models.AddressFields) (*models.Address, error) {
	f.record(ctx, "UpdateAddress")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastUpdateID = id
	f.LastUpdate = data
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	return &models.Address{AddressID: id}, nil
}

func (f *fakeAddressAPI) DeleteAddress(ctx context.Context, id models.ID) error {
	f.record(ctx, "DeleteAddress")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastDeleteID = id
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.Addresses = slices.DeleteFunc(f.Addresses, func(a models.Address) bool { return a.AddressID == id })
	return nil
}

// ---- confirm / clock ----

type fakeConfirm struct {
	answer  bool
	prompts []string
}

func (c *fakeConfirm) Confirm(_ context.Context, prompt string) bool {
	c.prompts = append(c.prompts, prompt)
	return c.answer
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
