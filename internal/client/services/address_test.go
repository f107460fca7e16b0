package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/usermanager/internal/client/client"
	"github.com/dmitrijs2005/usermanager/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressController_Mount(t *testing.T) {
	ctx := context.Background()
	users := &fakeUserAPI{Users: []models.User{
		{UserID: 1, UserName: "alice", UserPhoneNumber: "1234567890"},
		{UserID: 2, UserName: "bob", UserPhoneNumber: "0987654321"},
	}}
	api := &fakeAddressAPI{Addresses: []models.Address{
		{AddressID: 5, UserID: 1, FullAddress: "1 Main St", AddressType: models.AddressHome},
		{AddressID: 6, UserID: 42, FullAddress: "Nowhere", AddressType: models.AddressOther},
	}}
	c := NewAddressController(api, users, nil)
	require.NoError(t, c.SetField(FieldFullAddress, "half typed"))

	require.NoError(t, c.Mount(ctx))

	assert.Equal(t, models.NewAddressForm(), c.Form())
	assert.False(t, c.Loading())
	assert.Equal(t, []UserOption{
		{Value: 1, Label: "alice (1234567890)"},
		{Value: 2, Label: "bob (0987654321)"},
	}, c.UserOptions())
	assert.Equal(t, []AddressRow{
		{ID: 5, User: "alice", Address: "1 Main St", Type: models.AddressHome},
		{ID: 6, User: UnknownOwner, Address: "Nowhere", Type: models.AddressOther},
	}, c.Rows())
}

func TestAddressController_Mount_DegradedSelector(t *testing.T) {
	users := &fakeUserAPI{ListErr: errors.New("users down")}
	api := &fakeAddressAPI{Addresses: []models.Address{{AddressID: 5, UserID: 1, FullAddress: "x"}}}
	c := NewAddressController(api, users, nil)

	require.NoError(t, c.Mount(context.Background()))

	assert.Empty(t, c.UserOptions())
	assert.Empty(t, c.ErrorMessage(), "selector failure is only logged")
	require.Len(t, c.Rows(), 1)
	assert.Equal(t, UnknownOwner, c.Rows()[0].User)
}

func TestAddressController_Refresh_Failure(t *testing.T) {
	api := &fakeAddressAPI{ListErr: &client.RequestFailure{StatusCode: 500}}
	c := NewAddressController(api, &fakeUserAPI{}, nil)

	require.Error(t, c.Mount(context.Background()))
	assert.Equal(t, "Failed to fetch addresses: request failed with status code 500", c.ErrorMessage())
	assert.False(t, c.Loading())
}

func TestAddressController_Submit_RequiredFields(t *testing.T) {
	tests := []struct {
		name, userID, address string
	}{
		{"no user", "", "1 Main St"},
		{"no address", "3", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAddressAPI{}
			c := NewAddressController(api, nil, nil)
			require.NoError(t, c.SetField(FieldUserID, tt.userID))
			require.NoError(t, c.SetField(FieldFullAddress, tt.address))

			var ve *models.ValidationError
			require.ErrorAs(t, c.Submit(context.Background()), &ve)
			assert.Equal(t, models.MsgRequiredFields, c.ErrorMessage())
			assert.Empty(t, api.Calls())
		})
	}
}

func TestAddressController_Submit_Create(t *testing.T) {
	clock := newFakeClock()
	api := &fakeAddressAPI{}
	c := NewAddressController(api, nil, nil, WithClock(clock.Now), WithMessageTTL(time.Second))
	require.NoError(t, c.SetField(FieldUserID, "3"))
	require.NoError(t, c.SetField(FieldFullAddress, "1 Main St"))
	require.NoError(t, c.SetField(FieldAddressType, "other"))

	require.NoError(t, c.Submit(context.Background()))

	assert.Equal(t, []string{"CreateAddress", "ListAddresses"}, api.Calls())
	assert.Equal(t, models.NewAddress{
		UserID:        3,
		AddressFields: models.AddressFields{FullAddress: "1 Main St", AddressType: models.AddressOther},
	}, api.LastCreate)
	assert.Equal(t, models.NewAddressForm(), c.Form())
	assert.Equal(t, MsgAddressCreated, c.SuccessMessage())

	clock.Advance(time.Second)
	assert.Empty(t, c.SuccessMessage())
}

func TestAddressController_Submit_Update(t *testing.T) {
	api := &fakeAddressAPI{}
	c := NewAddressController(api, nil, nil)
	c.BeginEdit(models.Address{AddressID: 5, UserID: 3, FullAddress: "1 Main St", AddressType: models.AddressHome})

	require.ErrorIs(t, c.SetField(FieldUserID, "4"), ErrImmutableField)
	require.NoError(t, c.SetField(FieldAddressType, "OFFICE"))
	require.NoError(t, c.Submit(context.Background()))

	assert.Equal(t, []string{"UpdateAddress", "ListAddresses"}, api.Calls())
	assert.Equal(t, models.ID(5), api.LastUpdateID)
	assert.Equal(t, models.AddressFields{FullAddress: "1 Main St", AddressType: models.AddressOffice}, api.LastUpdate)
	assert.Equal(t, MsgAddressUpdated, c.SuccessMessage())
	_, editing := c.Editing()
	assert.False(t, editing)
}

func TestAddressController_Submit_Failure(t *testing.T) {
	api := &fakeAddressAPI{CreateErr: &client.RequestFailure{StatusCode: 404, Message: "User not found with id: 3"}}
	c := NewAddressController(api, nil, nil)
	require.NoError(t, c.SetField(FieldUserID, "3"))
	require.NoError(t, c.SetField(FieldFullAddress, "1 Main St"))

	require.Error(t, c.Submit(context.Background()))
	assert.Equal(t, "User not found with id: 3", c.ErrorMessage())
	assert.Equal(t, "1 Main St", c.Form().FullAddress)

	api.CreateErr = errors.New("dial tcp: refused")
	require.Error(t, c.Submit(context.Background()))
	assert.Equal(t, MsgOperationFailed, c.ErrorMessage())
}

func TestAddressController_SetField_Errors(t *testing.T) {
	c := NewAddressController(&fakeAddressAPI{}, nil, nil)

	require.ErrorIs(t, c.SetField("zip", "1"), ErrUnknownField)
	require.ErrorIs(t, c.SetField(FieldUserID, "abc"), models.ErrInvalidID)
	require.ErrorIs(t, c.SetField(FieldAddressType, "CASTLE"), models.ErrUnknownAddressType)
}

func TestAddressController_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("declined", func(t *testing.T) {
		api := &fakeAddressAPI{}
		confirm := &fakeConfirm{answer: false}
		c := NewAddressController(api, nil, confirm)

		require.ErrorIs(t, c.Remove(ctx, 5), ErrConfirmationDeclined)
		assert.Equal(t, []string{ConfirmDeleteAddress}, confirm.prompts)
		assert.Empty(t, api.Calls())
	})

	t.Run("confirmed", func(t *testing.T) {
		api := &fakeAddressAPI{}
		c := NewAddressController(api, nil, &fakeConfirm{answer: true})

		require.NoError(t, c.Remove(ctx, 5))
		assert.Equal(t, []string{"DeleteAddress", "ListAddresses"}, api.Calls())
		assert.Equal(t, models.ID(5), api.LastDeleteID)
		assert.Equal(t, MsgAddressDeleted, c.SuccessMessage())
	})

	t.Run("failure", func(t *testing.T) {
		api := &fakeAddressAPI{DeleteErr: errors.New("boom")}
		c := NewAddressController(api, nil, &fakeConfirm{answer: true})

		require.Error(t, c.Remove(ctx, 5))
		assert.Equal(t, MsgDeleteAddressFailed, c.ErrorMessage())
		assert.Equal(t, []string{"DeleteAddress"}, api.Calls())
	})
}

func TestAddressController_FilterByUser(t *testing.T) {
	ctx := context.Background()
	api := &fakeAddressAPI{Addresses: []models.Address{
		{AddressID: 1, UserID: 1},
		{AddressID: 2, UserID: 2},
	}}
	c := NewAddressController(api, nil, nil)

	require.NoError(t, c.FilterByUser(ctx, 2))
	assert.Equal(t, models.ID(2), c.UserFilter())
	assert.Equal(t, models.ID(2), api.LastUserID)
	require.Len(t, c.Addresses(), 1)

	require.NoError(t, c.FilterByUser(ctx, 0))
	assert.Len(t, c.Addresses(), 2)
	assert.Equal(t, []string{"ListAddressesByUser", "ListAddresses"}, api.Calls())
}

func TestAddressController_LookupFindCancel(t *testing.T) {
	ctx := context.Background()
	addr := models.Address{AddressID: 5, UserID: 1, FullAddress: "x", AddressType: models.AddressHome}
	api := &fakeAddressAPI{Addresses: []models.Address{addr}, GetRet: &addr}
	c := NewAddressController(api, nil, nil)
	require.NoError(t, c.Refresh(ctx))

	got, ok := c.Find(5)
	require.True(t, ok)
	assert.Equal(t, addr, got)

	looked, err := c.Lookup(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, addr, *looked)

	api.GetErr = &client.RequestFailure{StatusCode: 404, Message: "Address not found with id: 9"}
	_, err = c.Lookup(ctx, 9)
	require.Error(t, err)
	assert.Equal(t, MsgFetchAddressFailed+"Address not found with id: 9", c.ErrorMessage())

	c.BeginEdit(addr)
	c.Cancel()
	_, editing := c.Editing()
	assert.False(t, editing)
	assert.Empty(t, c.ErrorMessage(), "cancel clears the error")
	require.NoError(t, c.SetField(FieldUserID, "2"), "owner is editable again")
}

func TestAddressController_Remove_RefreshSkipsInFlightList(t *testing.T) {
	ctx := context.Background()
	hold := make(chan struct{})
	api := &fakeAddressAPI{
		Addresses: []models.Address{{AddressID: 5, UserID: 1, FullAddress: "1 Main St", AddressType: models.AddressHome}},
		block:     map[string]chan struct{}{"ListAddresses": hold},
		started:   make(chan string, 4),
	}
	c := NewAddressController(api, nil, &fakeConfirm{answer: true})

	stale := make(chan error, 1)
	go func() { stale <- c.Refresh(ctx) }()
	require.Equal(t, "ListAddresses", <-api.started)
	api.release("ListAddresses")

	require.NoError(t, c.Remove(ctx, 5))
	assert.Equal(t, []string{"ListAddresses", "DeleteAddress", "ListAddresses"}, api.Calls())
	assert.Empty(t, c.Addresses())

	close(hold)
	require.NoError(t, <-stale)
	assert.Empty(t, c.Addresses(), "older response must not bring back the deleted address")
	assert.Equal(t, MsgAddressDeleted, c.SuccessMessage())
	assert.False(t, c.Loading())
}
