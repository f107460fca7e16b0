package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/usermanager/internal/client/models"
)

const addressesPath = "/addresses"

func (c *HTTPClient) ListAddresses(ctx context.Context) ([]models.Address, error) {
	return c.listAddresses(ctx, addressesPath)
}

// ListAddressesByUser fetches the addresses owned by one user.
func (c *HTTPClient) ListAddressesByUser(ctx context.Context, userID models.ID) ([]models.Address, error) {
	return c.listAddresses(ctx, idPath(addressesPath+"/user", userID))
}

func (c *HTTPClient) listAddresses(ctx context.Context, path string) ([]models.Address, error) {
	var addresses []models.Address
	if err := c.do(ctx, http.MethodGet, path, nil, &addresses); err != nil {
		return nil, err
	}
	if addresses == nil {
		addresses = []models.Address{}
	}
	return addresses, nil
}

func (c *HTTPClient) GetAddress(ctx context.Context, id models.ID) (*models.Address, error) {
	var a models.Address
	if err := c.do(ctx, http.MethodGet, idPath(addressesPath, id), nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *HTTPClient) CreateAddress(ctx context.Context, data models.NewAddress) (*models.Address, error) {
	var a models.Address
	if err := c.do(ctx, http.MethodPost, addressesPath, data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAddress sends only the mutable fields; the owner cannot change.
func (c *HTTPClient) UpdateAddress(ctx context.Context, id models.ID, data models.AddressFields) (*models.Address, error) {
	var a models.Address
	if err := c.do(ctx, http.MethodPut, idPath(addressesPath, id), data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *HTTPClient) DeleteAddress(ctx context.Context, id models.ID) error {
	return c.do(ctx, http.MethodDelete, idPath(addressesPath, id), nil, nil)
}
