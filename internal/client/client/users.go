package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/usermanager/internal/client/models"
)

const usersPath = "/users"

// ListUsers fetches the whole user collection.
func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	return c.listUsers(ctx, usersPath)
}

// ListUsersByStatus fetches users in the given status.
func (c *HTTPClient) ListUsersByStatus(ctx context.Context, status models.UserStatus) ([]models.User, error) {
	return c.listUsers(ctx, usersPath+"/status/"+url.PathEscape(string(status)))
}

func (c *HTTPClient) listUsers(ctx context.Context, path string) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, path, nil, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id models.ID) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, idPath(usersPath, id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser posts a new user together with its nested address drafts.
func (c *HTTPClient) CreateUser(ctx context.Context, data models.UserPayload) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodPost, usersPath, data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id models.ID, data models.UserPayload) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodPut, idPath(usersPath, id), data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser ignores the confirmation body the backend returns.
func (c *HTTPClient) DeleteUser(ctx context.Context, id models.ID) error {
	return c.do(ctx, http.MethodDelete, idPath(usersPath, id), nil, nil)
}
