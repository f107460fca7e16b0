package client

import (
	"context"

	"github.com/dmitrijs2005/usermanager/internal/client/models"
)

// UserAPI covers the /users collection.
type UserAPI interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id models.ID) (*models.User, error)
	CreateUser(ctx context.Context, data models.UserPayload) (*models.User, error)
	UpdateUser(ctx context.Context, id models.ID, data models.UserPayload) (*models.User, error)
	DeleteUser(ctx context.Context, id models.ID) error
	ListUsersByStatus(ctx context.Context, status models.UserStatus) ([]models.User, error)
}

// AddressAPI covers the /addresses collection.
type AddressAPI interface {
	ListAddresses(ctx context.Context) ([]models.Address, error)
	GetAddress(ctx context.Context, id models.ID) (*models.Address, error)
	ListAddressesByUser(ctx context.Context, userID models.ID) ([]models.Address, error)
	CreateAddress(ctx context.Context, data models.NewAddress) (*models.Address, error)
	UpdateAddress(ctx context.Context, id models.ID, data models.AddressFields) (*models.Address, error)
	DeleteAddress(ctx context.Context, id models.ID) error
}

// Client is the full Resource Client.
type Client interface {
	UserAPI
	AddressAPI
}
