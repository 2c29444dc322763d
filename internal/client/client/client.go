package client

import (
	"context"

	"github.com/dmitrijs2005/lostfound/internal/client/models"
)

// Client is the set of backend calls used by the services.
type Client interface {
	Login(ctx context.Context, c models.Credentials) (*AuthResult, error)
	Register(ctx context.Context, r models.Registration) (*AuthResult, error)
	ListItems(ctx context.Context) ([]models.Item, error)
	CreateItem(ctx context.Context, r models.NewReport, photo *models.Upload) (string, error)
	ConfirmFound(ctx context.Context, itemID string) (string, error)
	ListGuards(ctx context.Context) ([]models.Satpam, error)
	ConfirmPickup(ctx context.Context, p models.PickupDetails, photos []models.Upload) (string, error)
}

// TokenStore is the part of the session the client needs.
type TokenStore interface {
	Token(ctx context.Context) (string, bool, error)
	Clear(ctx context.Context) error
}

// AuthResult is the answer of /login and /register.
type AuthResult struct {
	Token   string
	Message string
}
