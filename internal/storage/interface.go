package storage

import (
	"context"

	"github.com/Diana2886/websockets-ui/internal/model"
)

// Storage defines the interface for account persistence. Only player
// accounts and their win counts are durable; rooms and live games are held
// in memory by the session coordinator and do not survive restarts.
type Storage interface {
	SaveAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, id model.PlayerID) (*model.Account, error)
	GetAccountByName(ctx context.Context, name string) (*model.Account, error)
	ListAccounts(ctx context.Context) ([]*model.Account, error)
	DeleteAccount(ctx context.Context, id model.PlayerID) error
}
