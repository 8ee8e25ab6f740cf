package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Diana2886/websockets-ui/internal/model"
	"github.com/Diana2886/websockets-ui/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}

	key := accountKey(account.PlayerID)

	// Use pipeline for atomic save + index updates
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, s.cfg.AccountTTL)
	pipe.Set(ctx, nameIndexKey(account.Name), string(account.PlayerID), s.cfg.AccountTTL)
	pipe.SAdd(ctx, accountIndexKey(), string(account.PlayerID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetAccount(ctx context.Context, id model.PlayerID) (*model.Account, error) {
	data, err := s.client.Get(ctx, accountKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	var account model.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Storage) GetAccountByName(ctx context.Context, name string) (*model.Account, error) {
	id, err := s.client.Get(ctx, nameIndexKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	return s.GetAccount(ctx, model.PlayerID(id))
}

func (s *Storage) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	ids, err := s.client.SMembers(ctx, accountIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	accounts := make([]*model.Account, 0, len(ids))
	for _, id := range ids {
		account, err := s.GetAccount(ctx, model.PlayerID(id))
		if err != nil {
			if errors.Is(err, model.ErrAccountNotFound) {
				// Expired account still referenced by the index
				continue
			}
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (s *Storage) DeleteAccount(ctx context.Context, id model.PlayerID) error {
	account, err := s.GetAccount(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, accountKey(id))
	pipe.Del(ctx, nameIndexKey(account.Name))
	pipe.SRem(ctx, accountIndexKey(), string(id))
	_, err = pipe.Exec(ctx)
	return err
}
