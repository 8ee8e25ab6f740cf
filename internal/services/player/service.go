package player

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"golang.org/x/crypto/bcrypt"

	"github.com/Diana2886/websockets-ui/internal/dependencies/clock"
	"github.com/Diana2886/websockets-ui/internal/dependencies/random"
	"github.com/Diana2886/websockets-ui/internal/model"
	"github.com/Diana2886/websockets-ui/internal/storage"
)

const (
	// IDLength is the length of generated player ids
	IDLength = 12
	// IDAlphabet is the characters used in generated ids
	IDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	incorrectPasswordText = "Incorrect password"
)

// Service handles player registration and the persistent win table.
// The password check is a plain secret comparison against the stored hash;
// account security is not a goal of this protocol.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new player service
func New(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// Register resolves a reg command into a player. A new name creates an
// account; a known name with the right password resumes the same identity;
// a known name with the wrong password returns a player with the Error
// feedback fields set and must not be bound to the connection.
func (s *Service) Register(ctx context.Context, name, password string) (*model.Player, error) {
	account, err := s.storage.GetAccountByName(ctx, name)
	if err != nil {
		if !errors.Is(err, model.ErrAccountNotFound) {
			return nil, err
		}
		return s.createAccount(ctx, name, password)
	}

	p := model.NewPlayer(account.PlayerID, account.Name)
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		p.Error = true
		p.ErrorText = incorrectPasswordText
		return p, nil
	}

	p.Wins = account.Wins
	return p, nil
}

func (s *Service) createAccount(ctx context.Context, name, password string) (*model.Player, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id := model.PlayerID("p_" + s.random.String(IDLength, IDAlphabet))
	now := s.clock.Now()

	account := &model.Account{
		PlayerID:     id,
		Name:         name,
		PasswordHash: string(hash),
		Wins:         0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("player registered",
		slog.String("player_id", string(id)),
		slog.String("name", name),
	)

	return model.NewPlayer(id, name), nil
}

// RecordWin increments the player's persistent win counter
func (s *Service) RecordWin(ctx context.Context, id model.PlayerID) error {
	account, err := s.storage.GetAccount(ctx, id)
	if err != nil {
		return err
	}

	account.Wins++
	account.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveAccount(ctx, account); err != nil {
		return err
	}

	s.logger.Info("win recorded",
		slog.String("player_id", string(id)),
		slog.Int("wins", account.Wins),
	)
	return nil
}

// Winners returns all accounts ordered by wins descending, name ascending
func (s *Service) Winners(ctx context.Context) ([]*model.Account, error) {
	accounts, err := s.storage.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].Wins != accounts[j].Wins {
			return accounts[i].Wins > accounts[j].Wins
		}
		return accounts[i].Name < accounts[j].Name
	})
	return accounts, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Register(ctx context.Context, name, password string) (*model.Player, error)
	RecordWin(ctx context.Context, id model.PlayerID) error
	Winners(ctx context.Context) ([]*model.Account, error)
}

var _ ServiceInterface = (*Service)(nil)
