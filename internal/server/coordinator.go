package server

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Diana2886/websockets-ui/internal/model"
	"github.com/Diana2886/websockets-ui/internal/protocol"
	"github.com/Diana2886/websockets-ui/internal/services/match"
	"github.com/Diana2886/websockets-ui/internal/services/player"
)

// Sender delivers one outbound JSON value to a connected participant.
// Sends are fire-and-forget; a slow connection drops messages rather than
// blocking command processing.
type Sender interface {
	Send(v any)
}

// Coordinator routes inbound commands to the player service and match
// controller and fans resulting events out to the affected connections.
//
// Every command is processed end to end, including all emitted events,
// under one mutex. Connections share the session, room, and game
// registries; interleaving two partially-processed commands could corrupt
// turn state or double-mark a kill's halo.
type Coordinator struct {
	mu      sync.Mutex
	logger  *slog.Logger
	players *player.Service
	matches *match.Controller

	sessions map[Sender]*model.Player
	senders  map[model.PlayerID]Sender
}

// NewCoordinator creates a coordinator with empty session registries
func NewCoordinator(players *player.Service, matches *match.Controller, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		logger:   logger,
		players:  players,
		matches:  matches,
		sessions: make(map[Sender]*model.Player),
		senders:  make(map[model.PlayerID]Sender),
	}
}

// HandleMessage processes one inbound envelope from a connection
func (c *Coordinator) HandleMessage(ctx context.Context, sender Sender, env protocol.Envelope) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch env.Type {
	case protocol.TypeReg:
		c.handleReg(ctx, sender, env)
	case protocol.TypeCreateRoom:
		c.handleCreateRoom(ctx, sender)
	case protocol.TypeAddUserToRoom:
		c.handleAddUserToRoom(ctx, sender, env)
	case protocol.TypeAddShips:
		c.handleAddShips(ctx, sender, env)
	case protocol.TypeAttack:
		c.handleAttack(ctx, sender, env)
	case protocol.TypeRandomAttack:
		c.handleRandomAttack(ctx, sender, env)
	default:
		c.logger.Warn("unknown message type", slog.String("type", env.Type))
		sender.Send(protocol.ErrorMessage{Error: "Invalid message type"})
	}
}

// Disconnect removes the connection's participant from every registry.
// Rooms lose the member and games referencing it are dropped; a match
// missing one of its players is abandoned, not kept alive.
func (c *Coordinator) Disconnect(ctx context.Context, sender Sender) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.sessions[sender]
	if !ok {
		return
	}
	delete(c.sessions, sender)

	// A re-login on a newer connection supersedes this session; its rooms
	// and games belong to the newer connection now
	if cur, ok := c.senders[p.ID]; !ok || cur != sender {
		return
	}
	delete(c.senders, p.ID)

	dropped, roomsChanged := c.matches.RemovePlayer(p.ID)
	for _, g := range dropped {
		c.logger.Info("match dropped on disconnect",
			slog.String("game_id", string(g.ID)),
			slog.String("player_id", string(p.ID)),
		)
	}
	if roomsChanged {
		c.broadcastRooms()
	}

	c.logger.Info("player disconnected",
		slog.String("player_id", string(p.ID)),
		slog.String("name", p.Name),
	)
}

func (c *Coordinator) handleReg(ctx context.Context, sender Sender, env protocol.Envelope) {
	var req protocol.RegRequest
	if err := env.Decode(&req); err != nil {
		sender.Send(protocol.ErrorMessage{Error: "Invalid message payload"})
		return
	}

	p, err := c.players.Register(ctx, req.Name, req.Password)
	if err != nil {
		c.logger.Error("registration failed",
			slog.String("name", req.Name),
			slog.String("error", err.Error()),
		)
		sender.Send(protocol.ErrorMessage{Error: "registration failed"})
		return
	}

	c.send(sender, protocol.TypeReg, protocol.RegResponse{
		Name:      p.Name,
		Index:     string(p.ID),
		Error:     p.Error,
		ErrorText: p.ErrorText,
	})

	// Wrong password still gets the ack above, but no session is bound
	if p.Error {
		return
	}

	c.sessions[sender] = p
	c.senders[p.ID] = sender

	c.send(sender, protocol.TypeUpdateRoom, c.roomList())
	c.sendWinners(ctx, sender)
}

func (c *Coordinator) handleCreateRoom(ctx context.Context, sender Sender) {
	p, ok := c.sessions[sender]
	if !ok {
		sender.Send(protocol.ErrorMessage{Error: "participant not found"})
		return
	}

	c.matches.CreateRoom(p)
	c.broadcastRooms()
}

func (c *Coordinator) handleAddUserToRoom(ctx context.Context, sender Sender, env protocol.Envelope) {
	p, ok := c.sessions[sender]
	if !ok {
		sender.Send(protocol.ErrorMessage{Error: "participant not found"})
		return
	}

	var req protocol.AddUserToRoomRequest
	if err := env.Decode(&req); err != nil {
		sender.Send(protocol.ErrorMessage{Error: "Invalid message payload"})
		return
	}

	game, err := c.matches.JoinRoom(model.RoomID(req.IndexRoom), p)
	if err != nil {
		sender.Send(protocol.ErrorMessage{Error: err.Error()})
		return
	}

	if game != nil {
		for _, gp := range game.Players {
			c.sendTo(gp.ID, protocol.TypeCreateGame, protocol.CreateGameResponse{
				IDGame:   string(game.ID),
				IDPlayer: string(gp.ID),
			})
		}
	}
	c.broadcastRooms()
}

func (c *Coordinator) handleAddShips(ctx context.Context, sender Sender, env protocol.Envelope) {
	var req protocol.AddShipsRequest
	if err := env.Decode(&req); err != nil {
		sender.Send(protocol.ErrorMessage{Error: "Invalid message payload"})
		return
	}

	p := c.requirePlayer(sender, req.IndexPlayer)
	if p == nil {
		return
	}

	game, started, err := c.matches.PlaceFleet(
		model.GameID(req.GameID), p.ID, protocol.ShipsToModel(req.Ships))
	if err != nil {
		sender.Send(protocol.ErrorMessage{Error: err.Error()})
		return
	}
	if !started {
		return
	}

	current := string(game.CurrentPlayer().ID)
	for _, gp := range game.Players {
		c.sendTo(gp.ID, protocol.TypeStartGame, protocol.StartGameResponse{
			Ships:              protocol.ShipsFromModel(gp.Fleet()),
			CurrentPlayerIndex: current,
		})
		c.sendTo(gp.ID, protocol.TypeTurn, protocol.TurnResponse{CurrentPlayer: current})
	}
}

func (c *Coordinator) handleAttack(ctx context.Context, sender Sender, env protocol.Envelope) {
	var req protocol.AttackRequest
	if err := env.Decode(&req); err != nil {
		sender.Send(protocol.ErrorMessage{Error: "Invalid message payload"})
		return
	}

	p := c.requirePlayer(sender, req.IndexPlayer)
	if p == nil {
		return
	}

	result, err := c.matches.Attack(
		model.GameID(req.GameID), p.ID, model.Cell{X: req.X, Y: req.Y})
	c.emitAttackOutcome(ctx, sender, result, err)
}

func (c *Coordinator) handleRandomAttack(ctx context.Context, sender Sender, env protocol.Envelope) {
	var req protocol.RandomAttackRequest
	if err := env.Decode(&req); err != nil {
		sender.Send(protocol.ErrorMessage{Error: "Invalid message payload"})
		return
	}

	p := c.requirePlayer(sender, req.IndexPlayer)
	if p == nil {
		return
	}

	result, err := c.matches.RandomAttack(model.GameID(req.GameID), p.ID)
	c.emitAttackOutcome(ctx, sender, result, err)
}

// emitAttackOutcome turns a resolved attack into outbound events.
// Turn and cell-revisit violations are dropped with no reply at all, a
// deliberate ignore-invalid-move policy.
func (c *Coordinator) emitAttackOutcome(ctx context.Context, sender Sender, result *match.Result, err error) {
	if err != nil {
		if errors.Is(err, model.ErrNotPlayerTurn) ||
			errors.Is(err, model.ErrCellAlreadyAttacked) ||
			errors.Is(err, model.ErrCellOutOfBounds) ||
			errors.Is(err, model.ErrNoUnattackedCells) {
			c.logger.Debug("attack ignored", slog.String("reason", err.Error()))
			return
		}
		sender.Send(protocol.ErrorMessage{Error: err.Error()})
		return
	}

	attacker := string(result.Attacker)
	both := []model.PlayerID{result.Attacker, result.Defender}

	for _, id := range both {
		c.sendTo(id, protocol.TypeAttack, protocol.AttackResponse{
			Position:      protocol.Position{X: result.Position.X, Y: result.Position.Y},
			CurrentPlayer: attacker,
			Status:        string(result.Status),
		})
	}

	if result.Status == model.AttackStatusKilled {
		// The requester sees every deck of the sunk ship confirmed and the
		// surrounding halo pre-resolved as misses
		for _, cell := range result.KilledCells {
			c.sendTo(result.Attacker, protocol.TypeAttack, protocol.AttackResponse{
				Position:      protocol.Position{X: cell.X, Y: cell.Y},
				CurrentPlayer: attacker,
				Status:        string(model.AttackStatusKilled),
			})
		}
		for _, cell := range result.HaloCells {
			c.sendTo(result.Attacker, protocol.TypeAttack, protocol.AttackResponse{
				Position:      protocol.Position{X: cell.X, Y: cell.Y},
				CurrentPlayer: attacker,
				Status:        string(model.AttackStatusMiss),
			})
		}
	}

	for _, id := range both {
		c.sendTo(id, protocol.TypeTurn, protocol.TurnResponse{
			CurrentPlayer: string(result.NextTurn),
		})
	}

	if !result.GameOver {
		return
	}

	for _, id := range both {
		c.sendTo(id, protocol.TypeFinish, protocol.FinishResponse{
			WinPlayer: string(result.Winner.ID),
		})
	}

	result.Winner.IncrementWins()
	if err := c.players.RecordWin(ctx, result.Winner.ID); err != nil {
		c.logger.Error("failed to record win",
			slog.String("player_id", string(result.Winner.ID)),
			slog.String("error", err.Error()),
		)
	}
	c.broadcastWinners(ctx)
}

// requirePlayer resolves the connection's participant and checks any
// player index the payload carries against it
func (c *Coordinator) requirePlayer(sender Sender, claimedIndex string) *model.Player {
	p, ok := c.sessions[sender]
	if !ok {
		sender.Send(protocol.ErrorMessage{Error: "participant not found"})
		return nil
	}
	if claimedIndex != "" && claimedIndex != string(p.ID) {
		sender.Send(protocol.ErrorMessage{Error: "participant not found"})
		return nil
	}
	return p
}

func (c *Coordinator) roomList() []protocol.RoomInfo {
	rooms := c.matches.OpenRooms()
	infos := make([]protocol.RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		users := make([]protocol.RoomUser, 0, len(r.Players))
		for _, p := range r.Players {
			users = append(users, protocol.RoomUser{
				Name:  p.Name,
				Index: string(p.ID),
			})
		}
		infos = append(infos, protocol.RoomInfo{
			RoomID:    string(r.ID),
			RoomUsers: users,
		})
	}
	return infos
}

func (c *Coordinator) broadcastRooms() {
	infos := c.roomList()
	for _, s := range c.senders {
		c.send(s, protocol.TypeUpdateRoom, infos)
	}
}

func (c *Coordinator) sendWinners(ctx context.Context, sender Sender) {
	entries, err := c.winnerList(ctx)
	if err != nil {
		return
	}
	c.send(sender, protocol.TypeUpdateWinners, entries)
}

func (c *Coordinator) broadcastWinners(ctx context.Context) {
	entries, err := c.winnerList(ctx)
	if err != nil {
		return
	}
	for _, s := range c.senders {
		c.send(s, protocol.TypeUpdateWinners, entries)
	}
}

func (c *Coordinator) winnerList(ctx context.Context) ([]protocol.WinnerEntry, error) {
	accounts, err := c.players.Winners(ctx)
	if err != nil {
		c.logger.Error("failed to list winners", slog.String("error", err.Error()))
		return nil, err
	}
	entries := make([]protocol.WinnerEntry, 0, len(accounts))
	for _, a := range accounts {
		entries = append(entries, protocol.WinnerEntry{Name: a.Name, Wins: a.Wins})
	}
	return entries, nil
}

func (c *Coordinator) sendTo(id model.PlayerID, msgType string, payload any) {
	s, ok := c.senders[id]
	if !ok {
		return
	}
	c.send(s, msgType, payload)
}

func (c *Coordinator) send(s Sender, msgType string, payload any) {
	env, err := protocol.NewEnvelope(msgType, payload)
	if err != nil {
		c.logger.Error("failed to encode event",
			slog.String("type", msgType),
			slog.String("error", err.Error()),
		)
		return
	}
	s.Send(env)
}
