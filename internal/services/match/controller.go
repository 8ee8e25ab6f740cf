package match

import (
	"log/slog"
	"sort"

	"github.com/Diana2886/websockets-ui/internal/dependencies/clock"
	"github.com/Diana2886/websockets-ui/internal/dependencies/random"
	"github.com/Diana2886/websockets-ui/internal/model"
)

const (
	// IDLength is the length of generated room and game ids
	IDLength = 12
	// IDAlphabet is the characters used in generated ids
	IDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Controller owns the open-room and active-game registries and implements
// the matchmaking lifecycle and the attack-resolution state machine.
//
// The controller is not safe for concurrent use. The session coordinator
// serializes every inbound command under one mutex, so each call here runs
// as a single critical section.
type Controller struct {
	clock  clock.Clock
	random random.Random
	logger *slog.Logger

	rooms map[model.RoomID]*model.Room
	games map[model.GameID]*model.Game
}

// NewController creates a new match controller with empty registries
func NewController(clock clock.Clock, random random.Random, logger *slog.Logger) *Controller {
	return &Controller{
		clock:  clock,
		random: random,
		logger: logger,
		rooms:  make(map[model.RoomID]*model.Room),
		games:  make(map[model.GameID]*model.Game),
	}
}

// Result describes one resolved attack for the coordinator to translate
// into outbound events.
type Result struct {
	Position model.Cell
	Status   model.AttackStatus
	Attacker model.PlayerID
	Defender model.PlayerID
	// NextTurn is whose turn it is after resolution. Unchanged from the
	// attacker on shot and killed outcomes.
	NextTurn model.PlayerID
	// KilledCells are the destroyed ship's occupied cells (killed only)
	KilledCells []model.Cell
	// HaloCells are the in-bounds cells surrounding the destroyed ship,
	// auto-marked as misses on the target's board (killed only)
	HaloCells []model.Cell
	GameOver  bool
	Winner    *model.Player
}

// CreateRoom opens a new room containing only the given player
func (c *Controller) CreateRoom(p *model.Player) *model.Room {
	room := &model.Room{
		ID:        model.RoomID("r_" + c.random.String(IDLength, IDAlphabet)),
		CreatedAt: c.clock.Now(),
	}
	room.Players = append(room.Players, p)
	c.rooms[room.ID] = room

	c.logger.Info("room created",
		slog.String("room_id", string(room.ID)),
		slog.String("player_id", string(p.ID)),
	)
	return room
}

// OpenRooms returns the joinable rooms in creation order
func (c *Controller) OpenRooms() []*model.Room {
	rooms := make([]*model.Room, 0, len(c.rooms))
	for _, r := range c.rooms {
		rooms = append(rooms, r)
	}
	sort.Slice(rooms, func(i, j int) bool {
		if !rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
		}
		return rooms[i].ID < rooms[j].ID
	})
	return rooms
}

// JoinRoom adds a player to an open room. Filling the room removes it from
// the open-room registry and spawns the game, which is returned.
func (c *Controller) JoinRoom(roomID model.RoomID, p *model.Player) (*model.Game, error) {
	room, ok := c.rooms[roomID]
	if !ok {
		return nil, model.ErrRoomNotFound
	}

	if err := room.AddPlayer(p); err != nil {
		return nil, err
	}

	if !room.Started {
		return nil, nil
	}

	// Room is full: no longer joinable, its players live on in the game
	delete(c.rooms, roomID)

	game := &model.Game{
		ID:        model.GameID("g_" + c.random.String(IDLength, IDAlphabet)),
		Players:   [2]*model.Player{room.Players[0], room.Players[1]},
		State:     model.GameStateAwaitingFleets,
		CreatedAt: c.clock.Now(),
	}
	c.games[game.ID] = game

	// The players may carry board state from an earlier match
	for _, gp := range game.Players {
		gp.SetFleet(nil)
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("room_id", string(roomID)),
		slog.String("player1", string(game.Players[0].ID)),
		slog.String("player2", string(game.Players[1].ID)),
	)
	return game, nil
}

// Game returns an active game by id
func (c *Controller) Game(id model.GameID) (*model.Game, error) {
	game, ok := c.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game, nil
}

// PlaceFleet submits a player's ships for a game. The returned bool is true
// when both fleets are in and the match has started.
func (c *Controller) PlaceFleet(gameID model.GameID, playerID model.PlayerID, ships []*model.Ship) (*model.Game, bool, error) {
	game, ok := c.games[gameID]
	if !ok {
		return nil, false, model.ErrGameNotFound
	}
	if game.State != model.GameStateAwaitingFleets {
		return nil, false, model.ErrFleetAlreadyPlaced
	}

	p := game.PlayerByID(playerID)
	if p == nil {
		return nil, false, model.ErrPlayerNotFound
	}
	if p.HasFleet() {
		return nil, false, model.ErrFleetAlreadyPlaced
	}

	p.SetFleet(ships)

	if !game.BothFleetsPlaced() {
		return game, false, nil
	}

	game.State = model.GameStateInProgress
	c.logger.Info("game started",
		slog.String("game_id", string(gameID)),
		slog.String("current_player", string(game.CurrentPlayer().ID)),
	)
	return game, true, nil
}

// Attack resolves one attack against the requester's opponent.
//
// Turn violations and repeat attacks return ErrNotPlayerTurn and
// ErrCellAlreadyAttacked with no state change; the coordinator drops those
// silently. A hit (shot or killed) keeps the turn with the attacker; only a
// miss hands it over. A kill marks the destroyed ship's surrounding halo as
// attacked on the target, so those cells can never be legally attacked.
func (c *Controller) Attack(gameID model.GameID, playerID model.PlayerID, cell model.Cell) (*Result, error) {
	game, ok := c.games[gameID]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	switch game.State {
	case model.GameStateAwaitingFleets:
		return nil, model.ErrGameNotStarted
	case model.GameStateConcluded:
		return nil, model.ErrGameOver
	}

	if game.CurrentPlayer().ID != playerID {
		return nil, model.ErrNotPlayerTurn
	}
	if !cell.InBounds() {
		return nil, model.ErrCellOutOfBounds
	}

	target := game.Opponent(playerID)
	if target.HasAttacked(cell) {
		return nil, model.ErrCellAlreadyAttacked
	}
	target.RecordAttack(cell)

	result := &Result{
		Position: cell,
		Status:   model.AttackStatusMiss,
		Attacker: playerID,
		Defender: target.ID,
	}

	// Ship footprints never overlap, so at most one ship can register the hit
	for _, ship := range target.Fleet() {
		if !ship.RegisterHit(cell) {
			continue
		}
		if ship.IsDestroyed() {
			result.Status = model.AttackStatusKilled
			result.KilledCells = ship.Cells()
			result.HaloCells = ship.Halo()
			for _, h := range result.HaloCells {
				target.RecordAttack(h)
			}
		} else {
			result.Status = model.AttackStatusShot
		}
		break
	}

	if result.Status == model.AttackStatusMiss {
		game.AdvanceTurn()
	}

	if game.IsOver() {
		game.State = model.GameStateConcluded
		result.GameOver = true
		result.Winner = game.Winner()
		delete(c.games, game.ID)

		c.logger.Info("game concluded",
			slog.String("game_id", string(game.ID)),
			slog.String("winner", string(result.Winner.ID)),
		)
	}

	result.NextTurn = game.CurrentPlayer().ID
	return result, nil
}

// RandomAttack attacks a uniformly random cell the target has not yet had
// attacked. Candidates are enumerated up front, so selection always
// terminates; an empty candidate set means the game should already be over
// and is reported as ErrNoUnattackedCells.
func (c *Controller) RandomAttack(gameID model.GameID, playerID model.PlayerID) (*Result, error) {
	game, ok := c.games[gameID]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	if game.State != model.GameStateInProgress {
		return nil, model.ErrGameNotStarted
	}
	if game.CurrentPlayer().ID != playerID {
		return nil, model.ErrNotPlayerTurn
	}

	target := game.Opponent(playerID)
	var candidates []model.Cell
	for y := 0; y < model.GridSize; y++ {
		for x := 0; x < model.GridSize; x++ {
			cell := model.Cell{X: x, Y: y}
			if !target.HasAttacked(cell) {
				candidates = append(candidates, cell)
			}
		}
	}
	if len(candidates) == 0 {
		return nil, model.ErrNoUnattackedCells
	}

	cell := candidates[c.random.Intn(len(candidates))]
	return c.Attack(gameID, playerID, cell)
}

// RemovePlayer cleans up every room and game referencing the player.
// Rooms lose the member (empty rooms are deleted); games missing a player
// are no longer playable and are dropped as abandoned. The dropped games
// and whether the open-room set changed are returned.
func (c *Controller) RemovePlayer(playerID model.PlayerID) (dropped []*model.Game, roomsChanged bool) {
	for id, room := range c.rooms {
		if !room.HasPlayer(playerID) {
			continue
		}
		room.RemovePlayer(playerID)
		roomsChanged = true
		if room.IsEmpty() {
			delete(c.rooms, id)
		}
	}

	for id, game := range c.games {
		if game.PlayerByID(playerID) == nil {
			continue
		}
		delete(c.games, id)
		dropped = append(dropped, game)

		c.logger.Info("game abandoned",
			slog.String("game_id", string(id)),
			slog.String("player_id", string(playerID)),
		)
	}
	return dropped, roomsChanged
}
