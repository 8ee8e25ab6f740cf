package protocol

import "github.com/Diana2886/websockets-ui/internal/model"

// Position is a grid coordinate on the wire
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Ship is the wire shape of one fleet unit. Direction true means vertical.
type Ship struct {
	Position  Position `json:"position"`
	Direction bool     `json:"direction"`
	Length    int      `json:"length"`
	Type      string   `json:"type"`
}

// ToModel converts a wire ship into a domain ship
func (s Ship) ToModel() *model.Ship {
	return model.NewShip(
		model.Cell{X: s.Position.X, Y: s.Position.Y},
		s.Direction,
		s.Length,
		model.ShipClass(s.Type),
	)
}

// ShipFromModel converts a domain ship into its wire shape
func ShipFromModel(s *model.Ship) Ship {
	return Ship{
		Position:  Position{X: s.Anchor.X, Y: s.Anchor.Y},
		Direction: s.Vertical,
		Length:    s.Length,
		Type:      string(s.Class),
	}
}

// ShipsToModel converts a submitted fleet
func ShipsToModel(ships []Ship) []*model.Ship {
	out := make([]*model.Ship, len(ships))
	for i, s := range ships {
		out[i] = s.ToModel()
	}
	return out
}

// ShipsFromModel converts a fleet for echoing back in start_game
func ShipsFromModel(ships []*model.Ship) []Ship {
	out := make([]Ship, len(ships))
	for i, s := range ships {
		out[i] = ShipFromModel(s)
	}
	return out
}

// RegRequest is the reg command payload
type RegRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// RegResponse is the registration ack
type RegResponse struct {
	Name      string `json:"name"`
	Index     string `json:"index"`
	Error     bool   `json:"error"`
	ErrorText string `json:"errorText"`
}

// AddUserToRoomRequest is the add_user_to_room command payload
type AddUserToRoomRequest struct {
	IndexRoom string `json:"indexRoom"`
}

// AddShipsRequest is the add_ships command payload
type AddShipsRequest struct {
	GameID      string `json:"gameId"`
	Ships       []Ship `json:"ships"`
	IndexPlayer string `json:"indexPlayer"`
}

// AttackRequest is the attack command payload
type AttackRequest struct {
	GameID      string `json:"gameId"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	IndexPlayer string `json:"indexPlayer"`
}

// RandomAttackRequest is the random_attack command payload
type RandomAttackRequest struct {
	GameID      string `json:"gameId"`
	IndexPlayer string `json:"indexPlayer"`
}

// RoomUser is one member of an open room
type RoomUser struct {
	Name  string `json:"name"`
	Index string `json:"index"`
}

// RoomInfo is one open room in an update_room event
type RoomInfo struct {
	RoomID    string     `json:"roomId"`
	RoomUsers []RoomUser `json:"roomUsers"`
}

// CreateGameResponse tells a room member their game and player ids
type CreateGameResponse struct {
	IDGame   string `json:"idGame"`
	IDPlayer string `json:"idPlayer"`
}

// StartGameResponse echoes a player's own fleet when the match begins
type StartGameResponse struct {
	Ships              []Ship `json:"ships"`
	CurrentPlayerIndex string `json:"currentPlayerIndex"`
}

// TurnResponse announces whose turn it is
type TurnResponse struct {
	CurrentPlayer string `json:"currentPlayer"`
}

// AttackResponse reports one resolved cell
type AttackResponse struct {
	Position      Position `json:"position"`
	CurrentPlayer string   `json:"currentPlayer"`
	Status        string   `json:"status"`
}

// FinishResponse announces the match winner
type FinishResponse struct {
	WinPlayer string `json:"winPlayer"`
}

// WinnerEntry is one row of the update_winners leaderboard
type WinnerEntry struct {
	Name string `json:"name"`
	Wins int    `json:"wins"`
}
