package protocol

import "encoding/json"

// Inbound command types
const (
	TypeReg           = "reg"
	TypeCreateRoom    = "create_room"
	TypeAddUserToRoom = "add_user_to_room"
	TypeAddShips      = "add_ships"
	TypeAttack        = "attack"
	TypeRandomAttack  = "random_attack"
)

// Outbound event types
const (
	TypeUpdateRoom    = "update_room"
	TypeCreateGame    = "create_game"
	TypeStartGame     = "start_game"
	TypeTurn          = "turn"
	TypeFinish        = "finish"
	TypeUpdateWinners = "update_winners"
)

// Envelope is the wire frame for every command and event. Data carries the
// payload as a JSON-encoded string (double encoding, per the protocol).
// ID is a reserved sequence field, always 0.
type Envelope struct {
	Type string `json:"type"`
	Data string `json:"data"`
	ID   int    `json:"id"`
}

// NewEnvelope builds an envelope with the payload marshalled into Data.
// A nil payload leaves Data empty.
func NewEnvelope(msgType string, payload any) (Envelope, error) {
	env := Envelope{Type: msgType}
	if payload == nil {
		return env, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	env.Data = string(data)
	return env, nil
}

// Decode unmarshals the envelope's payload into v. An empty Data is treated
// as an empty payload, not an error; commands like create_room carry none.
func (e Envelope) Decode(v any) error {
	if e.Data == "" {
		return nil
	}
	return json.Unmarshal([]byte(e.Data), v)
}

// ErrorMessage is the generic error reply for unroutable commands. It is
// sent bare, not wrapped in an envelope.
type ErrorMessage struct {
	Error string `json:"error"`
}
