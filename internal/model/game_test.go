package model

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type GameSuite struct {
	suite.Suite
	game *Game
}

func TestGameSuite(t *testing.T) {
	suite.Run(t, new(GameSuite))
}

func (s *GameSuite) SetupTest() {
	s.game = &Game{
		ID:      "g_test",
		Players: [2]*Player{NewPlayer("p1", "alice"), NewPlayer("p2", "bob")},
		State:   GameStateAwaitingFleets,
	}
}

func (s *GameSuite) TestTurnStartsWithFirstPlayer() {
	s.Equal(PlayerID("p1"), s.game.CurrentPlayer().ID)
}

func (s *GameSuite) TestAdvanceTurnAlternates() {
	s.game.AdvanceTurn()
	s.Equal(PlayerID("p2"), s.game.CurrentPlayer().ID)
	s.game.AdvanceTurn()
	s.Equal(PlayerID("p1"), s.game.CurrentPlayer().ID)
}

func (s *GameSuite) TestOpponent() {
	s.Equal(PlayerID("p2"), s.game.Opponent("p1").ID)
	s.Equal(PlayerID("p1"), s.game.Opponent("p2").ID)
	s.Nil(s.game.Opponent("stranger"))
}

func (s *GameSuite) TestBothFleetsPlaced() {
	s.False(s.game.BothFleetsPlaced())
	s.game.Players[0].SetFleet([]*Ship{NewShip(Cell{X: 0, Y: 0}, false, 1, ShipClassSmall)})
	s.False(s.game.BothFleetsPlaced())
	s.game.Players[1].SetFleet([]*Ship{NewShip(Cell{X: 0, Y: 0}, false, 1, ShipClassSmall)})
	s.True(s.game.BothFleetsPlaced())
}

func (s *GameSuite) TestWinnerAfterFleetDestroyed() {
	ship := NewShip(Cell{X: 0, Y: 0}, false, 1, ShipClassSmall)
	s.game.Players[0].SetFleet([]*Ship{NewShip(Cell{X: 5, Y: 5}, false, 1, ShipClassSmall)})
	s.game.Players[1].SetFleet([]*Ship{ship})
	s.False(s.game.IsOver())
	s.Nil(s.game.Winner())

	ship.RegisterHit(Cell{X: 0, Y: 0})
	s.True(s.game.IsOver())
	s.Equal(PlayerID("p1"), s.game.Winner().ID)
}
