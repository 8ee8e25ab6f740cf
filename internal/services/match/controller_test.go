package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/Diana2886/websockets-ui/internal/dependencies/mocks"
	"github.com/Diana2886/websockets-ui/internal/model"
	"github.com/Diana2886/websockets-ui/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.controller = NewController(s.clock, s.random, testutil.NopLogger())
}

func singleShipFleet(anchor model.Cell, length int) []*model.Ship {
	return []*model.Ship{model.NewShip(anchor, false, length, model.ShipClassLarge)}
}

// startGame drives two players through room creation and joining and
// returns the resulting game, still awaiting fleets.
func (s *ControllerSuite) startGame(p1, p2 *model.Player) *model.Game {
	s.random.QueueString("room1", "game1")
	room := s.controller.CreateRoom(p1)
	game, err := s.controller.JoinRoom(room.ID, p2)
	s.Require().NoError(err)
	s.Require().NotNil(game)
	return game
}

// startedGame additionally places a single-ship fleet for each player
func (s *ControllerSuite) startedGame(p1, p2 *model.Player) *model.Game {
	game := s.startGame(p1, p2)
	_, started, err := s.controller.PlaceFleet(game.ID, p1.ID, singleShipFleet(model.Cell{X: 0, Y: 0}, 3))
	s.Require().NoError(err)
	s.Require().False(started)
	_, started, err = s.controller.PlaceFleet(game.ID, p2.ID, singleShipFleet(model.Cell{X: 0, Y: 5}, 3))
	s.Require().NoError(err)
	s.Require().True(started)
	return game
}

func (s *ControllerSuite) TestCreateRoomIsListedAsOpen() {
	s.random.QueueString("room1")
	p := model.NewPlayer("p1", "alice")
	room := s.controller.CreateRoom(p)

	s.Equal(model.RoomID("r_room1"), room.ID)
	rooms := s.controller.OpenRooms()
	s.Require().Len(rooms, 1)
	s.Equal(room.ID, rooms[0].ID)
}

func (s *ControllerSuite) TestOpenRoomsOrderedByCreation() {
	s.random.QueueString("bbb", "aaa")
	s.controller.CreateRoom(model.NewPlayer("p1", "alice"))
	s.clock.Advance(time.Minute)
	s.controller.CreateRoom(model.NewPlayer("p2", "bob"))

	rooms := s.controller.OpenRooms()
	s.Require().Len(rooms, 2)
	s.Equal(model.RoomID("r_bbb"), rooms[0].ID)
	s.Equal(model.RoomID("r_aaa"), rooms[1].ID)
}

func (s *ControllerSuite) TestJoinUnknownRoom() {
	_, err := s.controller.JoinRoom("r_nope", model.NewPlayer("p1", "alice"))
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *ControllerSuite) TestJoinOwnRoomRejected() {
	s.random.QueueString("room1")
	p := model.NewPlayer("p1", "alice")
	room := s.controller.CreateRoom(p)

	game, err := s.controller.JoinRoom(room.ID, p)
	s.ErrorIs(err, model.ErrAlreadyInRoom)
	s.Nil(game)
	s.Len(s.controller.OpenRooms(), 1)
}

func (s *ControllerSuite) TestFillingRoomSpawnsGame() {
	p1 := model.NewPlayer("p1", "alice")
	p2 := model.NewPlayer("p2", "bob")
	game := s.startGame(p1, p2)

	s.Equal(model.GameID("g_game1"), game.ID)
	s.Equal(model.GameStateAwaitingFleets, game.State)
	s.Equal(p1, game.Players[0])
	s.Equal(p2, game.Players[1])
	s.Empty(s.controller.OpenRooms(), "full room is no longer joinable")
}

func (s *ControllerSuite) TestPlaceFleetStartsWhenBothIn() {
	p1 := model.NewPlayer("p1", "alice")
	p2 := model.NewPlayer("p2", "bob")
	game := s.startedGame(p1, p2)

	s.Equal(model.GameStateInProgress, game.State)
	s.Equal(p1, game.CurrentPlayer())
}

func (s *ControllerSuite) TestPlaceFleetTwiceRejected() {
	p1 := model.NewPlayer("p1", "alice")
	p2 := model.NewPlayer("p2", "bob")
	game := s.startGame(p1, p2)

	_, _, err := s.controller.PlaceFleet(game.ID, p1.ID, singleShipFleet(model.Cell{X: 0, Y: 0}, 3))
	s.Require().NoError(err)
	_, _, err = s.controller.PlaceFleet(game.ID, p1.ID, singleShipFleet(model.Cell{X: 0, Y: 2}, 3))
	s.ErrorIs(err, model.ErrFleetAlreadyPlaced)
}

func (s *ControllerSuite) TestPlaceFleetUnknownGame() {
	_, _, err := s.controller.PlaceFleet("g_nope", "p1", nil)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestPlaceFleetUnknownPlayer() {
	p1 := model.NewPlayer("p1", "alice")
	p2 := model.NewPlayer("p2", "bob")
	game := s.startGame(p1, p2)

	_, _, err := s.controller.PlaceFleet(game.ID, "stranger", singleShipFleet(model.Cell{X: 0, Y: 0}, 3))
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ControllerSuite) TestAttackBeforeFleetsRejected() {
	p1 := model.NewPlayer("p1", "alice")
	p2 := model.NewPlayer("p2", "bob")
	game := s.startGame(p1, p2)

	_, err := s.controller.Attack(game.ID, p1.ID, model.Cell{X: 0, Y: 0})
	s.ErrorIs(err, model.ErrGameNotStarted)
}

func (s *ControllerSuite) TestAttackOutOfTurnRejected() {
	p1 := model.NewPlayer("p1", "alice")
	p2 := model.NewPlayer("p2", "bob")
	game := s.startedGame(p1, p2)

	_, err := s.controller.Attack(game.ID, p2.ID, model.Cell{X: 9, Y: 9})
	s.ErrorIs(err, model.ErrNotPlayerTurn)
	s.Equal(p1, game.CurrentPlayer())
	s.False(p1.HasAttacked(model.Cell{X: 9, Y: 9}))
}

func (s *ControllerSuite) TestAttackOutOfBoundsRejected() {
	p1 := model.NewPlayer("p1", "alice")
	p2 := model.NewPlayer("p2", "bob")
	game := s.startedGame(p1, p2)

	_, err := s.controller.Attack(game.ID, p1.ID, model.Cell{X: 10, Y: 0})
	s.ErrorIs(err, model.ErrCellOutOfBounds)
	s.Equal(p1, game.CurrentPlayer())
}

func (s *ControllerSuite) TestMissHandsTurnOver() {
	p1 := model.NewPlayer("p1", "alice")
	p2 := model.NewPlayer("p2", "bob")
	game := s.startedGame(p1, p2)

	result, err := s.controller.Attack(game.ID, p1.ID, model.Cell{X: 9, Y: 9})
	s.Require().NoError(err)
	s.Equal(model.AttackStatusMiss, result.Status)
	s.Equal(p2.ID, result.NextTurn)
	s.Equal(p1.ID, result.Attacker)
	s.Equal(p2.ID, result.Defender)
	s.False(result.GameOver)
}

func (s *ControllerSuite) TestShotKeepsTurn() {
	p1 := model.NewPlayer("p1", "alice")
	p2 := model.NewPlayer("p2", "bob")
	game := s.startedGame(p1, p2)

	result, err := s.controller.Attack(game.ID, p1.ID, model.Cell{X: 0, Y: 5})
	s.Require().NoError(err)
	s.Equal(model.AttackStatusShot, result.Status)
	s.Equal(p1.ID, result.NextTurn)
	s.Empty(result.KilledCells)
}

func (s *ControllerSuite) TestRepeatAttackRejected() {
	p1 := model.NewPlayer("p1", "alice")
	p2 := model.NewPlayer("p2", "bob")
	game := s.startedGame(p1, p2)

	_, err := s.controller.Attack(game.ID, p1.ID, model.Cell{X: 0, Y: 5})
	s.Require().NoError(err)
	_, err = s.controller.Attack(game.ID, p1.ID, model.Cell{X: 0, Y: 5})
	s.ErrorIs(err, model.ErrCellAlreadyAttacked)
	s.Equal(p1, game.CurrentPlayer())
}

func (s *ControllerSuite) TestKillMarksHalo() {
	p1 := model.NewPlayer("p1", "alice")
	p2 := model.NewPlayer("p2", "bob")
	game := s.startedGame(p1, p2)

	// p2's fleet is one length-3 ship at (0,5)..(2,5); p1 also needs a
	// second ship so sinking this one does not end the game
	p1.SetFleet([]*model.Ship{
		model.NewShip(model.Cell{X: 0, Y: 0}, false, 3, model.ShipClassLarge),
		model.NewShip(model.Cell{X: 7, Y: 7}, false, 1, model.ShipClassSmall),
	})
	p2.SetFleet([]*model.Ship{
		model.NewShip(model.Cell{X: 0, Y: 5}, false, 3, model.ShipClassLarge),
		model.NewShip(model.Cell{X: 7, Y: 7}, false, 1, model.ShipClassSmall),
	})

	for _, c := range []model.Cell{{X: 0, Y: 5}, {X: 1, Y: 5}} {
		result, err := s.controller.Attack(game.ID, p1.ID, c)
		s.Require().NoError(err)
		s.Equal(model.AttackStatusShot, result.Status)
	}

	result, err := s.controller.Attack(game.ID, p1.ID, model.Cell{X: 2, Y: 5})
	s.Require().NoError(err)
	s.Equal(model.AttackStatusKilled, result.Status)
	s.Equal([]model.Cell{{X: 0, Y: 5}, {X: 1, Y: 5}, {X: 2, Y: 5}}, result.KilledCells)
	s.ElementsMatch([]model.Cell{
		{X: 0, Y: 4}, {X: 1, Y: 4}, {X: 2, Y: 4}, {X: 3, Y: 4},
		{X: 3, Y: 5},
		{X: 0, Y: 6}, {X: 1, Y: 6}, {X: 2, Y: 6}, {X: 3, Y: 6},
	}, result.HaloCells)
	s.Equal(p1.ID, result.NextTurn)
	s.False(result.GameOver)

	// Halo cells are now pre-resolved and cannot be attacked again
	_, err = s.controller.Attack(game.ID, p1.ID, model.Cell{X: 3, Y: 5})
	s.ErrorIs(err, model.ErrCellAlreadyAttacked)
}

func (s *ControllerSuite) TestSinkingLastShipConcludesGame() {
	p1 := model.NewPlayer("p1", "alice")
	p2 := model.NewPlayer("p2", "bob")
	game := s.startedGame(p1, p2)

	for _, c := range []model.Cell{{X: 0, Y: 5}, {X: 1, Y: 5}} {
		_, err := s.controller.Attack(game.ID, p1.ID, c)
		s.Require().NoError(err)
	}
	result, err := s.controller.Attack(game.ID, p1.ID, model.Cell{X: 2, Y: 5})
	s.Require().NoError(err)

	s.Equal(model.AttackStatusKilled, result.Status)
	s.True(result.GameOver)
	s.Require().NotNil(result.Winner)
	s.Equal(p1.ID, result.Winner.ID)

	// Concluded games leave the registry
	_, err = s.controller.Game(game.ID)
	s.ErrorIs(err, model.ErrGameNotFound)
	_, err = s.controller.Attack(game.ID, p1.ID, model.Cell{X: 9, Y: 9})
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestRandomAttackPicksUnattackedCell() {
	p1 := model.NewPlayer("p1", "alice")
	p2 := model.NewPlayer("p2", "bob")
	game := s.startedGame(p1, p2)

	// Candidates are enumerated row-major; index 0 is (0,0)
	s.random.QueueIntn(0)
	result, err := s.controller.RandomAttack(game.ID, p1.ID)
	s.Require().NoError(err)
	s.Equal(model.Cell{X: 0, Y: 0}, result.Position)
	s.Equal(model.AttackStatusMiss, result.Status)
	s.Equal(p2.ID, result.NextTurn)
}

func (s *ControllerSuite) TestRandomAttackSkipsAttackedCells() {
	p1 := model.NewPlayer("p1", "alice")
	p2 := model.NewPlayer("p2", "bob")
	game := s.startedGame(p1, p2)

	// (0,0) already attacked on p2's board, so candidate 0 is now (1,0)
	_, err := s.controller.Attack(game.ID, p1.ID, model.Cell{X: 0, Y: 0})
	s.Require().NoError(err)
	_, err = s.controller.Attack(game.ID, p2.ID, model.Cell{X: 9, Y: 9})
	s.Require().NoError(err)

	s.random.QueueIntn(0)
	result, err := s.controller.RandomAttack(game.ID, p1.ID)
	s.Require().NoError(err)
	s.Equal(model.Cell{X: 1, Y: 0}, result.Position)
}

func (s *ControllerSuite) TestRandomAttackOutOfTurnRejected() {
	p1 := model.NewPlayer("p1", "alice")
	p2 := model.NewPlayer("p2", "bob")
	game := s.startedGame(p1, p2)

	_, err := s.controller.RandomAttack(game.ID, p2.ID)
	s.ErrorIs(err, model.ErrNotPlayerTurn)
}

func (s *ControllerSuite) TestRemovePlayerDropsRoomsAndGames() {
	p1 := model.NewPlayer("p1", "alice")
	p2 := model.NewPlayer("p2", "bob")
	game := s.startedGame(p1, p2)

	s.random.QueueString("room2")
	p3 := model.NewPlayer("p3", "carol")
	s.controller.CreateRoom(p3)

	dropped, roomsChanged := s.controller.RemovePlayer(p1.ID)
	s.Require().Len(dropped, 1)
	s.Equal(game.ID, dropped[0].ID)
	s.False(roomsChanged, "p1 was not in any open room")

	_, err := s.controller.Game(game.ID)
	s.ErrorIs(err, model.ErrGameNotFound)

	// p3's room is untouched until p3 leaves
	s.Len(s.controller.OpenRooms(), 1)
	dropped, roomsChanged = s.controller.RemovePlayer(p3.ID)
	s.Empty(dropped)
	s.True(roomsChanged)
	s.Empty(s.controller.OpenRooms())
}
