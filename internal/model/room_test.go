package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type RoomSuite struct {
	suite.Suite
}

func TestRoomSuite(t *testing.T) {
	suite.Run(t, new(RoomSuite))
}

func (s *RoomSuite) newRoom() *Room {
	return &Room{
		ID:        "r_test",
		Players:   []*Player{NewPlayer("p1", "alice")},
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *RoomSuite) TestSecondPlayerStartsRoom() {
	room := s.newRoom()
	err := room.AddPlayer(NewPlayer("p2", "bob"))
	s.NoError(err)
	s.True(room.Started)
}

func (s *RoomSuite) TestCreatorCannotJoinTwice() {
	room := s.newRoom()
	err := room.AddPlayer(room.Players[0])
	s.ErrorIs(err, ErrAlreadyInRoom)
	s.False(room.Started)
}

func (s *RoomSuite) TestThirdPlayerRejected() {
	room := s.newRoom()
	s.NoError(room.AddPlayer(NewPlayer("p2", "bob")))
	err := room.AddPlayer(NewPlayer("p3", "carol"))
	s.ErrorIs(err, ErrRoomFull)
}

func (s *RoomSuite) TestRemovePlayer() {
	room := s.newRoom()
	room.RemovePlayer("p1")
	s.True(room.IsEmpty())
	s.False(room.HasPlayer("p1"))
}
