package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Diana2886/websockets-ui/internal/protocol"
)

// defaultFleet is the classic 10-ship fleet laid out row by row.
// The server does not validate composition, so any layout works.
func defaultFleet() []protocol.Ship {
	ships := []protocol.Ship{
		{Position: protocol.Position{X: 0, Y: 0}, Length: 4, Type: "huge"},
		{Position: protocol.Position{X: 0, Y: 2}, Length: 3, Type: "large"},
		{Position: protocol.Position{X: 5, Y: 2}, Length: 3, Type: "large"},
		{Position: protocol.Position{X: 0, Y: 4}, Length: 2, Type: "medium"},
		{Position: protocol.Position{X: 3, Y: 4}, Length: 2, Type: "medium"},
		{Position: protocol.Position{X: 6, Y: 4}, Length: 2, Type: "medium"},
		{Position: protocol.Position{X: 0, Y: 6}, Length: 1, Type: "small"},
		{Position: protocol.Position{X: 2, Y: 6}, Length: 1, Type: "small"},
		{Position: protocol.Position{X: 4, Y: 6}, Length: 1, Type: "small"},
		{Position: protocol.Position{X: 6, Y: 6}, Length: 1, Type: "small"},
	}
	return ships
}

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a match automatically with random attacks",
		Long: `Registers, joins the given room (or creates one and waits for an
opponent), submits a standard fleet, and fires random attacks whenever it
holds the turn, until the match finishes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Name == "" {
				return fmt.Errorf("--name is required")
			}

			client, err := Connect(cfg.ServerURL)
			if err != nil {
				return err
			}
			defer client.Close()

			ack, err := client.Register(cfg.Name, cfg.Password)
			if err != nil {
				return err
			}
			fmt.Printf("registered as %s (%s)\n", ack.Name, ack.Index)

			if cfg.Room != "" {
				err = client.SendCommand(protocol.TypeAddUserToRoom, protocol.AddUserToRoomRequest{
					IndexRoom: cfg.Room,
				})
			} else {
				err = client.SendCommand(protocol.TypeCreateRoom, nil)
				fmt.Println("room created, waiting for an opponent")
			}
			if err != nil {
				return err
			}

			return playLoop(client, ack.Index)
		},
	}

	cmd.Flags().StringVar(&cfg.Room, "room", "", "Room id to join (omit to create a room)")
	return cmd
}

// playLoop reacts to server events until the match finishes
func playLoop(client *Client, playerIndex string) error {
	var gameID string

	for {
		env, err := client.ReadEvent()
		if err != nil {
			return fmt.Errorf("connection closed: %w", err)
		}

		switch env.Type {
		case protocol.TypeCreateGame:
			var created protocol.CreateGameResponse
			if err := env.Decode(&created); err != nil {
				return err
			}
			gameID = created.IDGame
			fmt.Printf("game %s created, submitting fleet\n", gameID)

			if err := client.SendCommand(protocol.TypeAddShips, protocol.AddShipsRequest{
				GameID:      gameID,
				Ships:       defaultFleet(),
				IndexPlayer: playerIndex,
			}); err != nil {
				return err
			}

		case protocol.TypeStartGame:
			fmt.Println("both fleets placed, match started")

		case protocol.TypeTurn:
			var turn protocol.TurnResponse
			if err := env.Decode(&turn); err != nil {
				return err
			}
			if turn.CurrentPlayer != playerIndex {
				continue
			}
			if err := client.SendCommand(protocol.TypeRandomAttack, protocol.RandomAttackRequest{
				GameID:      gameID,
				IndexPlayer: playerIndex,
			}); err != nil {
				return err
			}

		case protocol.TypeAttack:
			var attack protocol.AttackResponse
			if err := env.Decode(&attack); err != nil {
				return err
			}
			if cfg.Verbose {
				fmt.Printf("attack by %s at (%d,%d): %s\n",
					attack.CurrentPlayer, attack.Position.X, attack.Position.Y, attack.Status)
			}

		case protocol.TypeFinish:
			var finish protocol.FinishResponse
			if err := env.Decode(&finish); err != nil {
				return err
			}
			if finish.WinPlayer == playerIndex {
				fmt.Println("match finished: we won")
			} else {
				fmt.Printf("match finished: %s won\n", finish.WinPlayer)
			}
			return nil
		}
	}
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Register and print server events",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Name == "" {
				return fmt.Errorf("--name is required")
			}

			client, err := Connect(cfg.ServerURL)
			if err != nil {
				return err
			}
			defer client.Close()

			ack, err := client.Register(cfg.Name, cfg.Password)
			if err != nil {
				return err
			}
			fmt.Printf("registered as %s (%s)\n", ack.Name, ack.Index)

			for {
				env, err := client.ReadEvent()
				if err != nil {
					return fmt.Errorf("connection closed: %w", err)
				}
				fmt.Printf("%s %s\n", env.Type, env.Data)
			}
		},
	}
}
