package cli

import (
	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room lifecycle commands",
	}

	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomListCmd())
	cmd.AddCommand(newRoomGetCmd())
	cmd.AddCommand(newRoomJoinCmd())
	cmd.AddCommand(newRoomLeaveCmd())
	cmd.AddCommand(newRoomReadyCmd())
	cmd.AddCommand(newRoomUnreadyCmd())
	cmd.AddCommand(newRoomStartCmd())
	cmd.AddCommand(newRoomNextHandCmd())

	return cmd
}

func newRoomCreateCmd() *cobra.Command {
	var password string
	var minPlayers, maxPlayers int

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a room (idempotent on name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"name": args[0]}
			if password != "" {
				req["password"] = password
			}
			if minPlayers > 0 {
				req["min_players"] = minPlayers
			}
			if maxPlayers > 0 {
				req["max_players"] = maxPlayers
			}

			var result Room
			if err := client.Post("/api/v1/rooms", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Room password (omit for an open room)")
	cmd.Flags().IntVar(&minPlayers, "min", 0, "Minimum players (default 4)")
	cmd.Flags().IntVar(&maxPlayers, "max", 0, "Maximum players (default 4)")

	return cmd
}

func newRoomListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RoomList
			if err := client.Get("/api/v1/rooms", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoomGetCmd() *cobra.Command {
	var byName bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/rooms/" + args[0]
			if byName {
				path = "/api/v1/rooms/by-name/" + args[0]
			}

			var result Room
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&byName, "by-name", false, "Look the room up by name instead of id")

	return cmd
}

func newRoomJoinCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "join <id>",
		Short: "Join a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req map[string]string
			if password != "" {
				req = map[string]string{"password": password}
			}

			var result Room
			if err := client.Post("/api/v1/rooms/"+args[0]+"/join", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Room password")

	return cmd
}

func newRoomLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <id>",
		Short: "Leave a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room
			if err := client.Post("/api/v1/rooms/"+args[0]+"/leave", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoomReadyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ready <id>",
		Short: "Mark yourself ready to start",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room
			if err := client.Post("/api/v1/rooms/"+args[0]+"/ready", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoomUnreadyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unready <id>",
		Short: "Clear your readiness",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room
			if err := client.Post("/api/v1/rooms/"+args[0]+"/unready", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoomStartCmd() *cobra.Command {
	var matcher string

	cmd := &cobra.Command{
		Use:   "start <id>",
		Short: "Start play (creator only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req map[string]string
			if matcher != "" {
				req = map[string]string{"matcher": matcher}
			}

			var result Room
			if err := client.Post("/api/v1/rooms/"+args[0]+"/start", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&matcher, "matcher", "", "Seating strategy: random (default) or robin")

	return cmd
}

func newRoomNextHandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next-hand <id>",
		Short: "Advance to the next hand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room
			if err := client.Post("/api/v1/rooms/"+args[0]+"/next-hand", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
