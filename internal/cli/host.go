package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newHostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "host-ctl",
		Short: "Host controls for running a table",
	}

	cmd.AddCommand(newStartCmd())
	cmd.AddCommand(newHintCmd())
	cmd.AddCommand(newRevealAnswerCmd())
	cmd.AddCommand(newShowdownCmd())
	cmd.AddCommand(newResetCmd())
	cmd.AddCommand(newResetGameCmd())
	cmd.AddCommand(newKickCmd())
	cmd.AddCommand(newBalanceCmd())
	cmd.AddCommand(newBlindsCmd())

	return cmd
}

func hostPost(code, action string, req any) error {
	var result SessionResult
	if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/%s", code, action), req, &result); err != nil {
		return err
	}

	out := NewOutput(cfg.Output)
	out.Print(result)
	return nil
}

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <code>",
		Short: "Deal a new question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return hostPost(args[0], "start", nil)
		},
	}
}

func newHintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hint <code>",
		Short: "Reveal the next hint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return hostPost(args[0], "hint", nil)
		},
	}
}

func newRevealAnswerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reveal-answer <code>",
		Short: "Reveal the correct answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return hostPost(args[0], "reveal-answer", nil)
		},
	}
}

func newShowdownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "showdown <code>",
		Short: "Resolve the pot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return hostPost(args[0], "showdown", nil)
		},
	}
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <code>",
		Short: "Restart the current question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return hostPost(args[0], "reset", nil)
		},
	}
}

func newResetGameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-game <code>",
		Short: "Clear the table, keeping only the host seat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return hostPost(args[0], "reset-game", nil)
		},
	}
}

func newKickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kick <code> <player-id>",
		Short: "Remove a participant from the table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/kick", args[0]), map[string]string{"player_id": args[1]}, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Kicked %s", args[1]))
			return nil
		},
	}
}

func newBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <code> <player-id> <delta>",
		Short: "Adjust a participant's chip balance",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid delta: %s", args[2])
			}
			return hostPost(args[0], "balance", map[string]any{
				"player_id": args[1],
				"delta":     delta,
			})
		},
	}
}

func newBlindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "blinds <code> <on|off>",
		Short: "Toggle minimum-raise escalation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled := args[1] == "on"
			return hostPost(args[0], "blinds", map[string]bool{"enabled": enabled})
		},
	}
}
