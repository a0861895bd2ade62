package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Participant commands for an active hand",
	}

	cmd.AddCommand(newAnswerCmd())
	cmd.AddCommand(newFoldCmd())
	cmd.AddCommand(newCallCmd())
	cmd.AddCommand(newRaiseCmd())
	cmd.AddCommand(newRevealOwnCmd())

	return cmd
}

func newAnswerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "answer <code> <answer>",
		Short: "Submit your answer to the current question",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"answer": args[1]}

			var result SessionResult
			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/answer", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func act(code, action string, amount int) error {
	req := map[string]any{"action": action}
	if amount > 0 {
		req["amount"] = amount
	}

	var result SessionResult
	if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/act", code), req, &result); err != nil {
		return err
	}

	out := NewOutput(cfg.Output)
	out.Print(result)
	return nil
}

func newFoldCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fold <code>",
		Short: "Fold the current hand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return act(args[0], "fold", 0)
		},
	}
}

func newCallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "call <code>",
		Short: "Call the current bet (checks when there is nothing to match)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return act(args[0], "call", 0)
		},
	}
}

func newRaiseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "raise <code> <amount>",
		Short: "Raise the current bet by the given amount",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount: %s", args[1])
			}
			return act(args[0], "raise", amount)
		},
	}
}

func newRevealOwnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reveal <code>",
		Short: "Show the table your locked answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SessionResult
			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/reveal-own", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
