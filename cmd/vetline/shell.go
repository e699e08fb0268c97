package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShellScanCmd() *cobra.Command {
	var command, input string
	cmd := &cobra.Command{
		Use:   "shell-scan",
		Short: "Detect shell injection from a user-input substring inside a command",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeFn, err := buildScanner()
			if err != nil {
				return err
			}
			defer closeFn()

			detected := s.ScanShell(cmd.Context(), command, input)
			fmt.Fprintf(cmd.OutOrStdout(), "detected: %v\n", detected)
			return nil
		},
	}
	cmd.Flags().StringVar(&command, "command", "", "the shell command")
	cmd.Flags().StringVar(&input, "input", "", "the user-controlled substring")
	cmd.MarkFlagRequired("command")
	cmd.MarkFlagRequired("input")
	return cmd
}
