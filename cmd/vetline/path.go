package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPathScanCmd() *cobra.Command {
	var filePath, input string
	cmd := &cobra.Command{
		Use:   "path-scan",
		Short: "Detect path traversal from a user-input substring inside a file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeFn, err := buildScanner()
			if err != nil {
				return err
			}
			defer closeFn()

			detected := s.ScanPathTraversal(cmd.Context(), filePath, input)
			fmt.Fprintf(cmd.OutOrStdout(), "detected: %v\n", detected)
			return nil
		},
	}
	cmd.Flags().StringVar(&filePath, "path", "", "the file path")
	cmd.Flags().StringVar(&input, "input", "", "the user-controlled substring")
	cmd.MarkFlagRequired("path")
	cmd.MarkFlagRequired("input")
	return cmd
}
