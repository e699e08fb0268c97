package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRouteCmd() *cobra.Command {
	var rawURL string
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Build a parameterized route template from a URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeFn, err := buildScanner()
			if err != nil {
				return err
			}
			defer closeFn()

			result, ok := s.ScanRoute(cmd.Context(), rawURL)
			if !ok {
				return fmt.Errorf("could not parse %q as a URL or root-relative path", rawURL)
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().StringVar(&rawURL, "url", "", "the URL or root-relative path")
	cmd.MarkFlagRequired("url")
	return cmd
}
