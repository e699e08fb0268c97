package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newJSScanCmd() *cobra.Command {
	var code, input, sourceType string
	cmd := &cobra.Command{
		Use:   "js-scan",
		Short: "Detect JS/TS injection via differential parse of code with/without the user input",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseJSSourceType(sourceType)
			if err != nil {
				return err
			}
			s, closeFn, err := buildScanner()
			if err != nil {
				return err
			}
			defer closeFn()

			detected := s.ScanJS(cmd.Context(), code, input, t)
			fmt.Fprintf(cmd.OutOrStdout(), "detected: %v\n", detected)
			return nil
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "the JS/TS source")
	cmd.Flags().StringVar(&input, "input", "", "the user-controlled substring")
	cmd.Flags().StringVar(&sourceType, "source-type", "script", "script, module, typescript, or tsx")
	cmd.MarkFlagRequired("code")
	cmd.MarkFlagRequired("input")
	return cmd
}
