package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSQLScanCmd() *cobra.Command {
	var query, input, dialectName string
	cmd := &cobra.Command{
		Use:   "sql-scan",
		Short: "Detect SQL injection from a user-input substring inside a query",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseSQLDialect(dialectName)
			if err != nil {
				return err
			}
			s, closeFn, err := buildScanner()
			if err != nil {
				return err
			}
			defer closeFn()

			result := s.ScanSQL(cmd.Context(), query, input, d)
			fmt.Fprintf(cmd.OutOrStdout(), "detected: %v\nreason: %s\n", result.Detected, result.Reason)
			return nil
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "the SQL query")
	cmd.Flags().StringVar(&input, "input", "", "the user-controlled substring")
	cmd.Flags().StringVar(&dialectName, "dialect", "generic", "SQL dialect (generic, ansi, mysql, postgresql, ...)")
	cmd.MarkFlagRequired("query")
	cmd.MarkFlagRequired("input")
	return cmd
}
