package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newIDORCmd() *cobra.Command {
	var query, dialectName string
	cmd := &cobra.Command{
		Use:   "idor",
		Short: "Parse a query and report the tables, filters, and insert columns reachable for an IDOR check",
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

			results, err := s.ScanIDOR(cmd.Context(), query, d)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, r := range results {
				fmt.Fprintf(out, "statement %d: kind=%s\n", i, r.Kind)
				for _, t := range r.Tables {
					fmt.Fprintf(out, "  table: %s alias=%s\n", t.Name, t.Alias)
				}
				for _, f := range r.Filters {
					fmt.Fprintf(out, "  filter: table=%s column=%s value=%s\n", f.Table, f.Column, f.Value)
				}
				for rowIdx, row := range r.InsertColumns {
					for _, c := range row {
						fmt.Fprintf(out, "  insert[%d]: column=%s value=%s\n", rowIdx, c.Column, c.Value)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "the SQL query")
	cmd.Flags().StringVar(&dialectName, "dialect", "generic", "SQL dialect (generic, ansi, mysql, postgresql, ...)")
	cmd.MarkFlagRequired("query")
	return cmd
}
