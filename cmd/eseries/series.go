package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/eseries/internal/domain/series"
)

func newSeriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "series [name]",
		Short: "List the decade tables, or print the values of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintf(out, "%-6s %6s  %s\n", "Series", "Values", "Tolerance")
				for _, s := range series.All() {
					fmt.Fprintf(out, "%-6s %6d  %s\n", s.Name(), s.Len(), s.Tolerance())
				}
				return nil
			}

			s, err := series.Lookup(args[0])
			if err != nil {
				return err
			}
			values := s.Values()
			parts := make([]string, len(values))
			for i, v := range values {
				parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
			}
			fmt.Fprintf(out, "%s (%s): %s\n", s.Name(), s.Tolerance(), strings.Join(parts, " "))
			return nil
		},
	}
}
