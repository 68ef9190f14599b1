package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/alama/core/student"
)

func (cli *commandLine) newRosterCommand() *cobra.Command {
	var search string
	var form int

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Print the students, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := cli.loadService(cmd)
			if err != nil {
				return err
			}

			filter := student.QueryFilter{Search: search}
			if cmd.Flags().Changed("form") {
				filter.Form = &form
			}
			students, err := svc.Query(cmd.Context(), filter)
			if err != nil {
				return errors.Wrap(err, "querying students")
			}

			summaries := make([]student.Summary, 0, len(students))
			for _, std := range students {
				summaries = append(summaries, std.Summary())
			}
			return renderRoster(cmd.OutOrStdout(), summaries)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "match on ID or name, case-insensitive")
	cmd.Flags().IntVar(&form, "form", 0, "only students of this form")

	return cmd
}
