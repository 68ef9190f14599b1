package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/alama/core/student"
)

var errStudentNotFound = errors.New(notFoundText)

func (cli *commandLine) newShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a student's details and results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := cli.loadService(cmd)
			if err != nil {
				return err
			}

			std, err := svc.GetByID(cmd.Context(), args[0])
			if err != nil {
				if errors.Cause(err) == student.ErrNotFound {
					return errStudentNotFound
				}
				return errors.Wrap(err, "getting student")
			}
			return renderReport(cmd.OutOrStdout(), std.Report(), svc.Curriculum())
		},
	}
	return cmd
}
