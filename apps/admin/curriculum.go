package main

import (
	"github.com/spf13/cobra"

	"github.com/trezcool/alama/core/student"
)

func (cli *commandLine) newCurriculumCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "curriculum",
		Short: "Print the forms, subjects and ages of a curriculum",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = cli.curriculum
			}
			c, err := student.CurriculumByName(name)
			if err != nil {
				return err
			}
			return renderCurriculum(cmd.OutOrStdout(), c)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "curriculum to print (defaults to --curriculum)")

	return cmd
}
