package main

import (
	"fmt"
	"strconv"

	"kma/cmd/kma/ui"
	"kma/internal/scoring"
	"kma/internal/shell"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) rubricCmd() *cobra.Command {
	var questions bool
	cmd := &cobra.Command{
		Use:   "rubric",
		Short: "Print the rubric sections and their recorded averages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.loadAssessment()
			if err != nil {
				return err
			}
			styles := ui.DefaultStyles()
			out := cmd.OutOrStdout()

			tbl := ui.NewSimpleTable("Knowledge Management Rubric", "Section", "Questions", "Subsections", "Average", "Level")
			for i := 2; i <= 4; i++ {
				tbl.RightAlign[i] = true
			}
			for _, sec := range data.Sections {
				tbl.AddRow(sec.Title,
					strconv.Itoa(len(sec.Scorable())),
					strconv.Itoa(sec.HeaderCount()),
					fmt.Sprintf("%.2f", sec.AverageScore),
					scoring.MapScoreToLevel(sec.AverageScore).String())
			}
			fmt.Fprintln(out, tbl.View(styles))

			if !questions {
				return nil
			}
			for _, sec := range data.Sections {
				qt := ui.NewSimpleTable(sec.Title+" ("+sec.ID+")", "ID", "Question", "Level")
				for _, q := range sec.Questions {
					text := q.Text
					if q.Header {
						text = "## " + text
					}
					qt.AddRow(q.ID, text, q.Level.String())
				}
				fmt.Fprintln(out, qt.View(styles))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&questions, "questions", "q", false, "Also list every question with its id")
	return cmd
}

func (a *app) envCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Show the detected host environment and admin status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			probe := shell.NewHostProbe(a.cfg.Host)
			res := shell.RunProbes(cmd.Context(), probe, probe)
			login, err := probe.LoginName()
			if err != nil {
				login = "unknown"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Environment:   %s\n", res.Environment)
			fmt.Fprintf(out, "Message:       %s\n", res.Environment.Message())
			fmt.Fprintf(out, "User:          %s\n", login)
			fmt.Fprintf(out, "Administrator: %t\n", res.IsAdmin)
			if res.EnvironmentErr != nil {
				fmt.Fprintf(out, "Environment probe error: %v\n", res.EnvironmentErr)
			}
			if res.PermissionErr != nil {
				fmt.Fprintf(out, "Permission probe error: %v\n", res.PermissionErr)
			}
			a.logger.Debug("probes complete",
				zap.Stringer("environment", res.Environment),
				zap.Bool("admin", res.IsAdmin))
			return nil
		},
	}
}
