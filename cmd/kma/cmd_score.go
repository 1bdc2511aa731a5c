package main

import (
	"fmt"
	"io"

	"kma/internal/assessment"
	"kma/internal/export"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type scoreOptions struct {
	answers string
	format  string
	render  bool
	width   int
}

func (a *app) scoreCmd() *cobra.Command {
	opts := &scoreOptions{}
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score an assessment and print the report",
		Long: `Applies an answers file to the rubric and prints the scored report.

The answers file is YAML:

  organization: OD3
  answers:
    strategy-governance:
      clearly-defined-vision: Innovative
      dedicated-lead: 4

Nothing is stored; the report goes to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runScore(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.answers, "answers", "a", "", "Answers YAML file (default: the rubric's recorded levels)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(export.FormatMarkdown), "Output format: json, yaml, markdown or html")
	cmd.Flags().BoolVar(&opts.render, "render", false, "Render markdown for the terminal")
	cmd.Flags().IntVar(&opts.width, "width", 100, "Word wrap width for --render")
	return cmd
}

func (a *app) runScore(out io.Writer, opts *scoreOptions) error {
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	if opts.render && format != export.FormatMarkdown {
		return fmt.Errorf("--render requires --format markdown")
	}

	data, err := a.loadAssessment()
	if err != nil {
		return err
	}
	form := a.newForm(data)
	if opts.answers != "" {
		answers, err := assessment.LoadAnswersFile(a.resolve(opts.answers))
		if err != nil {
			return err
		}
		if err := answers.Apply(form); err != nil {
			return fmt.Errorf("failed to apply %s: %w", opts.answers, err)
		}
	}
	report := export.NewReport(form.Data())

	switch {
	case opts.render:
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(opts.width),
		)
		if err != nil {
			return fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		rendered, err := r.Render(export.Markdown(report))
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		if _, err := io.WriteString(out, rendered); err != nil {
			return err
		}
	case format == export.FormatHTML:
		store, err := a.openSettings()
		if err != nil {
			return err
		}
		if err := export.ThemedHTML(out, report, store.Display()); err != nil {
			return fmt.Errorf("failed to write html export: %w", err)
		}
	default:
		if err := export.Write(out, format, report); err != nil {
			return err
		}
	}

	a.logger.Info("scored assessment",
		zap.String("format", string(format)),
		zap.String("organization", report.Summary.Organization),
		zap.Int("overall_score", report.Summary.Overall.Score),
		zap.Float64("overall_average", report.Summary.Overall.Average),
		zap.Int("edits", form.Edits()),
	)
	return nil
}
