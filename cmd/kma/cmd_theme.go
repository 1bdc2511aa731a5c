package main

import (
	"fmt"

	"kma/cmd/kma/ui"
	"kma/internal/theme"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) themeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or edit the display settings",
		Long: `Display settings theme the assessment form: banner, organization, level and
score colors, the font stack and three font sizes. Values are validated with
the same rules as the settings panel.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "List every display property with its current value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openSettings()
			if err != nil {
				return err
			}
			props := store.Display()
			tbl := ui.NewSimpleTable("Display Settings ("+store.Path()+")", "Key", "Label", "Value", "Default")
			for _, p := range theme.Properties() {
				v, _ := props.Get(p.Key)
				tbl.AddRow(p.Key, p.Label, v, p.Default)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tbl.View(ui.NewStyles(props)))
			if desc := store.Settings().Description; desc != "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Description: "+desc)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set one display property",
		Example: `  kma theme set bannerHighlight "#FF5733"
  kma theme set baseFontSize 14`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openSettings()
			if err != nil {
				return err
			}
			if err := store.SetDisplay(args[0], args[1]); err != nil {
				return err
			}
			props := store.Display()
			v, _ := props.Get(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], v)
			if p, ok := theme.Lookup(args[0]); ok && p.Kind == theme.KindFontSize {
				size, _ := theme.ParseFontSize(v)
				if w := theme.FontSizeWarning(size); w != "" {
					fmt.Fprintln(cmd.OutOrStdout(), "warning: "+w)
				}
			}
			a.logger.Info("display property set", zap.String("key", args[0]), zap.String("value", v))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "describe TEXT",
		Short: "Set the free-text description stored with the settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openSettings()
			if err != nil {
				return err
			}
			if err := store.SetDescription(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "description updated")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset [KEY]",
		Short: "Restore one property, or all of them, to the defaults",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openSettings()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				if err := store.ResetDisplay(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "all display properties reset")
				return nil
			}
			if err := store.ResetProperty(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s reset\n", args[0])
			return nil
		},
	})
	return cmd
}
