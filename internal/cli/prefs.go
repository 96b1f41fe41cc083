package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fittrack/fittrack/internal/core/domain"
)

func (a *app) prefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change display preferences",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the current preferences",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				printPrefs(cmd.OutOrStdout(), a.prefs.Preferences())
				return nil
			},
		},
		&cobra.Command{
			Use:   "toggle-dark",
			Short: "Switch between light and dark mode",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				printPrefs(cmd.OutOrStdout(), a.prefs.ToggleDarkMode(cmd.Context()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "toggle-fonts",
			Short: "Switch between normal and large fonts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				printPrefs(cmd.OutOrStdout(), a.prefs.ToggleFontSize(cmd.Context()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "language <tag>",
			Short: "Set the interface language (BCP 47, e.g. en, es, pt-BR)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := a.prefs.SetLanguage(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("%q: %w", args[0], err)
				}
				printPrefs(cmd.OutOrStdout(), p)
				return nil
			},
		},
	)
	return cmd
}

func printPrefs(w io.Writer, p domain.Preferences) {
	fmt.Fprintf(w, "darkMode:   %t\nlargeFonts: %t\nlanguage:   %s\ntheme:      %s\n",
		p.DarkMode, p.LargeFonts, p.Language, p.Theme())
}
