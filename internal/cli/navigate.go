package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fittrack/fittrack/internal/core/domain"
	"github.com/fittrack/fittrack/internal/core/gate"
)

func (a *app) navigateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "navigate <path>",
		Short: "Decide what the app does when opening path",
		Long: `Resolve path against the route table for the current session and print
the verdict: render, redirect <location>, defer or not_found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := a.table.Navigate(a.session.Snapshot(), args[0])
			if d.Outcome == gate.Redirect {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", d.Outcome, d.Location)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.Outcome)
			return nil
		},
	}
}

func (a *app) routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "PATH\tACCESS\tROLES\tON DENY")
			for _, r := range a.table.Rules() {
				access := r.Access
				roles := "-"
				if access == domain.AccessProtected {
					roles = joinRoles(r.Roles)
				}
				onDeny := "-"
				if access != domain.AccessOpen {
					onDeny = r.Fallback()
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Pattern, access, roles, onDeny)
			}
			return tw.Flush()
		},
	}
}

func joinRoles(roles []domain.Role) string {
	if len(roles) == 0 {
		return "any"
	}
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, ",")
}
