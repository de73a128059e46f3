package commands

import (
	"encoding/json"
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/ganot/activitylog/internal/domain/activity"
	"github.com/spf13/cobra"
)

func IconCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "icon <action>",
		Short:        "Print the icon for an action",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), activity.IconFor(args[0]))
			return nil
		},
	}
}

func IconsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "icons",
		Short:        "List the action icon catalog",
		RunE:         runIcons,
		SilenceUsage: true,
	}
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")
	return cmd
}

func runIcons(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	icons := activity.Icons()

	switch output {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(icons)
	case "table":
		actions := make([]string, 0, len(icons))
		for action := range icons {
			actions = append(actions, action)
		}
		slices.Sort(actions)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ACTION\tICON")
		for _, action := range actions {
			fmt.Fprintf(w, "%s\t%s\n", action, icons[action])
		}
		fmt.Fprintf(w, "(default)\t%s\n", activity.DefaultIcon)
		return w.Flush()
	default:
		return fmt.Errorf("unsupported output format %q", output)
	}
}
