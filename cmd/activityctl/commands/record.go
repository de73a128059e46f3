package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ganot/activitylog/internal/domain/activity"
	"github.com/spf13/cobra"
)

func RecordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record an activity",
		Long: `Record an activity at the head of the log.

The icon is taken from the action catalog unless --icon is given. Target and
details flags that are not passed are stored as null.

Examples:
  activityctl record --user-id u1 --user-name Ana --action login
  activityctl record --user-id u1 --user-name Ana --action job_update \
    --target-type job --target-id J-7 --details "Moved to planning" --extra priority=high`,
		RunE:         runRecord,
		SilenceUsage: true,
	}

	cmd.Flags().String("user-id", "", "ID of the user who performed the action")
	cmd.Flags().String("user-name", "", "Display name of the user")
	cmd.Flags().String("action", "", "Action key, e.g. job_create")
	cmd.Flags().String("target-type", "", "Kind of entity acted upon")
	cmd.Flags().String("target-id", "", "ID of the entity acted upon")
	cmd.Flags().String("target-name", "", "Display name of the entity acted upon")
	cmd.Flags().String("details", "", "Free text description")
	cmd.Flags().String("icon", "", "Display glyph (defaults to the action's icon)")
	cmd.Flags().StringToString("extra", nil, "Extra data as key=value pairs")
	cmd.Flags().StringP("output", "o", "text", "Output format: text or json")

	_ = cmd.MarkFlagRequired("user-id")
	_ = cmd.MarkFlagRequired("user-name")
	_ = cmd.MarkFlagRequired("action")

	return cmd
}

func runRecord(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output != "text" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	req := activity.RecordRequest{
		TargetType: optionalFlag(cmd, "target-type"),
		TargetID:   optionalFlag(cmd, "target-id"),
		TargetName: optionalFlag(cmd, "target-name"),
		Details:    optionalFlag(cmd, "details"),
	}
	req.UserID, _ = cmd.Flags().GetString("user-id")
	req.UserName, _ = cmd.Flags().GetString("user-name")
	req.Action, _ = cmd.Flags().GetString("action")
	if strings.TrimSpace(req.Action) == "" {
		return fmt.Errorf("--action must not be empty")
	}

	req.Icon, _ = cmd.Flags().GetString("icon")
	if req.Icon == "" {
		req.Icon = activity.IconFor(req.Action)
	}

	extra, _ := cmd.Flags().GetStringToString("extra")
	if len(extra) > 0 {
		req.ExtraData = make(map[string]any, len(extra))
		for k, v := range extra {
			req.ExtraData[k] = v
		}
	}

	svc, closeFn, err := openService(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	rec, err := svc.Record(cmd.Context(), req)
	if err != nil {
		return err
	}

	if output == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s by %s (%s)\n", rec.Icon, rec.ID, rec.Action, rec.UserName, rec.Timestamp)
	return nil
}

func optionalFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, _ := cmd.Flags().GetString(name)
	return &value
}
