package main

import (
	"context"
	"fmt"

	"github.com/lttslabs/etlctl/internal/api"
	"github.com/lttslabs/etlctl/internal/formatter"
	"github.com/lttslabs/etlctl/internal/shared"
	"github.com/urfave/cli/v3"
)

// parseRecordStatus maps the --status flag onto the backend's values.
func parseRecordStatus(value string) (int, error) {
	switch value {
	case "running":
		return api.RecordStatusRunning, nil
	case "success":
		return api.RecordStatusSuccess, nil
	case "failed":
		return api.RecordStatusFailed, nil
	case "any", "":
		return api.RecordStatusAny, nil
	default:
		return 0, fmt.Errorf("%w: unknown status %q", shared.ErrInvalidFlag, value)
	}
}

// RunLogList prints one page of run records in the requested format.
func (r *Runner) RunLogList(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	status, err := parseRecordStatus(cmd.String("status"))
	if err != nil {
		return err
	}

	filter := api.RecordFilter{
		MissionName: cmd.String("mission"),
		Status:      status,
		ID:          cmd.String("id"),
	}

	page, err := r.runLogs.Records(ctx, int(cmd.Int("page")), int(cmd.Int("size")), filter)
	if err != nil {
		return err
	}

	rendered, err := formatter.RenderRecords(page.List, page.Total, cmd.String("format"))
	if err != nil {
		return err
	}

	if output := cmd.String("output"); output != "" {
		path, err := formatter.WriteExport(rendered, output, "run_records", cmd.String("format"))
		if err != nil {
			return err
		}
		return r.writePlain("✓ Wrote %s\n", path)
	}

	return r.writePlain("%s", rendered)
}

// RunLogCancel forcibly terminates a running record.
func (r *Runner) RunLogCancel(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: record ID", shared.ErrMissingArgument)
	}

	message, err := r.runLogs.Cancel(ctx, id)
	if err != nil {
		return err
	}

	if message != "" {
		return r.writePlain("✓ %s\n", message)
	}
	return r.writePlain("✓ Cancel requested for record %s\n", id)
}
