package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lttslabs/etlctl/internal/api"
	"github.com/lttslabs/etlctl/internal/formatter"
	"github.com/lttslabs/etlctl/internal/shared"
	"github.com/urfave/cli/v3"
)

// MissionList prints all missions in the requested format.
func (r *Runner) MissionList(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	missions, err := r.missions.All(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(missions, true)
	}

	rendered, err := formatter.RenderMissions(missions, cmd.String("format"))
	if err != nil {
		return err
	}

	if output := cmd.String("output"); output != "" {
		path, err := formatter.WriteExport(rendered, output, "missions", cmd.String("format"))
		if err != nil {
			return err
		}
		return r.writePlain("✓ Wrote %s\n", path)
	}

	return r.writePlain("%s", rendered)
}

// readPipeline loads a JSON pipeline definition from disk.
func readPipeline(path string) (*api.MissionData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline definition: %w", err)
	}

	var pipeline api.MissionData
	if err := json.Unmarshal(data, &pipeline); err != nil {
		return nil, fmt.Errorf("%w: failed to parse pipeline definition: %v", shared.ErrInvalidInput, err)
	}
	return &pipeline, nil
}

// MissionAdd creates a mission from a pipeline definition file.
func (r *Runner) MissionAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	pipeline, err := readPipeline(cmd.String("file"))
	if err != nil {
		return err
	}

	req := api.SaveMissionRequest{
		Name:   cmd.String("name"),
		Cron:   cmd.String("cron"),
		Params: *pipeline,
	}

	if err := r.missions.Add(ctx, req); err != nil {
		return err
	}
	return r.writePlain("✓ Created mission %s\n", req.Name)
}

// MissionUpdate edits an existing mission.
func (r *Runner) MissionUpdate(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	pipeline, err := readPipeline(cmd.String("file"))
	if err != nil {
		return err
	}

	req := api.SaveMissionRequest{
		ID:     cmd.String("id"),
		Name:   cmd.String("name"),
		Cron:   cmd.String("cron"),
		Params: *pipeline,
	}

	if err := r.missions.Update(ctx, req); err != nil {
		return err
	}
	return r.writePlain("✓ Updated mission %s\n", req.Name)
}

// MissionDelete removes a mission by ID.
func (r *Runner) MissionDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: mission ID", shared.ErrMissingArgument)
	}

	if err := r.missions.Delete(ctx, id); err != nil {
		return err
	}
	return r.writePlain("✓ Deleted mission %s\n", id)
}

// MissionRun places a mission into the scheduler.
func (r *Runner) MissionRun(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: mission ID", shared.ErrMissingArgument)
	}

	if err := r.missions.Run(ctx, id); err != nil {
		return err
	}
	return r.writePlain("✓ Mission %s scheduled\n", id)
}

// MissionStop removes a mission from the scheduler.
func (r *Runner) MissionStop(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: mission ID", shared.ErrMissingArgument)
	}

	if err := r.missions.Stop(ctx, id); err != nil {
		return err
	}
	return r.writePlain("✓ Mission %s stopped\n", id)
}

// MissionRunOnce triggers a single manual execution.
func (r *Runner) MissionRunOnce(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: mission ID", shared.ErrMissingArgument)
	}

	record, err := r.missions.RunOnce(ctx, id)
	if err != nil {
		return err
	}

	if record != "" {
		return r.writePlain("✓ Run started (record %s)\n", record)
	}
	return r.writePlain("✓ Run started\n")
}

// MissionComponents prints the pipeline component catalogue.
func (r *Runner) MissionComponents(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	catalogue, err := r.missions.TypeByComponent(ctx)
	if err != nil {
		return err
	}
	return r.writeJSON(catalogue, cmd.Bool("pretty"))
}
