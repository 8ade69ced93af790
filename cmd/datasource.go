package main

import (
	"context"
	"fmt"

	"github.com/lttslabs/etlctl/internal/api"
	"github.com/lttslabs/etlctl/internal/shared"
	"github.com/urfave/cli/v3"
)

// DataSourceList prints the configured data sources.
func (r *Runner) DataSourceList(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	sources, err := r.dataSources.List(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(sources, cmd.Bool("pretty"))
	}

	r.writePlain("Data sources: %d\n\n", len(sources))
	for i, source := range sources {
		r.writePlain("%d. %s (%s) id=%s\n", i+1, source.Name, source.Type, source.ID)
	}
	return nil
}

// DataSourceTypes prints the connector type catalogue.
func (r *Runner) DataSourceTypes(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	types, err := r.dataSources.Types(ctx)
	if err != nil {
		return err
	}

	return r.writeJSON(types, cmd.Bool("pretty"))
}

// DataSourceSave creates a data source, or edits one when --id is set.
func (r *Runner) DataSourceSave(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	data, err := parseKeyValues(cmd.StringSlice("param"))
	if err != nil {
		return err
	}

	req := api.SaveDataSourceRequest{
		ID:   cmd.String("id"),
		Name: cmd.String("name"),
		Type: cmd.String("type"),
		Data: data,
		Edit: "false",
	}
	if req.ID != "" {
		req.Edit = "true"
	}

	if err := r.dataSources.Save(ctx, req); err != nil {
		return err
	}
	return r.writePlain("✓ Saved data source %s\n", req.Name)
}

// DataSourceDelete removes a data source by ID.
func (r *Runner) DataSourceDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: data source ID", shared.ErrMissingArgument)
	}

	if err := r.dataSources.Delete(ctx, id); err != nil {
		return err
	}
	return r.writePlain("✓ Deleted data source %s\n", id)
}
