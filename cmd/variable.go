package main

import (
	"context"
	"fmt"

	"github.com/lttslabs/etlctl/internal/api"
	"github.com/lttslabs/etlctl/internal/shared"
	"github.com/urfave/cli/v3"
)

// VariableList prints the configured system variables.
func (r *Runner) VariableList(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	variables, err := r.variables.List(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(variables, cmd.Bool("pretty"))
	}

	r.writePlain("Variables: %d\n\n", len(variables))
	for i, variable := range variables {
		line := fmt.Sprintf("%d. %s (%s) id=%s", i+1, variable.Name, variable.Type, variable.ID)
		if variable.DataSource != nil {
			line += fmt.Sprintf(" datasource=%s", variable.DataSource.Name)
		}
		r.writePlain("%s\n", line)
	}
	return nil
}

// VariableTypes prints the variable type catalogue.
func (r *Runner) VariableTypes(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	types, err := r.variables.Types(ctx)
	if err != nil {
		return err
	}

	return r.writeJSON(types, cmd.Bool("pretty"))
}

// VariableSave creates a variable, or edits one when --id is set.
func (r *Runner) VariableSave(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	value, err := parseKeyValues(cmd.StringSlice("value"))
	if err != nil {
		return err
	}

	req := api.SaveVariableRequest{
		ID:          cmd.String("id"),
		Name:        cmd.String("name"),
		Type:        cmd.String("type"),
		Description: cmd.String("description"),
		Value:       value,
		Edit:        "false",
	}
	if req.ID != "" {
		req.Edit = "true"
	}
	if ds := cmd.String("datasource"); ds != "" {
		req.DataSourceID = &ds
	}

	if err := r.variables.Save(ctx, req); err != nil {
		return err
	}
	return r.writePlain("✓ Saved variable %s\n", req.Name)
}

// VariableDelete removes a variable by ID.
func (r *Runner) VariableDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: variable ID", shared.ErrMissingArgument)
	}

	if err := r.variables.Delete(ctx, id); err != nil {
		return err
	}
	return r.writePlain("✓ Deleted variable %s\n", id)
}

// VariableTest evaluates a variable against its backing source.
func (r *Runner) VariableTest(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: variable ID", shared.ErrMissingArgument)
	}

	result, err := r.variables.Test(ctx, id)
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", result)
}
