package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lttslabs/etlctl/internal/shared"
	"github.com/urfave/cli/v3"
)

// FileList prints one page of uploaded files.
func (r *Runner) FileList(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	page, err := r.files.List(ctx, int(cmd.Int("page")), int(cmd.Int("size")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}

	r.writePlain("Files: %d total\n\n", page.Total)
	for i, file := range page.List {
		r.writePlain("%d. %s (%d bytes) id=%s\n", i+1, file.Name, file.Size, file.ID)
	}
	return nil
}

// FileUpload sends a local file to the backend.
func (r *Runner) FileUpload(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: file path", shared.ErrMissingArgument)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	r.logger.Info("uploading file", "path", path)

	uploaded, err := r.files.Upload(ctx, filepath.Base(path), f)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Uploaded %s (id=%s, %d bytes)\n", uploaded.Name, uploaded.ID, uploaded.Size)
}

// FileDelete removes an uploaded file by ID.
func (r *Runner) FileDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: file ID", shared.ErrMissingArgument)
	}

	if err := r.files.Delete(ctx, id); err != nil {
		return err
	}
	return r.writePlain("✓ Deleted file %s\n", id)
}

// FileByRecord lists the files produced by one run record.
func (r *Runner) FileByRecord(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: record ID", shared.ErrMissingArgument)
	}

	files, err := r.files.ListByTaskRecord(ctx, id)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return r.writePlain("No files for record %s\n", id)
	}

	for i, file := range files {
		r.writePlain("%d. %s (%d bytes) id=%s\n", i+1, file.Name, file.Size, file.ID)
	}
	return nil
}
