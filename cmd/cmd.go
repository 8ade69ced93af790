// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles local setup: config file, credential store, migrations.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize config file and credential store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles authentication against the backend.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Exchange credentials for a backend token",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Backend username",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Backend password",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "code",
						Usage: "Verification code, when the backend requires one",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Clear the stored token",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show current authentication state",
				Action: r.AuthStatus,
			},
		},
	}
}

// datasourceCommand handles data source operations.
func datasourceCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "datasource",
		Aliases: []string{"ds"},
		Usage:   "Manage backend data sources",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List configured data sources",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output", Value: true},
				},
				Action: r.DataSourceList,
			},
			{
				Name:  "types",
				Usage: "Show the data source type catalogue",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output", Value: true},
				},
				Action: r.DataSourceTypes,
			},
			{
				Name:  "save",
				Usage: "Create a data source, or edit one with --id",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "Data source ID (edit mode)"},
					&cli.StringFlag{Name: "name", Usage: "Data source name", Required: true},
					&cli.StringFlag{Name: "type", Usage: "Connector type", Required: true},
					&cli.StringSliceFlag{
						Name:    "param",
						Aliases: []string{"P"},
						Usage:   "Connection parameter as key=value (repeatable)",
					},
				},
				Action: r.DataSourceSave,
			},
			{
				Name:  "delete",
				Usage: "Delete a data source by ID",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.DataSourceDelete,
			},
		},
	}
}

// variableCommand handles system variable operations.
func variableCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "variable",
		Aliases: []string{"var"},
		Usage:   "Manage system variables",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List configured variables",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output", Value: true},
				},
				Action: r.VariableList,
			},
			{
				Name:  "types",
				Usage: "Show the variable type catalogue",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output", Value: true},
				},
				Action: r.VariableTypes,
			},
			{
				Name:  "save",
				Usage: "Create a variable, or edit one with --id",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "Variable ID (edit mode)"},
					&cli.StringFlag{Name: "name", Usage: "Variable name", Required: true},
					&cli.StringFlag{Name: "type", Usage: "Variable type", Required: true},
					&cli.StringFlag{Name: "datasource", Usage: "Backing data source ID"},
					&cli.StringFlag{Name: "description", Usage: "Variable description"},
					&cli.StringSliceFlag{
						Name:    "value",
						Aliases: []string{"V"},
						Usage:   "Value parameter as key=value (repeatable)",
					},
				},
				Action: r.VariableSave,
			},
			{
				Name:  "delete",
				Usage: "Delete a variable by ID",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.VariableDelete,
			},
			{
				Name:  "test",
				Usage: "Evaluate a variable and print the resolved value",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.VariableTest,
			},
		},
	}
}

// missionCommand handles scheduled-task operations.
func missionCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "mission",
		Aliases: []string{"task"},
		Usage:   "Manage ETL missions",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all missions",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: text, csv, or md",
						Value:   "text",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the listing to a file instead of stdout",
					},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.MissionList,
			},
			{
				Name:  "add",
				Usage: "Create a mission from a pipeline definition file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Mission name", Required: true},
					&cli.StringFlag{
						Name:  "cron",
						Usage: "Cron expression, or 'manual' for on-demand missions",
						Value: "manual",
					},
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to a JSON pipeline definition",
						Required: true,
					},
				},
				Action: r.MissionAdd,
			},
			{
				Name:  "update",
				Usage: "Update an existing mission",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "Mission ID", Required: true},
					&cli.StringFlag{Name: "name", Usage: "Mission name", Required: true},
					&cli.StringFlag{Name: "cron", Usage: "Cron expression or 'manual'", Value: "manual"},
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to a JSON pipeline definition",
						Required: true,
					},
				},
				Action: r.MissionUpdate,
			},
			{
				Name:  "delete",
				Usage: "Delete a mission by ID (scheduling missions must be stopped first)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.MissionDelete,
			},
			{
				Name:  "run",
				Usage: "Place a mission into the scheduler",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.MissionRun,
			},
			{
				Name:  "stop",
				Usage: "Remove a mission from the scheduler",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.MissionStop,
			},
			{
				Name:  "run-once",
				Usage: "Trigger a single manual execution",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.MissionRunOnce,
			},
			{
				Name:  "components",
				Usage: "Show the pipeline component catalogue",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output", Value: true},
				},
				Action: r.MissionComponents,
			},
		},
	}
}

// runlogCommand handles run record operations.
func runlogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "runlog",
		Aliases: []string{"logs"},
		Usage:   "Inspect mission run records",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List run records",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "page", Usage: "Page number", Value: 1},
					&cli.IntFlag{Name: "size", Usage: "Page size", Value: 20},
					&cli.StringFlag{Name: "mission", Usage: "Filter by mission name"},
					&cli.StringFlag{
						Name:  "status",
						Usage: "Filter by status: running, success, failed, or any",
						Value: "any",
					},
					&cli.StringFlag{Name: "id", Usage: "Filter by record ID"},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: text, csv, or md",
						Value:   "text",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the listing to a file instead of stdout",
					},
				},
				Action: r.RunLogList,
			},
			{
				Name:  "cancel",
				Usage: "Forcibly terminate a running record",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.RunLogCancel,
			},
		},
	}
}

// fileCommand handles uploaded-file operations.
func fileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "file",
		Usage: "Manage uploaded files",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List uploaded files",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "page", Usage: "Page number", Value: 1},
					&cli.IntFlag{Name: "size", Usage: "Page size", Value: 20},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.FileList,
			},
			{
				Name:  "upload",
				Usage: "Upload a local file to the backend",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Action: r.FileUpload,
			},
			{
				Name:  "delete",
				Usage: "Delete an uploaded file by ID",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.FileDelete,
			},
			{
				Name:  "by-record",
				Usage: "List the files produced by one run record",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.FileByRecord,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for the interactive console.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive console",
		Action:  r.TUI,
	}
}
