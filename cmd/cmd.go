// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand handles database and configuration setup.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize configuration and database",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}

// recordsCommand handles collection operations.
func recordsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "records",
		Aliases: []string{"rec"},
		Usage:   "Record collection operations",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a record to the collection",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "artist",
						Aliases:  []string{"a"},
						Usage:    "Artist name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "title",
						Aliases:  []string{"t"},
						Usage:    "Release title",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "year",
						Usage: "Release year",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Physical format (LP, EP, 7\", ...)",
						Value: "LP",
					},
					&cli.StringFlag{
						Name:  "cover",
						Usage: "Cover image URL",
					},
					&cli.StringFlag{
						Name:  "notes",
						Usage: "Free-form notes",
					},
					&cli.BoolFlag{
						Name:  "owned",
						Usage: "Mark as owned",
					},
					&cli.BoolFlag{
						Name:  "wishlist",
						Usage: "Mark as wishlist entry",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output the created record as JSON",
					},
				},
				Action: r.RecordsAdd,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List records in the collection",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "view",
						Usage: "View to list: all, owned, wishlist, favorites",
						Value: "all",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.RecordsList,
			},
			{
				Name:  "get",
				Usage: "Show a single record",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.RecordsGet,
			},
			{
				Name:  "update",
				Usage: "Update fields of an existing record",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "artist",
						Aliases: []string{"a"},
						Usage:   "Artist name",
					},
					&cli.StringFlag{
						Name:    "title",
						Aliases: []string{"t"},
						Usage:   "Release title",
					},
					&cli.IntFlag{
						Name:  "year",
						Usage: "Release year",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Physical format",
					},
					&cli.StringFlag{
						Name:  "cover",
						Usage: "Cover image URL",
					},
					&cli.StringFlag{
						Name:  "notes",
						Usage: "Free-form notes",
					},
					&cli.BoolFlag{
						Name:  "owned",
						Usage: "Owned flag",
					},
					&cli.BoolFlag{
						Name:  "wishlist",
						Usage: "Wishlist flag",
					},
				},
				Action: r.RecordsUpdate,
			},
			{
				Name:    "delete",
				Aliases: []string{"rm"},
				Usage:   "Remove a record from the collection",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.RecordsDelete,
			},
			{
				Name:    "favorite",
				Aliases: []string{"fav"},
				Usage:   "Toggle the favorite flag of a record",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.RecordsFavorite,
			},
			{
				Name:  "ordered",
				Usage: "Toggle the ordered flag of a record",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.RecordsOrdered,
			},
			{
				Name:  "import",
				Usage: "Import records from a JSON file",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to JSON file with records",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "mode",
						Aliases: []string{"m"},
						Usage:   "Import mode: merge or replace",
						Value:   "merge",
					},
				},
				Action: r.RecordsImport,
			},
			{
				Name:  "export",
				Usage: "Export the collection to a file",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format: json, csv, markdown, text",
						Value: "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: stdout)",
					},
					&cli.StringFlag{
						Name:  "view",
						Usage: "View to export: all, owned, wishlist, favorites",
						Value: "all",
					},
				},
				Action: r.RecordsExport,
			},
		},
	}
}

// coversCommand handles cover artwork verification.
func coversCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "covers",
		Usage: "Cover artwork operations",
		Commands: []*cli.Command{
			{
				Name:  "verify",
				Usage: "Check that cover URLs are reachable",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output the report as JSON",
					},
				},
				Action: r.CoversVerify,
			},
		},
	}
}

// tuiCommand launches the interactive terminal UI.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Browse and edit the collection interactively",
		Flags:  []cli.Flag{configFlag()},
		Action: r.TUI,
	}
}
