// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
	}
}

// setupCommand handles first-run setup
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and storage",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Create the config file if missing and run database migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   configFile,
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "rollback",
				Usage: "Roll back the most recent database migration",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   configFile,
					},
				},
				Action: r.SetupRollback,
			},
		},
	}
}

// songsCommand handles catalog operations
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "songs",
		Aliases: []string{"s"},
		Usage:   "Song catalog operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List songs with days to goal and progress",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "search",
						Aliases: []string{"q"},
						Usage:   "Filter by name, album or artist",
					},
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort column (name, album, artist, total, daily, goal, days, progress)",
						Value: "name",
					},
					&cli.StringFlag{
						Name:  "dir",
						Usage: "Sort direction (asc, desc)",
						Value: "asc",
					},
				}, outputFlags()...),
				Action: r.SongsList,
			},
			{
				Name:  "show",
				Usage: "Show a single song, matching the name loosely",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name:      "name",
						UsageText: "Song name",
					},
				},
				Flags:  outputFlags(),
				Action: r.SongsShow,
			},
			{
				Name:  "import",
				Usage: "Replace the catalog with songs from a CSV file",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Action: r.SongsImport,
			},
			{
				Name:  "export",
				Usage: "Export the catalog",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (csv, markdown, text, json)",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (stdout when empty)",
					},
				},
				Action: r.SongsExport,
			},
			{
				Name:   "stats",
				Usage:  "Show catalog totals",
				Flags:  outputFlags(),
				Action: r.SongsStats,
			},
			{
				Name:  "albums",
				Usage: "Show featured album totals",
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Show every album instead of the featured list",
					},
				}, outputFlags()...),
				Action: r.SongsAlbums,
			},
			{
				Name:   "artists",
				Usage:  "Show tracked artist totals",
				Flags:  outputFlags(),
				Action: r.SongsArtists,
			},
			{
				Name:  "focus",
				Usage: "Show today's focus song",
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:  "open",
						Usage: "Open the focus playlist in the browser",
					},
				}, outputFlags()...),
				Action: r.SongsFocus,
			},
			{
				Name:   "simulate",
				Usage:  "Estimate when the focus song reaches its daily goal",
				Flags:  outputFlags(),
				Action: r.SongsSimulate,
			},
		},
	}
}

// goalsCommand handles goal progression
func goalsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "goals",
		Usage: "Cumulative stream goal operations",
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Show the current goal, level and recent goals",
				Flags:  outputFlags(),
				Action: r.GoalsStatus,
			},
			{
				Name:   "levels",
				Usage:  "List goal tiers",
				Flags:  outputFlags(),
				Action: r.GoalsLevels,
			},
			{
				Name:   "recompute",
				Usage:  "Recompute progress from the catalog and roll over reached goals",
				Flags:  outputFlags(),
				Action: r.GoalsRecompute,
			},
		},
	}
}

// missionsCommand handles daily missions
func missionsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "missions",
		Aliases: []string{"m"},
		Usage:   "Daily mission operations",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List missions and today's completion state",
				Flags:  outputFlags(),
				Action: r.MissionsList,
			},
			{
				Name:  "complete",
				Usage: "Complete a mission for the signed-in fan",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name:      "key",
						UsageText: "Mission key (daily_login, use_calculator, search_song, vote, listen_focus, listen_playlist)",
					},
				},
				Flags:  outputFlags(),
				Action: r.MissionsComplete,
			},
		},
	}
}

func rankingCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "ranking",
		Usage: "Show the fan leaderboard",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "markdown",
				Usage: "Output a Markdown table",
			},
		}, outputFlags()...),
		Action: r.Ranking,
	}
}

func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Sign in, creating the account on first use",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "email",
				Aliases:  []string{"e"},
				Usage:    "Account email",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "password",
				Aliases:  []string{"p"},
				Usage:    "Account password",
				Required: true,
			},
		},
		Action: r.Login,
	}
}

func logoutCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Sign out",
		Action: r.Logout,
	}
}

func whoamiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "whoami",
		Usage:  "Show the signed-in fan",
		Flags:  outputFlags(),
		Action: r.Whoami,
	}
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the dashboard JSON API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Address to listen on (defaults to server.host)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on (defaults to server.port)",
			},
		},
		Action: r.Serve,
	}
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Launch the interactive dashboard",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "File that receives logs while the TUI owns the terminal",
				Value: "./tmp/fanstats-tui.log",
			},
		},
		Action: r.TUI,
	}
}

// storeCommand inspects the key-value store
func storeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "store",
		Usage: "Inspect stored keys",
		Commands: []*cli.Command{
			{
				Name:  "keys",
				Usage: "List stored keys",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Show every key the dashboard uses, set or not",
					},
				},
				Action: r.StoreKeys,
			},
			{
				Name:  "get",
				Usage: "Print the raw value stored under a key",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "key"},
				},
				Action: r.StoreGet,
			},
			{
				Name:  "history",
				Usage: "Show recent writes",
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of entries (0 for all)",
						Value: 20,
					},
				}, outputFlags()...),
				Action: r.StoreHistory,
			},
		},
	}
}
