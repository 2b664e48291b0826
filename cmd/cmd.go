// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand initializes local state
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize database and run migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.SetupDatabase,
		Commands: []*cli.Command{
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Action: r.SetupRollback,
			},
		},
	}
}

// authCommand handles session lifecycle operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the signed-in session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in with email and password",
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
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create an account and sign in",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Public username",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "status",
				Usage:  "Show session state and the signed-in account",
				Action: r.AuthStatus,
			},
			{
				Name:   "refresh",
				Usage:  "Force a token renewal",
				Action: r.AuthRefresh,
			},
			{
				Name:   "logout",
				Usage:  "Discard stored credentials",
				Action: r.AuthLogout,
			},
		},
	}
}

// feedCommand launches the interactive feed
func feedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "feed",
		Usage:  "Browse the recommendation feed interactively",
		Action: r.Feed,
	}
}

// videosCommand handles direct video operations
func videosCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "videos",
		Aliases: []string{"v"},
		Usage:   "Video lookups and engagement",
		Commands: []*cli.Command{
			{
				Name:    "recommendations",
				Aliases: []string{"recs"},
				Usage:   "Fetch a recommendation page",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.VideoRecommendations,
			},
			{
				Name:  "info",
				Usage: "Show a video's counts and like status",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.VideoInfo,
			},
			{
				Name:  "like",
				Usage: "Toggle like on a video",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.VideoLike,
			},
			{
				Name:  "comments",
				Usage: "List a video's comments",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.VideoComments,
			},
			{
				Name:  "comment",
				Usage: "Post a comment on a video",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
					&cli.StringArg{Name: "content"},
				},
				Action: r.VideoComment,
			},
			{
				Name:  "watch",
				Usage: "Open a video's stream in the browser",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.VideoWatch,
			},
			{
				Name:  "cached",
				Usage: "List recently seen videos from the local cache",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of videos to list",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.VideoCached,
			},
		},
	}
}

// profileCommand shows user profiles
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Show a user's profile and uploads",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "user-id"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.ProfileShow,
	}
}

// adminCommand handles the moderation review queue
func adminCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Moderation review queue operations",
		Commands: []*cli.Command{
			{
				Name:  "queue",
				Usage: "List rejected videos and comments",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AdminQueue,
			},
			{
				Name:  "approve-video",
				Usage: "Clear a video's rejection",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.AdminApproveVideo,
			},
			{
				Name:  "approve-comment",
				Usage: "Clear a comment's rejection",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.AdminApproveComment,
			},
			{
				Name:  "export",
				Usage: "Export the review queue to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown, or text",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path or base name",
					},
				},
				Action: r.AdminExport,
			},
		},
	}
}

// serveCommand runs the local stream proxy
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run a local proxy so media players can stream videos",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to listen on",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on",
			},
		},
		Action: r.Serve,
	}
}
