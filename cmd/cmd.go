// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand initializes local state
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize config file, local database, and run migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "rollback",
				Usage: "Roll back the most recent migration instead of applying",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles the local session lifecycle
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Log in and out of TwiLight",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authenticate with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create an account and log in",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Display name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Clear the stored session",
				Action: r.AuthLogout,
			},
			{
				Name:   "whoami",
				Usage:  "Show the current session",
				Action: r.AuthWhoami,
			},
		},
	}
}

// twitterCommand handles the account-link handshake
func twitterCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "twitter",
		Aliases: []string{"tw"},
		Usage:   "Connect and disconnect the Twitter account",
		Commands: []*cli.Command{
			{
				Name:  "connect",
				Usage: "Run the authorization handshake in the browser",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "timeout",
						Usage: "Seconds to wait for the authorization callback",
						Value: 300,
					},
				},
				Action: r.TwitterConnect,
			},
			{
				Name:  "callback",
				Usage: "Complete the handshake with explicit callback parameters",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "oauth-token",
						Usage: "oauth_token from the provider redirect",
					},
					&cli.StringFlag{
						Name:  "oauth-verifier",
						Usage: "oauth_verifier from the provider redirect",
					},
				},
				Action: r.TwitterCallback,
			},
			{
				Name:  "disconnect",
				Usage: "Unlink the Twitter account",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "yes",
						Usage: "Skip the confirmation prompt",
					},
				},
				Action: r.TwitterDisconnect,
			},
			{
				Name:   "status",
				Usage:  "Show the linked account",
				Action: r.TwitterStatus,
			},
		},
	}
}

// contentCommand edits the content generation configuration
func contentCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "content",
		Usage: "View and edit the content configuration",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the current configuration",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ContentShow,
			},
			{
				Name:  "save",
				Usage: "Save the configuration (unset flags keep server values)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "topic",
						Usage: "Topic to generate content about",
					},
					&cli.StringFlag{
						Name:  "tone",
						Usage: "Tone: professional, casual, humorous, inspirational",
					},
					&cli.StringFlag{
						Name:  "length",
						Usage: "Length: short, medium, long",
					},
					&cli.BoolFlag{
						Name:  "hashtags",
						Usage: "Include hashtags",
					},
					&cli.BoolFlag{
						Name:  "emojis",
						Usage: "Include emojis",
					},
				},
				Action: r.ContentSave,
			},
		},
	}
}

// scheduleCommand edits the posting schedule
func scheduleCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "schedule",
		Usage: "View and edit the posting schedule",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the current schedule",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ScheduleShow,
			},
			{
				Name:  "save",
				Usage: "Save the schedule (unset flags keep server values)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "frequency",
						Usage: "Frequency: hourly, daily, weekly",
					},
					&cli.StringFlag{
						Name:  "time",
						Usage: "Time of day, HH:MM",
					},
					&cli.StringFlag{
						Name:  "timezone",
						Usage: "IANA timezone name",
					},
				},
				Action: r.ScheduleSave,
			},
			{
				Name:  "toggle",
				Usage: "Enable or disable automation",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "enabled",
					},
				},
				Action: r.ScheduleToggle,
			},
		},
	}
}

// postsCommand reads and generates posts
func postsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "posts",
		Usage: "List recent posts and trigger generation",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recent posts",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of posts to return",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format: text, json, csv",
						Value: "text",
					},
				},
				Action: r.PostsList,
			},
			{
				Name:  "generate",
				Usage: "Trigger one generate/publish cycle",
				Action: r.PostsGenerate,
			},
		},
	}
}

// dashboardCommand renders the aggregated dashboard
func dashboardCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "dashboard",
		Aliases: []string{"dash"},
		Usage:   "Refresh and render the dashboard",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "cached",
				Usage: "Render from the local snapshot cache without fetching",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "markdown",
				Usage: "Output a Markdown report",
			},
		},
		Action: r.Dashboard,
	}
}

// tuiCommand launches the interactive dashboard
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Launch the interactive dashboard",
		Action: r.TUI,
	}
}
