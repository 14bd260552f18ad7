// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

const defaultConfigPath = "routeforge.toml"

// command builds the root command. Invoked with paths it generates a server;
// subcommands cover inspection and config scaffolding.
func (r *Runner) command() *cli.Command {
	return &cli.Command{
		Name:      "routeforge",
		Usage:     "Generate an Express server from a graph description",
		UsageText: "routeforge [options] <input> [output]",
		Version:   "0.3.0",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      "input",
				UsageText: "Path to the graph document (.json, .yaml, .yml, .hcl)",
			},
			&cli.StringArg{
				Name:      "output",
				UsageText: "Destination of the generated source",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   defaultConfigPath,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Input format (json, yaml, hcl); detected from the extension when empty",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port the generated server listens on",
			},
			&cli.StringFlag{
				Name:  "propagation",
				Usage: "Admin propagation mode (transitive, direct)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Before:   r.Configure,
		Action:   r.Generate,
		Commands: []*cli.Command{inspectCommand(r), configCommand(r)},
	}
}

// inspectCommand prints the resolved model instead of writing source.
func inspectCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Print the resolved model of a graph document as JSON",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "input",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "source",
				Usage: "Print the generated source after the model",
			},
		},
		Action: r.Inspect,
	}
}

// configCommand handles configuration scaffolding.
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write the example configuration file",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name:  "path",
						Value: defaultConfigPath,
					},
				},
				Action: r.InitConfig,
			},
		},
	}
}
