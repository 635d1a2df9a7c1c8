package main

import (
	"os"

	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
)

func main() {
	app := &cli.App{
		Name:  "mython",
		Usage: "mython interpreter",
		ExitErrHandler: func(_ *cli.Context, err error) {
			if err == nil {
				return
			}
			tracerr.PrintSourceColor(tracerr.Wrap(err))
			os.Exit(1)
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "run a program file",
				ArgsUsage: "FILE",
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						return cli.Exit("no input file provided", 1)
					}
					return RunFile(path)
				},
			},
			{
				Name:      "tokens",
				Usage:     "dump the token stream of a file",
				ArgsUsage: "FILE",
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						return cli.Exit("no input file provided", 1)
					}
					return DumpTokens(path)
				},
			},
			{
				Name:  "repl",
				Usage: "start an interactive prompt",
				Action: func(_ *cli.Context) error {
					return RunPrompt()
				},
			},
		},
	}
	app.Run(os.Args)
}
