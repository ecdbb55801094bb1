package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	server := &srv{}

	app := &cli.App{
		Name:  "pandamarket",
		Usage: "The pandamarket backend server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the toml configuration file",
				Value:   "config.toml",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "api",
				Usage:  "Start the api server",
				Action: server.startApi,
			},
			{
				Name:   "migrate",
				Usage:  "Migrate the database schema",
				Action: server.migrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
