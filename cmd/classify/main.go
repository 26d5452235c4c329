package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

const (
	inputFlag            = "input"
	outputFlag           = "output"
	htmlFlag             = "html"
	formatFlag           = "format"
	scoreColumnFlag      = "score-column"
	tournamentColumnFlag = "tournament-column"
	workersFlag          = "workers"
	tournamentFlag       = "tournament"
	explainFlag          = "explain"
	subjectFlag          = "subject"
	roleFlag             = "role"
	ttlFlag              = "ttl"
	stdoutCLIName        = "-"
)

var build string
var semanticVersion = "v0.1.0-dev" + build

func main() {
	// A missing .env is fine for the CLI
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "classify",
		Usage:   "Label tennis scores as straight sets (0), decider (1) or unclassified (-1)",
		Version: semanticVersion,
		Commands: []*cli.Command{
			scoreCommand(),
			fileCommand(),
			samplesCommand(),
			tokenCommand(),
		},
	}
}
