package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/ajharbinger/tennis-decider/internal/auth"
	"github.com/ajharbinger/tennis-decider/internal/classifier"
	"github.com/ajharbinger/tennis-decider/internal/logger"
	"github.com/ajharbinger/tennis-decider/internal/models"
	"github.com/ajharbinger/tennis-decider/internal/services"
	"github.com/ajharbinger/tennis-decider/internal/table"
	"github.com/ajharbinger/tennis-decider/internal/writers"
	"github.com/ajharbinger/tennis-decider/pkg/config"
)

const fetchTimeout = 30 * time.Second

func scoreCommand() *cli.Command {
	return &cli.Command{
		Name:      "score",
		Usage:     "Classify a single score",
		ArgsUsage: "SCORE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    tournamentFlag,
				Aliases: []string{"t"},
				Usage:   "Tournament name; Grand Slams are best-of-5",
			},
			&cli.BoolFlag{
				Name:  explainFlag,
				Usage: "Print every step of the classification as YAML",
			},
		},
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() == 0 {
				return cli.Exit("a score is required, e.g. classify score \"6-4 6-3\"", 2)
			}
			score := strings.Join(cCtx.Args().Slice(), " ")

			var tournament *string
			if t := cCtx.String(tournamentFlag); t != "" {
				tournament = &t
			}

			result := classifier.Explain(&score, tournament)
			if !cCtx.Bool(explainFlag) {
				fmt.Fprintln(cCtx.App.Writer, int(result.Label))
				return nil
			}
			return encodeYAML(cCtx.App.Writer, result)
		},
	}
}

func fileCommand() *cli.Command {
	return &cli.Command{
		Name:  "file",
		Usage: "Classify every row of a CSV or HTML results table",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     inputFlag,
				Aliases:  []string{"i"},
				Usage:    "Path, URL, or \"-\" (for stdin) of the table to classify",
				Required: true,
			},
			&cli.StringFlag{
				Name:    outputFlag,
				Aliases: []string{"o"},
				Usage:   "The location to write the export. Can be a file path or \"-\" (for stdout).",
				Value:   stdoutCLIName,
			},
			&cli.BoolFlag{
				Name:  htmlFlag,
				Usage: "Input is an HTML page; read its first results table",
			},
			&cli.StringFlag{
				Name:    formatFlag,
				Aliases: []string{"f"},
				Usage:   "Export format: csv, json or yaml",
				Value:   string(services.FormatCSV),
			},
			&cli.StringFlag{
				Name:  scoreColumnFlag,
				Usage: "Score column name, detected from the headers when empty",
			},
			&cli.StringFlag{
				Name:  tournamentColumnFlag,
				Usage: "Tournament column name, detected from the headers when empty",
			},
			&cli.IntFlag{
				Name:  workersFlag,
				Usage: "Number of classification workers (default CLASSIFY_WORKERS)",
			},
		},
		Action: runFile,
	}
}

func runFile(cCtx *cli.Context) error {
	cfg := config.New()
	if w := cCtx.Int(workersFlag); w > 0 {
		cfg.ClassifyWorkers = w
	}
	log := logger.New(logger.Options{Level: cfg.LogLevel, Output: cCtx.App.ErrWriter})

	format, err := services.ParseExportFormat(cCtx.String(formatFlag))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	inputLocation := cCtx.String(inputFlag)
	tbl, err := readInput(cCtx.Context, inputLocation, cCtx.Bool(htmlFlag))
	if err != nil {
		return cli.Exit(err.Error(), 3)
	}

	svc := services.NewServices(cfg, log)
	run, err := svc.Classification.ClassifyTable(cCtx.Context, tbl, models.ColumnSelection{
		Score:      cCtx.String(scoreColumnFlag),
		Tournament: cCtx.String(tournamentColumnFlag),
	})
	if err != nil {
		return cli.Exit(err.Error(), 4)
	}

	data, err := svc.Export.Export(run, format)
	if err != nil {
		return cli.Exit(err.Error(), 3)
	}

	var outputWriter io.WriteCloser = writers.NopCloser(cCtx.App.Writer)
	if outputLocation := cCtx.String(outputFlag); outputLocation != stdoutCLIName {
		outputWriter = writers.NewLazyFile(outputLocation)
	}
	if _, err := outputWriter.Write(data); err != nil {
		return cli.Exit(fmt.Sprintf("writing export failed: %v", err), 3)
	}
	if err := outputWriter.Close(); err != nil {
		return cli.Exit(fmt.Sprintf("writing export failed on close: %v", err), 3)
	}

	printSummary(cCtx.App.ErrWriter, run)
	return nil
}

// readInput loads a table from a URL, a file or stdin. HTML is assumed for
// --html, .htm/.html files and URLs served as text/html.
func readInput(ctx context.Context, location string, isHTML bool) (*table.Table, error) {
	var body io.Reader

	switch {
	case location == stdoutCLIName:
		body = os.Stdin
	case isURL(location):
		ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return nil, fmt.Errorf("invalid URL %q: %w", location, err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("invalid HTTP status code received: %v", resp.Status)
		}
		if strings.Contains(resp.Header.Get("Content-Type"), "html") {
			isHTML = true
		}
		body = resp.Body
	default:
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("provided input was neither a valid URL or a path to an existing file: %w", err)
		}
		defer f.Close()
		switch strings.ToLower(filepath.Ext(location)) {
		case ".html", ".htm":
			isHTML = true
		}
		body = f
	}

	if isHTML {
		return table.ParseHTMLFirst(body)
	}
	return table.ParseCSV(body)
}

func isURL(location string) bool {
	u, err := url.ParseRequestURI(location)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

func printSummary(w io.Writer, run *models.ClassificationRun) {
	s := run.Summary
	fmt.Fprintf(w, "Score column: %s\n", run.Columns.Score)
	if run.Columns.HasTournament() {
		fmt.Fprintf(w, "Tournament column: %s\n", run.Columns.Tournament)
	} else {
		fmt.Fprintln(w, "Tournament column: none (all matches treated as best-of-3)")
	}
	fmt.Fprintf(w, "Total: %d\n", s.Total)
	fmt.Fprintf(w, "Straight (0): %d (%.1f%%)\n", s.Straight, s.StraightPct)
	fmt.Fprintf(w, "Decider (1): %d (%.1f%%)\n", s.Decider, s.DeciderPct)
	fmt.Fprintf(w, "Unclassified (-1): %d (%.1f%%)\n", s.Unclassified, s.UnclassifiedPct)
}

func samplesCommand() *cli.Command {
	return &cli.Command{
		Name:  "samples",
		Usage: "Classify the built-in quick-test scores",
		Action: func(cCtx *cli.Context) error {
			return printSamples(cCtx.App.Writer, classifier.RunScenarios(classifier.SampleScenarios()))
		},
	}
}

func printSamples(w io.Writer, results []classifier.ScenarioResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TOURNAMENT\tSCORE\tDETECTED")
	for _, r := range results {
		tournament := "None"
		if r.Tournament != nil {
			tournament = *r.Tournament
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\n", tournament, r.Score, int(r.Detected))
	}
	return tw.Flush()
}

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Mint an API bearer token signed with JWT_SECRET",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     subjectFlag,
				Usage:    "Name of the API client",
				Required: true,
			},
			&cli.StringFlag{
				Name:  roleFlag,
				Usage: "Optional role claim",
			},
			&cli.DurationFlag{
				Name:  ttlFlag,
				Usage: "Token lifetime",
				Value: auth.DefaultTokenTTL,
			},
		},
		Action: func(cCtx *cli.Context) error {
			cfg := config.New()
			if !cfg.AuthEnabled() {
				return cli.Exit("JWT_SECRET is not set", 2)
			}

			token, expiresAt, err := auth.GenerateJWT(cCtx.String(subjectFlag), cCtx.String(roleFlag), cfg.JWTSecret, cCtx.Duration(ttlFlag))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			fmt.Fprintln(cCtx.App.Writer, token)
			fmt.Fprintf(cCtx.App.ErrWriter, "expires %s\n", expiresAt.Format(time.RFC3339))
			return nil
		},
	}
}

func encodeYAML(w io.Writer, v interface{}) error {
	yamlEncoder := yaml.NewEncoder(w)
	yamlEncoder.SetIndent(2)
	if err := yamlEncoder.Encode(v); err != nil {
		return cli.Exit(fmt.Sprintf("Encoding to YAML failed: %v", err), 3)
	}
	if err := yamlEncoder.Close(); err != nil {
		return cli.Exit(fmt.Sprintf("Encoding to YAML failed on close: %v", err), 3)
	}
	return nil
}
