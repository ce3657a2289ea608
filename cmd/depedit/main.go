package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kobzarvs/depedit/internal/app"
	"github.com/kobzarvs/depedit/internal/config"
	"github.com/kobzarvs/depedit/internal/logger"
	"github.com/kobzarvs/depedit/internal/session"
	"github.com/kobzarvs/depedit/internal/treebank"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var errIssues = errors.New("check found issues")

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "depedit:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "depedit",
		Usage:   "edit dependency trees in CoNLL-U files",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Usage: "write debug output to the log file"},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return logger.Init(c.Bool("debug") || cfg.Editor.Debug)
		},
		After: func(*cli.Context) error {
			logger.Close()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "edit",
				Usage:     "edit the sentences of FILE interactively",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "sentence", Aliases: []string{"s"}, Value: 0, Usage: "start at sentence `N` (default: where the last session stopped)"},
				},
				Action: editAction,
			},
			{
				Name:      "check",
				Usage:     "report id, multiword, label and projectivity problems in FILE",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "no progress bar"},
				},
				Action: checkAction,
			},
			{
				Name:  "version",
				Usage: "print the version",
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, "depedit", version)
					return nil
				},
			},
		},
	}
}

func fileArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("usage: depedit %s FILE", c.Command.Name)
	}
	return c.Args().First(), nil
}

func editAction(c *cli.Context) error {
	path, err := fileArg(c)
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	tags, err := config.LoadTagsets()
	if err != nil {
		return err
	}
	sm, err := session.NewManager()
	if err != nil {
		return err
	}

	start := c.Int("sentence") - 1
	a, err := app.New(path, app.Options{
		Config:   cfg,
		Tagsets:  tags,
		Sentence: start,
		Session:  sm,
		Out:      c.App.Writer,
	})
	if err != nil {
		_ = sm.Stop()
		return err
	}
	defer a.Close()
	return a.Run()
}

func checkAction(c *cli.Context) error {
	path, err := fileArg(c)
	if err != nil {
		return err
	}
	tags, err := config.LoadTagsets()
	if err != nil {
		return err
	}
	tb, err := treebank.Open(path)
	if err != nil {
		return err
	}
	issues := app.Check(tb, tags, !c.Bool("quiet"))
	app.Report(c.App.Writer, issues, tb.Len())
	if len(issues) > 0 {
		return errIssues
	}
	return nil
}
