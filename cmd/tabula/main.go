package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"primamateria.systems/tabula/internal/config"
	"primamateria.systems/tabula/internal/export"
	"primamateria.systems/tabula/internal/roundtrip"
	"primamateria.systems/tabula/internal/store/sqlite"
)

var Version string

func newCommand(out io.Writer) *cli.Command {
	cliflags := make(map[string]any)
	var configFile string

	return &cli.Command{
		Name:  "tabula",
		Usage: "Load and write CSV host inventories",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "Specifed TOML config file",
				Required:    false,
				Destination: &configFile,
				Aliases:     []string{"c"},
				Sources:     cli.EnvVars("TABULA_CONFIG"),
				Action: func(ctx context.Context, cCtx *cli.Command, v string) error {
					if v == "" {
						return errors.New("config file passed without value")
					}
					if _, err := os.Stat(v); err != nil && os.IsNotExist(err) {
						return errors.New("config file not found")
					} else if err != nil {
						return err
					}
					return nil
				},
			},
			&cli.StringFlag{
				Name:    "dir",
				Usage:   "Inventory directory",
				Aliases: []string{"d"},
				Action: func(ctx context.Context, cm *cli.Command, v string) error {
					cliflags["dir"] = v
					return nil
				},
			},
			&cli.StringFlag{
				Name:  "encryption",
				Usage: "Table encryption: none, age or sops",
				Action: func(ctx context.Context, cm *cli.Command, v string) error {
					cliflags["encryption"] = v
					return nil
				},
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
				Action: func(ctx context.Context, cm *cli.Command, b bool) error {
					cliflags["debug"] = b
					return nil
				},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Dump active config",
				Action: func(ctx context.Context, cCtx *cli.Command) error {
					k, err := config.LoadConfigs(ctx, configFile, cliflags)
					if err != nil {
						return err
					}
					c, err := config.NewConfig(k)
					if err != nil {
						log.Fatal(err)
					}
					fmt.Fprintln(out, c)
					return nil
				},
			},
			{
				Name:  "load",
				Usage: "Load the inventory and print it",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Usage:   fmt.Sprintf("Output format (%v)", strings.Join(export.Formats(), ", ")),
						Aliases: []string{"f"},
						Action: func(ctx context.Context, cm *cli.Command, v string) error {
							cliflags["format"] = v
							return nil
						},
					},
				},
				Action: func(ctx context.Context, cCtx *cli.Command) error {
					a, err := setup(ctx, configFile, cliflags)
					if err != nil {
						return err
					}
					e, err := export.ForFormat(a.config.Format)
					if err != nil {
						return err
					}
					inv, err := a.inventory.Load(ctx)
					if err != nil {
						return err
					}
					return e.Export(inv, out)
				},
			},
			{
				Name:  "write",
				Usage: "Load the inventory and write the hosts table back",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dest",
						Usage: "Destination for the hosts table",
					},
					&cli.StringFlag{
						Name:  "all",
						Usage: "Write all four tables into this directory",
					},
				},
				Action: func(ctx context.Context, cCtx *cli.Command) error {
					dest := cCtx.String("dest")
					all := cCtx.String("all")
					if dest == "" && all == "" {
						return errors.New("need --dest or --all")
					}
					a, err := setup(ctx, configFile, cliflags)
					if err != nil {
						return err
					}
					inv, err := a.inventory.Load(ctx)
					if err != nil {
						return err
					}
					if dest != "" {
						if err := a.inventory.Write(inv, dest); err != nil {
							return err
						}
						log.Info("wrote hosts table", "dest", dest, "hosts", inv.Hosts.Len())
					}
					if all != "" {
						if err := a.inventory.WriteDir(inv, all); err != nil {
							return err
						}
						log.Info("wrote inventory", "dir", all)
					}
					return nil
				},
			},
			{
				Name:  "check",
				Usage: "Check that the hosts table survives a write and reload",
				Action: func(ctx context.Context, cCtx *cli.Command) error {
					a, err := setup(ctx, configFile, cliflags)
					if err != nil {
						return err
					}
					report, err := roundtrip.Check(ctx, a.inventory, a.opener)
					if err != nil {
						return err
					}
					if report.Changed() {
						fmt.Fprintf(out, "Diffs:\n%v\n", report.PrettyDiff())
					}
					if !report.Equivalent() {
						for _, m := range report.Mismatches {
							log.Warn("round trip mismatch", "host", m)
						}
						return fmt.Errorf("hosts table does not round trip: %v mismatches", len(report.Mismatches))
					}
					fmt.Fprintln(out, "OK")
					return nil
				},
			},
			{
				Name:  "snapshot",
				Usage: "Save the loaded inventory into a SQLite database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Usage:    "Database path",
						Required: true,
					},
				},
				Action: func(ctx context.Context, cCtx *cli.Command) error {
					a, err := setup(ctx, configFile, cliflags)
					if err != nil {
						return err
					}
					inv, err := a.inventory.Load(ctx)
					if err != nil {
						return err
					}
					store, err := sqlite.Open(ctx, cCtx.String("db"))
					if err != nil {
						return err
					}
					defer func() {
						if err := store.Close(); err != nil {
							log.Warn("error closing snapshot database", "error", err)
						}
					}()
					return store.Save(ctx, inv)
				},
			},
			{
				Name:  "version",
				Usage: "Show version",
				Action: func(ctx context.Context, cCtx *cli.Command) error {
					fmt.Fprintf(out, "tabula version %v\n", Version)
					return nil
				},
			},
		},
	}
}

func main() {
	if err := newCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
