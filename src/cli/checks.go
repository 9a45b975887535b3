package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hycu-check/src/check"
	"hycu-check/src/classify"
	"hycu-check/src/endpoint"
	"hycu-check/src/hycuapi"
	"hycu-check/src/logging"
	"hycu-check/src/report"
)

var (
	kindVMs     = []check.Kind{check.KindVMs}
	kindTargets = []check.Kind{check.KindTargets}
	kindAll     = []check.Kind{check.KindVMs, check.KindTargets}
)

func newCheckCmd(d *deps, stdout, stderr io.Writer, use, short string, kinds []check.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Root().PersistentFlags().GetString(flagOutput)
			if output != "checkmk" && output != "json" {
				return fmt.Errorf("unsupported --output: %s", output)
			}
			level, _ := cmd.Root().PersistentFlags().GetString(flagLogLevel)
			log, err := logging.New(stderr, level)
			if err != nil {
				return err
			}
			cfg, err := getConfig(cmd, d)
			if err != nil {
				return err
			}
			ep, err := endpoint.Parse(cfg.Host, cfg.Port)
			if err != nil {
				return err
			}

			client := d.newClient(cfg, ep, hycuapi.Options{
				Token:          cfg.Token,
				VerifyTLS:      cfg.VerifyTLS,
				Timeout:        cfg.Timeout,
				PageSize:       cfg.PageSize,
				BackupPageSize: cfg.BackupPageSize,
				Logger:         log.WithName("client"),
			})
			if !cfg.VerifyTLS {
				log.V(1).Info("TLS certificate verification disabled", "endpoint", ep.String())
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			runner := &check.Runner{Client: client, Config: cfg, Log: log, Now: d.now}
			rep, err := runner.Run(ctx, kinds...)
			if err != nil {
				return err
			}
			if err := render(stdout, rep, output); err != nil {
				return err
			}
			if sev := rep.Exit(); sev != classify.OK {
				return &ExitError{Severity: sev}
			}
			return nil
		},
	}
}

func render(w io.Writer, rep *report.Report, output string) error {
	switch output {
	case "json":
		return rep.WriteJSON(w)
	default:
		return rep.WriteCheckmk(w)
	}
}
