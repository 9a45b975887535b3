package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"hycu-check/src/classify"
	"hycu-check/src/config"
	"hycu-check/src/endpoint"
	"hycu-check/src/hycuapi"
	"hycu-check/src/report"
)

// ClientFactory builds the API client for a validated configuration.
type ClientFactory func(cfg config.Config, ep endpoint.Endpoint, opts hycuapi.Options) hycuapi.Client

// Option customizes the root command; tests use it to swap collaborators.
type Option func(*deps)

type deps struct {
	newClient ClientFactory
	lookupEnv func(string) (string, bool)
	now       func() time.Time
}

// WithClientFactory replaces the HTTPS client.
func WithClientFactory(f ClientFactory) Option { return func(d *deps) { d.newClient = f } }

// WithEnv replaces os.LookupEnv.
func WithEnv(f func(string) (string, bool)) Option { return func(d *deps) { d.lookupEnv = f } }

// WithClock replaces time.Now for backup age computation.
func WithClock(f func() time.Time) Option { return func(d *deps) { d.now = f } }

// ExitError carries the aggregate check state out of a command. It is not a
// failure of the command itself.
type ExitError struct {
	Severity classify.Severity
}

func (e *ExitError) Error() string { return "check state " + e.Severity.String() }

// NewRootCmd returns the root cobra command for the hycu-check CLI.
func NewRootCmd(stdout, stderr io.Writer, opts ...Option) *cobra.Command {
	d := &deps{
		newClient: func(_ config.Config, ep endpoint.Endpoint, o hycuapi.Options) hycuapi.Client {
			return hycuapi.New(ep, o)
		},
		lookupEnv: os.LookupEnv,
		now:       time.Now,
	}
	for _, o := range opts {
		o(d)
	}

	cmd := &cobra.Command{
		Use:           "hycu-check",
		Short:         "Checkmk local checks for HYCU VM backups and backup targets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	addGlobalFlags(cmd)

	cmd.AddCommand(newVersionCmd(stdout))
	cmd.AddCommand(newCheckCmd(d, stdout, stderr, "vms", "Report the most recent backup of every VM", kindVMs))
	cmd.AddCommand(newCheckCmd(d, stdout, stderr, "targets", "Report the health of every backup target", kindTargets))
	cmd.AddCommand(newCheckCmd(d, stdout, stderr, "all", "Report VMs and backup targets", kindAll))

	return cmd
}

// Run executes the CLI with args and returns the process exit code: the
// aggregate check state, or UNKNOWN when the command itself failed.
func Run(args []string, stdout, stderr io.Writer, opts ...Option) int {
	root := NewRootCmd(stdout, stderr, opts...)
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return int(classify.OK)
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return int(ee.Severity)
	}
	// The agent only reads stdout, so the failure must show up there as a
	// service line too.
	rep := report.New()
	rep.Add(classify.Unknown, report.ServiceName("", config.Default().ServicePrefix), err.Error())
	_ = rep.WriteCheckmk(stdout)
	fmt.Fprintln(stderr, err)
	return int(classify.Unknown)
}

// Execute runs the CLI with the process stdio.
func Execute() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}
