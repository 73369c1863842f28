package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/smallbiznis/netlicensing/internal/client"
	"github.com/smallbiznis/netlicensing/internal/config"
	"github.com/smallbiznis/netlicensing/internal/logger"
	"github.com/smallbiznis/netlicensing/internal/observability"
	"github.com/spf13/pflag"
	"go.uber.org/fx"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := newFlagSet()
	flags.SetOutput(stderr)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	cmd, err := parseCommand(flags)
	if err != nil {
		fmt.Fprintln(stderr, err)
		flags.Usage()
		return 2
	}

	var runner *Runner
	app := fx.New(
		fx.NopLogger,
		fx.Supply(flags),
		fx.Provide(func() io.Writer { return stdout }),
		config.Module,
		logger.Module,
		observability.Module,
		client.Module,
		fx.Provide(NewRunner),
		fx.Populate(&runner),
	)
	if err := app.Err(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	runErr := runner.Run(context.Background(), cmd)

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelStop()
	_ = app.Stop(stopCtx)

	if runErr != nil {
		fmt.Fprintln(stderr, runErr)
		return 1
	}
	return 0
}
