package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/viant/callpoint/internal/logger"
	"github.com/viant/callpoint/service/nsocli"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, nil))
}

func run(ctx context.Context, args []string, out io.Writer, runner nsocli.Runner) int {
	exitCode := 1
	input := &nsocli.Input{}
	var timeLimit int
	cmd := &cobra.Command{
		Use:   "nsocmd <command>",
		Short: "Run NSO CLI commands in a container with retries and output checks",
		Long: `Command(s) to run. By default these are executed in NSO (using ncs_cli),
unless overridden with the --shell argument.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input.Command = args[0]
			input.TimeLimit = time.Duration(timeLimit) * time.Second
			if input.Container == "" {
				input.Container = os.Getenv("NSO_CNT")
			}
			options := []nsocli.Option{
				nsocli.WithReporter(newColorReporter(out)),
				nsocli.WithLogger(logger.For(logger.New("WARN", logger.FormatConsole, nil), logger.ComponentCLI)),
			}
			if runner != nil {
				options = append(options, nsocli.WithRunner(runner))
			}
			srv := nsocli.New(options...)
			defer srv.Close()
			output, err := srv.Run(cmd.Context(), input)
			switch {
			case errors.Is(err, nsocli.ErrTimeLimitExceeded):
				fmt.Fprintln(out, color.RedString("Time limit of %ds exceeded", timeLimit))
			case errors.Is(err, nsocli.ErrContainerNotFound):
				fmt.Fprintln(out, color.RedString("No NSO container %s - exiting immediately", input.Container))
			case err != nil:
				fmt.Fprintln(out, color.RedString("%v", err))
			}
			if output != nil && output.Success {
				exitCode = 0
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&input.Container, "nso-cnt", "n", "", "Name of NSO docker container (default $NSO_CNT or ncs-test)")
	flags.StringVarP(&input.SuccessPattern, "success-pattern", "s", "", "Exit successfully if pattern matches output. If pattern is omitted, the output passes through unchecked.")
	flags.StringVarP(&input.FailPattern, "fail-pattern", "f", "", "Fail immediately if pattern matches output. If pattern is omitted, the command may be retried.")
	flags.IntVarP(&timeLimit, "time-limit", "t", int(nsocli.DefaultTimeLimit.Seconds()), "Time limit for execution of command in seconds")
	flags.BoolVarP(&input.Retry, "retry", "r", false, "Retry command on failure. A failure condition is either ncs_cli exiting on error or the --success-pattern not matching.")
	flags.StringVarP(&input.OnFail, "on-fail", "e", "", `Command(s) to execute after failure (after retries are exhausted). If executing NSO commands, defaults to "show al:alarms".`)
	flags.BoolVarP(&input.Shell, "shell", "b", false, "execute the command in shell, not NSO CLI")
	flags.BoolVar(&input.SuppressError, "suppress-error", false, "Suppress error output during retries, the final error will still get printed")
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(out)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(out, color.RedString("%v", err))
		return 1
	}
	return exitCode
}
