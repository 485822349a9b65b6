package main

import (
	"bufio"
	"fmt"
	"io"

	"f3os/internal/dispatch"

	"github.com/spf13/cobra"
)

func newExecCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "exec [lines...]",
		Short: "Run console commands without the UI",
		Long: `Dispatch each argument as one command line and print what the console
would show. With no arguments, lines are read from stdin. Processing stops at
the exit command.`,
		Example: `  f3os exec "cd secrets" "open plan.txt"
  printf 'dir\nhelp\n' | f3os exec`,
		RunE: func(cmd *cobra.Command, args []string) error {
			closeLog := setupLogging(cmd, opts, true)
			defer closeLog()

			_, d, err := openSession(opts)
			if err != nil {
				return err
			}
			return runLines(d, args, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runLines dispatches lines from args, or from in when args is empty
func runLines(d *dispatch.Dispatcher, args []string, in io.Reader, out io.Writer) error {
	run := func(line string) (bool, error) {
		res := d.Dispatch(line)
		if res.Render {
			for _, l := range res.Lines {
				if _, err := fmt.Fprintln(out, l); err != nil {
					return false, err
				}
			}
		}
		return res.Quit, nil
	}

	if len(args) > 0 {
		for _, line := range args {
			quit, err := run(line)
			if err != nil || quit {
				return err
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		quit, err := run(scanner.Text())
		if err != nil || quit {
			return err
		}
	}
	return scanner.Err()
}
