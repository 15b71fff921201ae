package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

const defaultCyclesPerLine = 100

func newShellCmd(c *cli) *cobra.Command {
	var cyclesPerLine int
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Read Narsese from stdin interactively",
		Long: `Each sentence is queued and followed by --cycles-per-line cycles.
A bare number runs that many cycles. "status" prints the cycle and memory counts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.shell(cmd.InOrStdin(), cmd.OutOrStdout(), cyclesPerLine)
		},
	}
	cmd.Flags().IntVar(&cyclesPerLine, "cycles-per-line", defaultCyclesPerLine, "cycles run after each sentence")
	return cmd
}

func (c *cli) shell(in io.Reader, out io.Writer, cyclesPerLine int) error {
	r := c.newReasoner()
	r.SetPublisher(&printer{out: out, logger: c.logger})

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "status":
			fmt.Fprintf(out, "cycle %d, %d tasks, %d concepts\n", r.Cycle(), r.TaskCount(), r.Memory().Count())
			continue
		}

		if n, err := strconv.Atoi(line); err == nil {
			r.DoCycles(n)
			continue
		}

		if err := submitWaiting(r, line); err != nil {
			fmt.Fprintf(out, "ERR: %v\n", err)
			continue
		}
		r.DoCycles(cyclesPerLine)
	}
	return scanner.Err()
}
