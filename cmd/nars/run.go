package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Harshitk-cp/nars/internal/domain"
	"github.com/Harshitk-cp/nars/internal/service"
	"github.com/Harshitk-cp/nars/internal/store"
)

const defaultRunCycles = 1000

type runOptions struct {
	cycles  int
	journal string
	trace   bool
}

func newRunCmd(c *cli) *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Feed a Narsese file to the reasoner and run a fixed number of cycles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			return c.run(cmd.Context(), f, cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().IntVar(&opts.cycles, "cycles", defaultRunCycles, "cycles to run after the input is consumed")
	cmd.Flags().StringVar(&opts.journal, "journal", "", "SQLite file to journal outputs to")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "print every admitted and derived task")
	return cmd
}

func (c *cli) newReasoner() *service.Reasoner {
	seed := c.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return service.NewReasoner(c.params, seed, c.logger)
}

func (c *cli) run(ctx context.Context, in io.Reader, out io.Writer, opts runOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	r := c.newReasoner()
	r.SetTrace(opts.trace)

	pub := &printer{out: out, logger: c.logger}
	if opts.journal != "" {
		journal, err := store.OpenSQLite(ctx, opts.journal)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer journal.Close()
		pub.journal = journal
	}
	r.SetPublisher(pub)

	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := submitWaiting(r, scanner.Text()); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	// one input is admitted per cycle; drain the queue before counting --cycles
	for r.Pending() > 0 {
		r.DoCycle()
	}
	r.DoCycles(opts.cycles)
	c.logger.Info("run finished",
		zap.String("run_id", r.RunID()),
		zap.Uint64("cycles", r.Cycle()),
		zap.Int("concepts", r.Memory().Count()))
	return pub.err
}

// submitWaiting queues line, running cycles while the input queue is full.
func submitWaiting(r *service.Reasoner, line string) error {
	for {
		err := r.SubmitLine(line)
		if !errors.Is(err, service.ErrInputQueueFull) {
			return err
		}
		r.DoCycle()
	}
}

// printer writes output events as they happen, journaling them when a
// journal is open. It runs on the reasoner's goroutine.
type printer struct {
	out     io.Writer
	journal domain.OutputStore
	logger  *zap.Logger
	err     error
}

func (p *printer) Publish(ev domain.OutputEvent) {
	prefix := "OUT"
	switch ev.Kind {
	case domain.OutputDerived:
		prefix = "DERIVED"
	case domain.OutputInput:
		prefix = "IN"
	}
	fmt.Fprintf(p.out, "%s: %s\n", prefix, ev.Text)

	if p.journal == nil || p.err != nil {
		return
	}
	if err := p.journal.Append(context.Background(), &ev); err != nil {
		p.logger.Error("failed to journal output", zap.Error(err))
		p.err = err
	}
}

func (p *printer) PublishSnapshot(domain.Snapshot) {}
