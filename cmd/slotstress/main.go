// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// slotstress drives simulated native futures through a slot.Poller from
// many producer goroutines and reports how the slot table held up.
//
//	slotstress --futures 10000 --steps 4 --capacity 64 --producers 8
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"code.hybscloud.com/iox"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"code.hybscloud.com/slot"
	"code.hybscloud.com/slot/internal/sim"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type config struct {
	futures   int
	steps     int
	capacity  int
	producers int
	delay     time.Duration
	timeout   time.Duration
	spurious  bool
	verbose   bool
}

func parse(args []string, out io.Writer) (config, error) {
	var cfg config
	flagSet := pflag.NewFlagSet("slotstress", pflag.ContinueOnError)
	flagSet.SetOutput(out)
	flagSet.IntVar(&cfg.futures, "futures", 1000, "number of futures to submit")
	flagSet.IntVar(&cfg.steps, "steps", 3, "polls each future needs before it is ready")
	flagSet.IntVar(&cfg.capacity, "capacity", slot.MaxSlots, "slot table capacity")
	flagSet.IntVar(&cfg.producers, "producers", 4, "number of submitting goroutines")
	flagSet.DurationVar(&cfg.delay, "delay", 0, "worker delay before each notification")
	flagSet.DurationVar(&cfg.timeout, "timeout", time.Minute, "abandon outstanding futures after this long")
	flagSet.BoolVar(&cfg.spurious, "spurious", false, "notify twice per poll")
	flagSet.BoolVarP(&cfg.verbose, "verbose", "v", false, "log poll loop events")

	if err := flagSet.Parse(args); err != nil {
		return cfg, err
	}
	switch {
	case cfg.futures < 0:
		return cfg, fmt.Errorf("--futures must not be negative, got %d", cfg.futures)
	case cfg.capacity < 1:
		return cfg, fmt.Errorf("--capacity must be positive, got %d", cfg.capacity)
	case cfg.producers < 1:
		return cfg, fmt.Errorf("--producers must be positive, got %d", cfg.producers)
	}
	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func run(args []string, out io.Writer) error {
	cfg, err := parse(args, out)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	var simOpts []sim.Option
	if cfg.delay > 0 {
		simOpts = append(simOpts, sim.WithDelay(cfg.delay))
	}
	if cfg.spurious {
		simOpts = append(simOpts, sim.WithSpurious())
	}
	engine := sim.New(simOpts...)
	table := slot.NewTable(cfg.capacity)
	poller := slot.NewPoller(table,
		slot.WithLogger(logger),
		slot.WithQueueCapacity(cfg.futures))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.timeout)
	defer cancel()

	// done runs on the Run goroutine only.
	var completed, failed int
	done := func(err error) {
		if err != nil {
			failed++
			return
		}
		completed++
	}

	var wg sync.WaitGroup
	for p := range cfg.producers {
		wg.Go(func() {
			var bo iox.Backoff
			for i := p; i < cfg.futures; i += cfg.producers {
				for {
					_, err := poller.Submit(engine.Start(cfg.steps), done)
					if err == nil {
						bo.Reset()
						break
					}
					if !slot.IsWouldBlock(err) || ctx.Err() != nil {
						return
					}
					bo.Wait()
				}
			}
		})
	}
	go func() {
		wg.Wait()
		poller.Close()
	}()

	start := time.Now()
	runErr := poller.Run(ctx)
	elapsed := time.Since(start)
	wg.Wait()
	engine.Wait()

	logger.Info("stress run finished",
		zap.Int("completed", completed),
		zap.Int("failed", failed),
		zap.Duration("elapsed", elapsed))
	fmt.Fprintf(out, "futures=%d completed=%d failed=%d polls=%d notifies=%d in_use=%d elapsed=%s\n",
		cfg.futures, completed, failed, engine.Polls(), engine.Notifies(), table.InUse(), elapsed)
	return runErr
}
