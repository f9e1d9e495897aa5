package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"pickup-route-service/internal/app"
	"pickup-route-service/internal/config"
	"pickup-route-service/internal/domain"
	"pickup-route-service/internal/platform/logger"
	"pickup-route-service/internal/services"
	"time"

	"go.uber.org/zap"
)

var errUsage = errors.New("usage: planner -order <id> [-start-x X -start-y Y] [-timeout D]")

type options struct {
	orderID uint64
	start   *domain.Point
	timeout time.Duration
}

// planner plans the pickup route of a single order and prints it.
func main() {
	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// parseArgs reads the command line. -order is required; 0 is a valid id.
func parseArgs(args []string, output io.Writer) (options, error) {
	fs := flag.NewFlagSet("planner", flag.ContinueOnError)
	fs.SetOutput(output)

	orderID := fs.Uint64("order", 0, "order id to plan (required)")
	startX := fs.Float64("start-x", 0, "override robot start x")
	startY := fs.Float64("start-y", 0, "override robot start y")
	timeout := fs.Duration("timeout", 2*time.Minute, "overall timeout")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["order"] {
		return options{}, errUsage
	}
	if set["start-x"] != set["start-y"] {
		return options{}, fmt.Errorf("-start-x and -start-y must be given together: %w", errUsage)
	}

	opts := options{orderID: *orderID, timeout: *timeout}
	if set["start-x"] {
		opts.start = &domain.Point{X: *startX, Y: *startY}
	}
	return opts, nil
}

func run(opts options, out io.Writer) error {
	if _, err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(logger.WithContext(context.Background(), log), opts.timeout)
	defer cancel()

	components, err := app.Build(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}
	defer components.Close()

	req := services.PlanPickupsRequest{OrderID: opts.orderID, Robot: components.Robot, Start: opts.start}

	plan, err := services.PlanPickups(ctx, req, components.Partitions, components.Catalog, components.Cache)
	if errors.Is(err, domain.ErrOrderNotFound) {
		return fmt.Errorf("order %d not found", opts.orderID)
	}
	if err != nil {
		log.Error("planning failed", zap.Uint64("order_id", opts.orderID), zap.Error(err))
		return fmt.Errorf("plan order %d: %w", opts.orderID, err)
	}

	printPlan(out, plan)
	return nil
}

func printPlan(w io.Writer, p *domain.PickupPlan) {
	fmt.Fprintf(w, "order %d\n", p.OrderID)
	fmt.Fprintf(w, "  start     (%g, %g)\n", p.Start.X, p.Start.Y)
	for i, s := range p.Stops {
		fmt.Fprintf(w, "  %2d. %-20s x%-3d (%g, %g)\n", i+1, s.PartName, s.Quantity, s.Location.X, s.Location.Y)
	}
	fmt.Fprintf(w, "  deliver   (%g, %g)\n", p.Delivery.X, p.Delivery.Y)
	fmt.Fprintf(w, "total distance %.3f\n", p.TotalDistance)
}
