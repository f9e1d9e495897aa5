package orders

import (
	"context"
	"errors"
	"pickup-route-service/internal/domain"
	"time"
)

// MemoryPartition serves a fixed slice of orders, optionally pausing before
// each record to simulate a slow source.
type MemoryPartition struct {
	PartitionName string
	Orders        []domain.Order
	Delay         time.Duration
}

func (p *MemoryPartition) Name() string {
	return p.PartitionName
}

func (p *MemoryPartition) Scan(ctx context.Context, visit func(domain.Order) bool) error {
	for _, o := range p.Orders {
		if p.Delay > 0 {
			timer := time.NewTimer(p.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		if !visit(o) {
			return nil
		}
	}
	return nil
}

// FailingPartition is a partition that can never be read.
type FailingPartition struct {
	PartitionName string
	Err           error
}

func (p *FailingPartition) Name() string {
	return p.PartitionName
}

func (p *FailingPartition) Scan(context.Context, func(domain.Order) bool) error {
	if p.Err != nil {
		return p.Err
	}
	return errors.New("partition unavailable")
}
