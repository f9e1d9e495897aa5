package services

import (
	"context"
	"fmt"
	"pickup-route-service/internal/domain"
	"pickup-route-service/internal/platform/metrics"
	"pickup-route-service/internal/ports"
	"slices"
	"sync"
	"time"
)

// locateState is the result shared by all partition scanners of one lookup.
type locateState struct {
	mu  sync.Mutex
	res domain.LocateResult
}

// commit records a match. Only the first commit is kept; later ones are
// counted and dropped.
func (s *locateState) commit(partition string, o domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.res.Found {
		s.res.DuplicateMatches++
		return
	}

	s.res.Found = true
	s.res.Partition = partition
	s.res.Order = domain.Order{
		OrderID:       o.OrderID,
		DeliveryPoint: o.DeliveryPoint,
		ProductIDs:    slices.Clone(o.ProductIDs),
	}
}

func (s *locateState) fail(partition string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.res.Unavailable = append(s.res.Unavailable, domain.PartitionFailure{Partition: partition, Err: err})
}

// LocateOrder searches every partition concurrently for orderID.
//
// Each partition is scanned on its own goroutine and the call returns once
// all of them have finished. Scanners are not cancelled when a match is
// found elsewhere; order IDs are expected to be unique across partitions.
// A partition that fails to scan counts as holding no match and is reported
// in LocateResult.Unavailable.
func LocateOrder(ctx context.Context, orderID uint64, partitions []ports.OrderPartition) domain.LocateResult {
	start := time.Now()

	state := &locateState{}
	var wg sync.WaitGroup

	for _, p := range partitions {
		wg.Add(1)
		go func(p ports.OrderPartition) {
			defer wg.Done()

			name := p.Name()
			if err := scanPartition(ctx, p, orderID, state); err != nil {
				state.fail(name, err)
				metrics.PartitionFailuresTotal.WithLabelValues(name).Inc()
			}
		}(p)
	}

	wg.Wait()

	result := "not_found"
	if state.res.Found {
		result = "found"
	}
	metrics.LocateDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())

	return state.res
}

// scanPartition runs one partition scan, converting a panic in the
// partition into an error so a broken source cannot take the lookup down.
func scanPartition(ctx context.Context, p ports.OrderPartition, orderID uint64, state *locateState) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scan partition %q: panic: %v", p.Name(), r)
		}
	}()

	name := p.Name()
	return p.Scan(ctx, func(o domain.Order) bool {
		if o.OrderID == orderID {
			state.commit(name, o)
		}
		return true
	})
}
