package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"suppliertracker/internal/domain/repository"
)

// AttachmentSweeper periodically removes stored attachment objects that no
// order references anymore, e.g. after a failed save or a deleted order.
type AttachmentSweeper struct {
	orders   repository.OrderRepository
	objects  repository.ObjectStore
	interval time.Duration
	minAge   time.Duration
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewAttachmentSweeper constructs the sweeper. minAge keeps freshly uploaded
// objects safe while the save that produced them is still in flight.
func NewAttachmentSweeper(orders repository.OrderRepository, objects repository.ObjectStore, interval, minAge time.Duration, logger *slog.Logger) *AttachmentSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &AttachmentSweeper{
		orders:   orders,
		objects:  objects,
		interval: interval,
		minAge:   minAge,
		logger:   logger,
	}
}

// Start launches background sweeping.
func (s *AttachmentSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(runCtx)
}

// Stop waits for the current sweep to finish.
func (s *AttachmentSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *AttachmentSweeper) run(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one pass: every object old enough and unreferenced by any
// order is removed.
func (s *AttachmentSweeper) Sweep(ctx context.Context) {
	objects, err := s.objects.List(ctx)
	if err != nil {
		s.logger.Error("list attachment objects failed", slog.String("error", err.Error()))
		return
	}
	if len(objects) == 0 {
		return
	}

	orders, err := s.orders.List(ctx)
	if err != nil {
		s.logger.Error("list orders for sweep failed", slog.String("error", err.Error()))
		return
	}

	referenced := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		if o.AttachmentURL != nil && *o.AttachmentURL != "" {
			referenced[*o.AttachmentURL] = struct{}{}
		}
	}

	cutoff := time.Now().Add(-s.minAge)
	for _, obj := range objects {
		if obj.ModTime.After(cutoff) {
			continue
		}
		if _, ok := referenced[s.objects.PublicURL(obj.Path)]; ok {
			continue
		}
		if err := s.objects.Remove(ctx, obj.Path); err != nil {
			s.logger.Error("remove orphan attachment failed",
				slog.String("path", obj.Path),
				slog.String("error", err.Error()),
			)
			continue
		}
		s.logger.Info("removed orphan attachment", slog.String("path", obj.Path))
	}
}
