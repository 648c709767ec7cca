package voting

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/time/rate"
)

// VerificationWorker drains the share-verification outbox. The in-flow
// background check handles the common case; the worker is the recovery net
// for verifications that were enqueued but never confirmed, e.g. after a
// process restart. At-least-once: the backend treats re-verification of an
// already-verified share as a no-op.
type VerificationWorker struct {
	repo     OutboxRepo
	gateway  Gateway
	interval time.Duration
	limiter  *rate.Limiter
}

// NewVerificationWorker creates a worker polling at the given interval.
func NewVerificationWorker(repo OutboxRepo, gw Gateway, interval time.Duration) *VerificationWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &VerificationWorker{
		repo:     repo,
		gateway:  gw,
		interval: interval,
		// Backend verification calls are cheap but there is no reason to
		// burst them: 5 per second is plenty for a recovery path.
		limiter: rate.NewLimiter(5, 5),
	}
}

// Start runs the drain loop until the context is cancelled.
func (w *VerificationWorker) Start(ctx context.Context) error {
	log.Printf("Starting share verification worker (interval %s)", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Share verification worker shutting down")
			return ctx.Err()
		case <-ticker.C:
			if err := w.drain(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("Share verification drain failed: %v", err)
			}
		}
	}
}

// drain verifies every pending entry once.
func (w *VerificationWorker) drain(ctx context.Context) error {
	pending, err := w.repo.ListPending(ctx, 50)
	if err != nil {
		return err
	}

	for _, p := range pending {
		if err := w.limiter.Wait(ctx); err != nil {
			return err
		}

		verified, err := w.gateway.ShareFrame(ctx, p.Token)
		if err != nil {
			if recErr := w.repo.RecordAttempt(ctx, p.ID, err.Error()); recErr != nil {
				log.Printf("Failed to record verification attempt %d: %v", p.ID, recErr)
			}
			continue
		}
		if !verified {
			if recErr := w.repo.RecordAttempt(ctx, p.ID, "backend rejected the share"); recErr != nil {
				log.Printf("Failed to record verification attempt %d: %v", p.ID, recErr)
			}
			continue
		}

		if err := w.repo.MarkVerified(ctx, p.ID); err != nil {
			log.Printf("Failed to mark verification %d done: %v", p.ID, err)
			continue
		}
		log.Printf("Recovered share verification for vote %s (fid %d)", p.VoteID, p.FID)
	}
	return nil
}
