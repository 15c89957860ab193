package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/footypool/footypool/internal/domain/fixture"
	"github.com/footypool/footypool/internal/platform/logging"
	"github.com/footypool/footypool/internal/platform/resilience"
)

// LeaderGate is the cluster-wide exclusive right to run the loop. The
// acquiring caller owns the token for its lifetime and must release it on
// every exit path.
type LeaderGate interface {
	TryAcquire(ctx context.Context) (bool, error)
	Release(ctx context.Context)
}

type LifecycleConfig struct {
	// Grace is the buffer after kickoff before UPCOMING flips to LIVE.
	Grace time.Duration
	// DueTolerance treats a kickoff this close as already due.
	DueTolerance time.Duration
	// Debounce is the short sleep after an immediate pass so clustered
	// kickoffs do not spin the loop.
	Debounce time.Duration
	// SafetySweep bounds every nap so due transitions are never stale for
	// longer than this, whatever the computed deadline says.
	SafetySweep time.Duration
	// NapCeiling caps the deadline-driven nap during idle stretches.
	NapCeiling time.Duration
	// FatalFailureStreak is how many consecutive failed passes count as a
	// persistent store outage.
	FatalFailureStreak int
}

func (c LifecycleConfig) withDefaults() LifecycleConfig {
	if c.Grace <= 0 {
		c.Grace = fixture.GraceInterval
	}
	if c.DueTolerance <= 0 {
		c.DueTolerance = 250 * time.Millisecond
	}
	if c.Debounce <= 0 {
		c.Debounce = 500 * time.Millisecond
	}
	if c.SafetySweep <= 0 {
		c.SafetySweep = time.Minute
	}
	if c.NapCeiling <= 0 {
		c.NapCeiling = time.Hour
	}
	if c.FatalFailureStreak <= 0 {
		c.FatalFailureStreak = 5
	}
	return c
}

// LoopStatus is a point-in-time snapshot for the health listener.
type LoopStatus struct {
	LastPassAt       time.Time `json:"last_pass_at"`
	LastWentLive     int64     `json:"last_went_live"`
	LastFinished     int64     `json:"last_finished"`
	FailureStreak    int       `json:"failure_streak"`
	PassCount        int64     `json:"pass_count"`
	NextKickoffAt    time.Time `json:"next_kickoff_at"`
	NextKickoffKnown bool      `json:"next_kickoff_known"`
}

// LifecycleService keeps fixture statuses consistent with wall-clock time
// and reconciled scores: one long-lived compute-deadline → nap → apply
// cycle, bounded by the safety sweep.
type LifecycleService struct {
	repo    fixture.Repository
	cfg     LifecycleConfig
	breaker *resilience.Breaker
	logger  *logging.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	mu     sync.RWMutex
	status LoopStatus
}

func NewLifecycleService(repo fixture.Repository, cfg LifecycleConfig, logger *logging.Logger) *LifecycleService {
	if logger == nil {
		logger = logging.Default()
	}
	cfg = cfg.withDefaults()

	return &LifecycleService{
		repo:    repo,
		cfg:     cfg,
		breaker: resilience.NewBreaker(cfg.FatalFailureStreak),
		logger:  logger,
		now:     time.Now,
		sleep:   sleepContext,
	}
}

// Run drives the loop until ctx is canceled (clean shutdown, returns nil)
// or the store is persistently unreachable (returns ErrStoreUnavailable so
// the process exits non-zero and the supervisor restarts it).
func (s *LifecycleService) Run(ctx context.Context) error {
	s.logger.InfoContext(ctx, "lifecycle scheduler loop started",
		"grace", s.cfg.Grace,
		"safety_sweep", s.cfg.SafetySweep,
		"nap_ceiling", s.cfg.NapCeiling,
	)

	// Catch-up pass: flips anything that came due while no leader ran.
	if err := s.applyDue(ctx); err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			s.logger.Info("lifecycle scheduler loop stopped")
			return nil
		}

		now := s.now().UTC()
		next, hasNext, err := s.repo.NextKickoff(ctx, now)
		if err != nil {
			s.logger.WarnContext(ctx, "compute next kickoff failed", "error", err)
			if fatal := s.breaker.Record(err); fatal != nil {
				return fmt.Errorf("%w: next kickoff query kept failing: %v", ErrStoreUnavailable, err)
			}
			if err := s.sleep(ctx, s.cfg.SafetySweep); err != nil {
				return nil
			}
			continue
		}
		s.noteNextKickoff(next, hasNext)

		plan := napFor(now, next, hasNext, s.cfg)
		if plan.Immediate {
			if err := s.applyDue(ctx); err != nil {
				return err
			}
			if err := s.sleep(ctx, plan.Nap); err != nil {
				return nil
			}
			continue
		}

		if err := s.sleep(ctx, plan.Nap); err != nil {
			return nil
		}
		if err := s.applyDue(ctx); err != nil {
			return err
		}
	}
}

// Status returns the latest loop snapshot.
func (s *LifecycleService) Status() LoopStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// applyDue runs both set-based transitions. Transient store errors are
// logged and absorbed; a streak of them becomes fatal.
func (s *LifecycleService) applyDue(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LifecycleService.applyDue")
	defer span.End()

	now := s.now().UTC()
	threshold := now.Add(-s.cfg.Grace)

	wentLive, liveErr := s.repo.FlipUpcomingToLive(ctx, threshold)
	finished, finishErr := s.repo.FlipLiveToFinished(ctx)

	passErr := errors.Join(liveErr, finishErr)
	if passErr != nil {
		s.logger.WarnContext(ctx, "transition pass failed, retrying on next wake",
			"streak", s.breaker.Streak()+1,
			"error", passErr,
		)
		if fatal := s.breaker.Record(passErr); fatal != nil {
			s.logger.ErrorContext(ctx, "store unreachable, giving up leadership", "error", passErr)
			return fmt.Errorf("%w: transition pass kept failing: %v", ErrStoreUnavailable, passErr)
		}
		s.notePass(now, wentLive, finished)
		return nil
	}
	_ = s.breaker.Record(nil)

	if wentLive > 0 || finished > 0 {
		s.logger.InfoContext(ctx, "applied fixture transitions",
			"went_live", wentLive,
			"finished", finished,
		)
	} else {
		s.logger.DebugContext(ctx, "transition pass was a no-op")
	}
	s.notePass(now, wentLive, finished)
	return nil
}

func (s *LifecycleService) notePass(at time.Time, wentLive, finished int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.LastPassAt = at
	s.status.LastWentLive = wentLive
	s.status.LastFinished = finished
	s.status.FailureStreak = s.breaker.Streak()
	s.status.PassCount++
}

func (s *LifecycleService) noteNextKickoff(next time.Time, known bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.NextKickoffAt = next
	s.status.NextKickoffKnown = known
}

// napPlan is the first-class scheduling decision: how long to sleep and
// whether transitions are already due.
type napPlan struct {
	Nap       time.Duration
	Immediate bool
}

// napFor decides the next nap from "now" and the next known kickoff. Pure,
// so the scheduling decision is testable without real timers.
func napFor(now, next time.Time, hasNext bool, cfg LifecycleConfig) napPlan {
	if !hasNext {
		return napPlan{Nap: cfg.SafetySweep}
	}

	delay := next.Sub(now)
	if delay <= cfg.DueTolerance {
		return napPlan{Nap: cfg.Debounce, Immediate: true}
	}

	if delay > cfg.NapCeiling {
		delay = cfg.NapCeiling
	}
	if delay > cfg.SafetySweep {
		delay = cfg.SafetySweep
	}
	return napPlan{Nap: delay}
}

// sleepContext naps for d but wakes immediately on ctx cancellation so
// termination signals are honored promptly mid-sleep.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
