package postgres

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/footypool/footypool/internal/platform/logging"
)

// LockNamespace keys the cluster-wide scheduler lock. Every instance in a
// deployment must use the same value.
const LockNamespace = "footypool/lifecycle-scheduler"

// LeaderGate holds a session-scoped Postgres advisory lock so exactly one
// scheduler instance performs writes cluster-wide. The lock lives on a
// dedicated connection: if the process or connection dies, Postgres frees
// the lock without any heartbeat protocol.
type LeaderGate struct {
	db     *sqlx.DB
	key    int64
	logger *logging.Logger

	mu   sync.Mutex
	conn *sqlx.Conn
	held bool
}

func NewLeaderGate(db *sqlx.DB, namespace string, logger *logging.Logger) *LeaderGate {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeaderGate{
		db:     db,
		key:    advisoryKey(namespace),
		logger: logger,
	}
}

// TryAcquire attempts the advisory lock without blocking. It returns false
// when another session already holds it; that is contention, not an error.
func (g *LeaderGate) TryAcquire(ctx context.Context) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.held {
		return true, nil
	}

	conn, err := g.db.Connx(ctx)
	if err != nil {
		return false, fmt.Errorf("open leader lock session: %w", err)
	}

	var locked bool
	if err := conn.GetContext(ctx, &locked, "SELECT pg_try_advisory_lock($1)", g.key); err != nil {
		_ = conn.Close()
		return false, fmt.Errorf("try advisory lock key=%d: %w", g.key, err)
	}

	if !locked {
		_ = conn.Close()
		return false, nil
	}

	g.conn = conn
	g.held = true
	return true, nil
}

// Release unlocks and closes the session. It never fails past the caller:
// the store reclaims the lock once the session ends regardless.
func (g *LeaderGate) Release(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.held || g.conn == nil {
		return
	}

	var unlocked bool
	if err := g.conn.GetContext(ctx, &unlocked, "SELECT pg_advisory_unlock($1)", g.key); err != nil {
		g.logger.WarnContext(ctx, "advisory unlock failed, session close will reclaim it", "key", g.key, "error", err)
	} else if !unlocked {
		g.logger.WarnContext(ctx, "advisory unlock reported not held", "key", g.key)
	}

	if err := g.conn.Close(); err != nil {
		g.logger.WarnContext(ctx, "close leader lock session failed", "error", err)
	}

	g.conn = nil
	g.held = false
}

func (g *LeaderGate) Held() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.held
}

// advisoryKey folds a namespace string into the bigint keyspace of
// pg_advisory_lock deterministically across instances.
func advisoryKey(namespace string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(namespace))
	return int64(h.Sum64())
}
