package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/docukit/approval-system/internal/core/domain"
	"github.com/docukit/approval-system/internal/core/ports"
	"github.com/docukit/approval-system/internal/pkg/metrics"
)

// ErrPersistFailed reports that a command was applied in memory but the
// aggregate could not be written to storage. The in-memory aggregate remains
// the source of truth for the running session; the error is recoverable.
var ErrPersistFailed = errors.New("state: persist failed")

// Container owns the aggregate. It is the sole mutation path: commands are
// applied strictly one at a time under the lock, and the whole aggregate is
// re-persisted after every change. Construct with NewContainer and inject it
// explicitly; there is no package-level instance.
type Container struct {
	mu    sync.Mutex
	store ports.KVStore
	log   zerolog.Logger
	admin domain.Credential
	state State
}

// NewContainer builds a Container that persists through store. admin is the
// bootstrap credential injected on first run and re-injected whenever a
// rehydrated aggregate is missing it.
func NewContainer(store ports.KVStore, admin domain.Credential, log zerolog.Logger) *Container {
	return &Container{
		store: store,
		log:   log,
		admin: admin,
		state: Default(admin),
	}
}

// Init loads and repairs the persisted aggregate:
//   - missing or unreadable storage, or corrupt JSON → start fresh with the
//     default aggregate
//   - bootstrap admin missing after rehydration → re-inject it without
//     touching any other credential
//   - session pointer referencing an unknown credential → cleared
//
// The repaired aggregate is written back; a write failure is returned wrapped
// in ErrPersistFailed and is safe to treat as non-fatal.
func (c *Container) Init(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	loaded := Default(c.admin)
	raw, err := c.store.Get(ctx, StorageKey)
	switch {
	case errors.Is(err, ports.ErrKeyNotFound):
		c.log.Info().Msg("no persisted state, starting fresh")
	case err != nil:
		c.log.Warn().Err(err).Msg("state read failed, operating in memory")
	default:
		var parsed State
		if jsonErr := json.Unmarshal(raw, &parsed); jsonErr != nil {
			c.log.Warn().Err(jsonErr).Msg("corrupt persisted state, starting fresh")
		} else {
			loaded = parsed.normalized()
			if !loaded.HasAdmin(c.admin.Username) {
				loaded = loaded.withCredential(c.admin)
				c.log.Info().Str("username", c.admin.Username).Msg("bootstrap admin re-injected")
			}
			if _, ok := loaded.CurrentCredential(); !ok && loaded.CurrentUserID != "" {
				c.log.Warn().Str("user_id", loaded.CurrentUserID).Msg("stale session pointer cleared")
				loaded.CurrentUserID = ""
			}
		}
	}

	c.state = loaded
	return c.persistLocked(ctx)
}

// Dispatch applies one command and persists the result. The command always
// takes effect in memory; a storage failure is reported via ErrPersistFailed
// without rolling the aggregate back.
func (c *Container) Dispatch(ctx context.Context, cmd Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = cmd.Apply(c.state)
	metrics.CommandsAppliedTotal.WithLabelValues(cmd.Name()).Inc()
	return c.persistLocked(ctx)
}

// Snapshot returns a deep copy of the current aggregate.
func (c *Container) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Flush writes the current aggregate out, for shutdown paths.
func (c *Container) Flush(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.persistLocked(ctx)
}

func (c *Container) persistLocked(ctx context.Context) error {
	raw, err := json.Marshal(c.state)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	if err := c.store.Set(ctx, StorageKey, raw); err != nil {
		metrics.StatePersistFailuresTotal.Inc()
		c.log.Error().Err(err).Msg("state write failed, memory remains authoritative")
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	return nil
}
