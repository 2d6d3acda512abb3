package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/seantiz/abacus/internal/calc"
	"github.com/seantiz/abacus/internal/model"
	"github.com/seantiz/abacus/internal/store"
)

var (
	// ErrClosed is returned when keys are pressed on a closed session.
	ErrClosed = errors.New("session is closed")

	// ErrRejectedInput is returned when direct input is not a partial decimal number.
	ErrRejectedInput = errors.New("input rejected")
)

// Manager applies key presses to persisted calculator sessions.
type Manager struct {
	store     store.Store
	logger    *slog.Logger
	broker    *DisplayBroker
	precision uint32

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewManager creates a session manager. precision is the decimal precision
// handed to every restored engine.
func NewManager(s store.Store, precision uint32, logger *slog.Logger) *Manager {
	return &Manager{
		store:     s,
		logger:    logger,
		broker:    NewDisplayBroker(),
		precision: precision,
		locks:     make(map[string]*sync.Mutex),
	}
}

// Broker returns the manager's display broker for SSE subscription.
func (m *Manager) Broker() *DisplayBroker {
	return m.broker
}

// Create stores a new active session in the engine's initial state.
func (m *Manager) Create(ctx context.Context) (*model.Session, error) {
	now := time.Now().UTC()
	sess := &model.Session{
		ID:        model.NewID(),
		Status:    model.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyState(sess, calc.InitialState)

	if err := m.store.CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	sessionsCreatedTotal.Inc()
	m.logger.Debug("session created", "session_id", sess.ID)
	return sess, nil
}

// Press applies keys to the session in order and saves the result. Presses
// on the same session never interleave.
func (m *Manager) Press(ctx context.Context, id string, keys []calc.Key) (*model.Session, error) {
	unlock := m.lock(id)
	defer unlock()

	sess, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}

	eng, err := m.restore(sess)
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		eng.Press(k)
		keyPressesTotal.WithLabelValues(k.Kind.String()).Inc()
	}
	sess.Presses += len(keys)

	return m.save(ctx, sess, eng)
}

// SetInput replaces the session's input buffer as if typed into the input
// field. It returns ErrRejectedInput for text that is not a partial number.
func (m *Manager) SetInput(ctx context.Context, id, text string) (*model.Session, error) {
	unlock := m.lock(id)
	defer unlock()

	sess, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}

	eng, err := m.restore(sess)
	if err != nil {
		return nil, err
	}
	if !eng.SetInput(text) {
		return nil, fmt.Errorf("%w: %q", ErrRejectedInput, text)
	}

	return m.save(ctx, sess, eng)
}

// Close marks the session closed and ends its display stream.
func (m *Manager) Close(ctx context.Context, id string) (*model.Session, error) {
	unlock := m.lock(id)
	defer unlock()

	err := m.store.UpdateSessionStatus(ctx, id, model.StatusClosed)
	if errors.Is(err, store.ErrNotFound) {
		m.forget(id)
		return nil, err
	}
	if errors.Is(err, store.ErrInvalidTransition) {
		return nil, ErrClosed
	}
	if err != nil {
		return nil, fmt.Errorf("close session: %w", err)
	}

	m.broker.Close(id)
	m.forget(id)

	sess, err := m.store.GetSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get closed session: %w", err)
	}
	return sess, nil
}

// lock serializes work on one session and returns the matching unlock.
func (m *Manager) lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &sync.Mutex{}
		m.locks[id] = l
	}
	m.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// forget drops the lock of a session that is gone or closed. Sessions are
// never deleted, so no later press can need the dropped lock.
func (m *Manager) forget(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, id)
}

func (m *Manager) load(ctx context.Context, id string) (*model.Session, error) {
	sess, err := m.store.GetSession(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		m.forget(id)
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	if sess.Status != model.StatusActive {
		m.forget(id)
		return nil, ErrClosed
	}
	return sess, nil
}

// restore rebuilds the engine from a stored session. Failures counted by the
// engine's hook land on sess.
func (m *Manager) restore(sess *model.Session) (*calc.Engine, error) {
	op, err := calc.ParseOperator(sess.Operator)
	if err != nil {
		return nil, fmt.Errorf("restore session %s: %w", sess.ID, err)
	}

	state := calc.State{
		Input:       sess.Input,
		Accumulator: sess.Accumulator,
		Operator:    op,
		StartFresh:  sess.StartFresh,
	}
	return calc.Restore(state,
		calc.WithPrecision(m.precision),
		calc.WithFailureHook(func(op calc.Operator, err error) {
			sess.Failures++
			arithmeticFailuresTotal.WithLabelValues(op.String()).Inc()
			m.logger.Warn("arithmetic failure",
				"session_id", sess.ID,
				"operator", op.String(),
				"error", err,
			)
		}),
	), nil
}

func (m *Manager) save(ctx context.Context, sess *model.Session, eng *calc.Engine) (*model.Session, error) {
	applyState(sess, eng.State())
	sess.UpdatedAt = time.Now().UTC()

	err := m.store.UpdateSession(ctx, sess)
	if errors.Is(err, store.ErrInvalidTransition) {
		return nil, ErrClosed
	}
	if err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	m.broker.Publish(sess.ID, sess.Display())
	return sess, nil
}

func applyState(sess *model.Session, s calc.State) {
	sess.Input = s.Input
	sess.Accumulator = s.Accumulator
	sess.Operator = s.Operator.Symbol()
	sess.StartFresh = s.StartFresh
}
