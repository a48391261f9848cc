package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vancomm/minesweeper-board/internal/mines"
)

var (
	ErrNotFound      = errors.New("game not found")
	ErrBoardTooLarge = errors.New("board is too large")
)

type Params struct {
	Height    int
	Width     int
	MineCount int
}

type Limits struct {
	MaxCells      int           // 0 means no limit
	IdleTimeout   time.Duration // 0 disables eviction
	SweepInterval time.Duration
}

type entry struct {
	session *Session
	cancel  context.CancelFunc
}

// Registry keeps the live games of this process in memory. Nothing
// outlives the process.
type Registry struct {
	log    logrus.FieldLogger
	limits Limits

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	rnd      mines.Rand // guarded by mu
	sessions map[uuid.UUID]entry
}

func NewRegistry(log logrus.FieldLogger, rnd mines.Rand, limits Limits) *Registry {
	ctx, cancel := context.WithCancel(context.Background())
	return &Registry{
		log:      log,
		limits:   limits,
		ctx:      ctx,
		cancel:   cancel,
		rnd:      rnd,
		sessions: make(map[uuid.UUID]entry),
	}
}

// Create builds and seeds a new board and starts its session loop.
func (r *Registry) Create(p Params) (uuid.UUID, *Session, error) {
	if r.limits.MaxCells > 0 && p.Height > 0 && p.Width > 0 &&
		p.Height > r.limits.MaxCells/p.Width {
		return uuid.Nil, nil, fmt.Errorf(
			"%w: %dx%d exceeds %d cells", ErrBoardTooLarge, p.Height, p.Width, r.limits.MaxCells,
		)
	}

	board, err := mines.NewBoard(p.Height, p.Width, p.MineCount)
	if err != nil {
		return uuid.Nil, nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ctx.Err() != nil {
		return uuid.Nil, nil, ErrClosed
	}
	if err := board.Seed(r.rnd); err != nil {
		return uuid.Nil, nil, err
	}

	id := uuid.New()
	log := r.log.WithField("game", id.String())
	s := New(board, log)
	ctx, cancel := context.WithCancel(r.ctx)
	r.sessions[id] = entry{session: s, cancel: cancel}
	go s.Run(ctx)

	log.WithFields(logrus.Fields{
		"height":     p.Height,
		"width":      p.Width,
		"mine_count": p.MineCount,
	}).Info("game created")

	return id, s, nil
}

func (r *Registry) Get(id uuid.UUID) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e.session, nil
}

func (r *Registry) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.sessions, id)
	e.cancel()
	r.log.WithField("game", id.String()).Info("game deleted")
	return nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep stops and forgets sessions that have been idle longer than the
// idle timeout, returning how many were evicted.
func (r *Registry) Sweep(now time.Time) int {
	if r.limits.IdleTimeout <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, e := range r.sessions {
		if now.Sub(e.session.LastActive()) > r.limits.IdleTimeout {
			delete(r.sessions, id)
			e.cancel()
			n++
		}
	}
	if n > 0 {
		r.log.WithFields(logrus.Fields{
			"evicted": n,
			"live":    len(r.sessions),
		}).Info("swept idle games")
	}
	return n
}

// Run sweeps idle sessions until ctx is done, then closes the registry.
func (r *Registry) Run(ctx context.Context) error {
	defer r.Close()

	if r.limits.IdleTimeout <= 0 || r.limits.SweepInterval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(r.limits.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			r.Sweep(now)
		}
	}
}

// Close stops every session. Create fails afterwards.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancel()
	for id := range r.sessions {
		delete(r.sessions, id)
	}
}
