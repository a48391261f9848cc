package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vancomm/minesweeper-board/internal/mines"
)

var ErrClosed = errors.New("session is closed")

// View is a read-only picture of a board for the presentation layer.
type View struct {
	Height         int            `json:"height"`
	Width          int            `json:"width"`
	MineCount      int            `json:"mine_count"`
	MinesRemaining int            `json:"mines_remaining"`
	State          mines.State    `json:"state"`
	Grid           mines.Snapshot `json:"grid"`
}

func viewOf(b *mines.Board) View {
	return View{
		Height:         b.Height(),
		Width:          b.Width(),
		MineCount:      b.MineCount(),
		MinesRemaining: b.MinesRemaining(),
		State:          b.State(),
		Grid:           b.Snapshot(),
	}
}

type Result struct {
	Changed bool `json:"changed"`
	View
}

type reply struct {
	result Result
	err    error
}

type request struct {
	event *Event // nil asks for a view only
	reply chan reply
}

/*
Session serializes all access to one board. The board is touched only by
the goroutine running [Session.Run]; everyone else goes through the
request queue with [Session.Submit] and [Session.View], or listens for
views with [Session.Subscribe].
*/
type Session struct {
	board    *mines.Board
	log      logrus.FieldLogger
	requests chan request
	done     chan struct{}

	lastActive atomic.Int64

	mu      sync.Mutex
	subs    map[int]chan View
	nextSub int
	closed  bool
}

func New(board *mines.Board, log logrus.FieldLogger) *Session {
	s := &Session{
		board:    board,
		log:      log,
		requests: make(chan request),
		done:     make(chan struct{}),
		subs:     make(map[int]chan View),
	}
	s.touch()
	return s
}

func (s *Session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

// Done is closed once Run has returned.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Run applies queued requests until ctx is cancelled. It must be called
// exactly once.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)
	defer s.closeSubscribers()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-s.requests:
			res, err := s.handle(req.event)
			if req.event != nil && err == nil {
				s.publish(res.View)
			}
			req.reply <- reply{res, err}
		}
	}
}

func (s *Session) handle(e *Event) (Result, error) {
	s.touch()
	if e == nil {
		return Result{View: viewOf(s.board)}, nil
	}

	changed, err := e.apply(s.board)
	log := s.log.WithFields(logrus.Fields{
		"event":   e.String(),
		"changed": changed,
		"state":   s.board.State().String(),
	})
	if err != nil {
		log.WithError(err).Debug("event rejected")
		return Result{}, err
	}
	log.Debug("event applied")
	if changed && s.board.State().Terminal() {
		log.Info("game over")
	}
	return Result{Changed: changed, View: viewOf(s.board)}, nil
}

func (s *Session) do(ctx context.Context, e *Event) (Result, error) {
	req := request{event: e, reply: make(chan reply, 1)}
	select {
	case s.requests <- req:
	case <-s.done:
		return Result{}, ErrClosed
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
	// Run always answers a request it has taken.
	select {
	case rep := <-req.reply:
		return rep.result, rep.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Submit queues e and waits for it to be applied.
func (s *Session) Submit(ctx context.Context, e Event) (Result, error) {
	return s.do(ctx, &e)
}

func (s *Session) View(ctx context.Context) (View, error) {
	res, err := s.do(ctx, nil)
	return res.View, err
}

// Subscribe returns a channel that receives a view after every applied
// event. A subscriber that falls behind only gets the latest view. The
// channel is closed by the returned cancel func or when the session stops.
func (s *Session) Subscribe() (<-chan View, func()) {
	ch := make(chan View, 1)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

func (s *Session) publish(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- v:
			continue
		default:
		}
		// drop the stale view and retry; only this goroutine sends
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
}

func (s *Session) closeSubscribers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}
