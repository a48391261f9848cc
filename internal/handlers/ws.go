package handlers

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-board/internal/session"
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
	"u": 2,
	"c": 2,
}

// command is one line of a websocket message. A nil event asks for the
// current view.
type command struct {
	event *session.Event
}

func byPiece(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

func parseRowCol(args []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(args[0]); err != nil {
		return 0, 0, fmt.Errorf("%w: row must be an int", errBadRequest)
	}
	if col, err = strconv.Atoi(args[1]); err != nil {
		return 0, 0, fmt.Errorf("%w: col must be an int", errBadRequest)
	}
	return row, col, nil
}

func parseCommand(line string) (command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return command{}, fmt.Errorf("%w: empty command", errBadRequest)
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return command{}, fmt.Errorf("%w: unknown command %q", errBadRequest, parts[0])
	}
	if nargs != len(parts)-1 {
		return command{}, fmt.Errorf("%w: invalid number of arguments", errBadRequest)
	}
	if parts[0] == "g" {
		return command{}, nil
	}
	kind, err := session.ParseKind(parts[0])
	if err != nil {
		return command{}, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	row, col, err := parseRowCol(parts[1:])
	if err != nil {
		return command{}, err
	}
	return command{event: &session.Event{Kind: kind, Row: row, Col: col}}, nil
}

// wsConn serializes writes; gorilla allows one concurrent writer only.
type wsConn struct {
	mu sync.Mutex
	*websocket.Conn
}

func (c *wsConn) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.WriteJSON(v)
}

func (c *wsConn) close(code int, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, text))
}

/*
ConnectWS upgrades the request to a websocket bound to one game. Every
text message holds newline-separated commands:

	o <row> <col>   reveal
	f <row> <col>   flag
	u <row> <col>   unflag
	c <row> <col>   chord
	g               send the current view

A view is pushed to the client after every applied move, including moves
made by other clients of the same game. Malformed commands are answered
with {"error": ...} and do not close the connection.
*/
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, id, err := g.session(r)
	if err != nil {
		sendError(w, g.log, err)
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Warn("upgrade failed")
		return
	}
	conn := &wsConn{Conn: c}
	defer conn.Close()

	log := g.log.WithFields(logrus.Fields{
		"game":        id,
		"remote_addr": r.RemoteAddr,
	})
	log.Debug("websocket connected")

	views, unsubscribe := s.Subscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		defer conn.Close()
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return nil
			case v, ok := <-views:
				if !ok {
					conn.close(websocket.CloseGoingAway, "game closed")
					return nil
				}
				if err := conn.send(GameDTO{ID: id, View: v}); err != nil {
					return fmt.Errorf("write: %w", err)
				}
			}
		}
	})

	eg.Go(func() error {
		defer cancel()
		for {
			mt, message, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() != nil || websocket.IsCloseError(err,
					websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return nil
				}
				return fmt.Errorf("read: %w", err)
			}
			if mt != websocket.TextMessage {
				conn.close(websocket.CloseUnsupportedData, "text messages only")
				return nil
			}
			text := strings.TrimSpace(string(message))
			log.Debug("\t> ", text)
			for _, line := range byPiece(text, "\n") {
				if err := g.execute(ctx, conn, s, id, line); err != nil {
					return err
				}
			}
		}
	})

	if err := eg.Wait(); err != nil {
		log.WithError(err).Warn("websocket closed")
		return
	}
	log.Debug("websocket closed")
}

// execute runs one command line. Only connection and session failures are
// returned; bad input is reported to the client.
func (g GameHandler) execute(
	ctx context.Context, conn *wsConn, s *session.Session, id string, line string,
) error {
	cmd, err := parseCommand(line)
	if err != nil {
		return conn.send(errorDTO{Error: err.Error()})
	}

	if cmd.event == nil {
		v, err := s.View(ctx)
		if errors.Is(err, session.ErrClosed) || ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return err
		}
		return conn.send(GameDTO{ID: id, View: v})
	}

	// the resulting view arrives through the subscription
	_, err = s.Submit(ctx, *cmd.event)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, session.ErrClosed), ctx.Err() != nil:
		return nil
	case statusFor(err) == http.StatusBadRequest:
		return conn.send(errorDTO{Error: err.Error()})
	default:
		return err
	}
}
