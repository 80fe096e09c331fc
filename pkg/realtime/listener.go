// Package realtime maintains the notification socket: one long-lived
// connection per authenticated session, reconnecting with backoff until the
// session ends.
package realtime

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/kerbaras/storyline/pkg/data"
)

type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateReconnecting
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	default:
		return "disconnected"
	}
}

// CredentialsFunc reports the current access token and whether the session
// is still authenticated. Returning false ends the listener instead of a
// reconnect attempt.
type CredentialsFunc func() (token string, authenticated bool)

// Listener is a single-use connection driver: create one per login, Close it
// on logout.
type Listener struct {
	baseURL string
	creds   CredentialsFunc
	log     zerolog.Logger
	dialer  *websocket.Dialer

	events chan data.Notification

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
}

func NewListener(baseURL string, creds CredentialsFunc, log zerolog.Logger) *Listener {
	return &Listener{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		creds:   creds,
		log:     log,
		dialer:  websocket.DefaultDialer,
		events:  make(chan data.Notification, 16),
	}
}

// Events delivers decoded notification frames. The channel closes when the
// listener stops, whether by Close or by the session ending.
func (l *Listener) Events() <-chan data.Notification {
	return l.events
}

func (l *Listener) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Listener) setState(s State) {
	l.mu.Lock()
	l.state = s
	l.mu.Unlock()
}

func (l *Listener) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	l.mu.Lock()
	l.cancel = cancel
	l.mu.Unlock()
	go l.run(ctx)
}

// Close tears the connection down explicitly. Logout calls this; the
// listener never reconnects afterwards.
func (l *Listener) Close() {
	l.mu.Lock()
	cancel := l.cancel
	l.cancel = nil
	l.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (l *Listener) run(ctx context.Context) {
	defer close(l.events)
	defer l.setState(StateDisconnected)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 30 * time.Second
	bo.MaxElapsedTime = 0

	attempt := 0
	for {
		token, authenticated := l.creds()
		if !authenticated {
			return
		}

		if attempt == 0 {
			l.setState(StateConnecting)
		} else {
			l.setState(StateReconnecting)
		}

		url := l.baseURL + "/ws/notify/?token=" + token
		conn, _, err := l.dialer.DialContext(ctx, url, nil)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			attempt++
			l.log.Warn().Err(err).Int("attempt", attempt).Msg("notification socket dial failed")
			if !sleep(ctx, bo.NextBackOff()) {
				return
			}
			continue
		}

		l.setState(StateConnected)
		bo.Reset()
		attempt = 0
		l.log.Info().Msg("notification socket connected")

		if !l.readFrames(ctx, conn) {
			return
		}
		attempt++
	}
}

// readFrames pumps frames until the connection drops; it returns false when
// the listener should stop instead of reconnecting.
func (l *Listener) readFrames(ctx context.Context, conn *websocket.Conn) bool {
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()
	defer close(done)

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return false
			}
			l.log.Warn().Err(err).Msg("notification socket closed")
			return true
		}

		var notification data.Notification
		if err := json.Unmarshal(frame, &notification); err != nil {
			// Malformed frame: recoverable, skip it.
			l.log.Warn().Err(err).Msg("undecodable notification frame")
			continue
		}

		select {
		case l.events <- notification:
		case <-ctx.Done():
			return false
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
