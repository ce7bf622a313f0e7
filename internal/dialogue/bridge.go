package dialogue

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-aligner/internal/session"
)

// clientMessage is a frame from the browser. Only audio is accepted.
type clientMessage struct {
	Type string `json:"type"`
	Data string `json:"data,omitempty"`
}

// serverMessage is a frame to the browser.
type serverMessage struct {
	Type     string `json:"type"`
	Data     string `json:"data,omitempty"`
	Role     string `json:"role,omitempty"`
	Text     string `json:"text,omitempty"`
	PlayInMs int64  `json:"playInMs,omitempty"`
}

const (
	msgAudio        = "audio"
	msgTranscript   = "transcript"
	msgTurnComplete = "turnComplete"
	msgInterrupted  = "interrupted"
)

// Bridge pumps audio between a browser connection and one upstream
// dialogue stream, folding completed turns into the session transcript.
type Bridge struct {
	client *websocket.Conn
	live   *LiveSession
	sess   *session.Session
	logger *zap.Logger

	acc   Accumulator
	sched *Scheduler

	writeMu   sync.Mutex
	closeOnce sync.Once
}

// NewBridge wires a freshly upgraded browser connection to an open
// upstream stream and registers itself on the session, so advancing out
// of capture tears the stream down.
func NewBridge(client *websocket.Conn, live *LiveSession, sess *session.Session, logger *zap.Logger) *Bridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Bridge{
		client: client,
		live:   live,
		sess:   sess,
		logger: logger,
		sched:  NewScheduler(),
	}
	sess.SetDialogue(b)
	return b
}

// Run pumps both directions until either side closes or ctx is
// cancelled. It always returns with both legs torn down and the bridge
// deregistered from the session.
func (b *Bridge) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(b.pumpUpstream)
	g.Go(b.pumpDownstream)
	g.Go(func() error {
		<-ctx.Done()
		_ = b.Close()
		return nil
	})
	err := g.Wait()
	_ = b.Close()
	if b.sess.DialogueActive() {
		_ = b.sess.CloseDialogue()
	}
	var closeErr *websocket.CloseError
	if errors.Is(err, context.Canceled) || errors.As(err, &closeErr) {
		return nil
	}
	return err
}

// Close tears down both legs of the bridge. Safe to call more than once.
func (b *Bridge) Close() error {
	b.closeOnce.Do(func() {
		_ = b.live.Close()
		b.writeMu.Lock()
		_ = b.client.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		b.writeMu.Unlock()
		_ = b.client.Close()
	})
	return nil
}

func (b *Bridge) send(msg *serverMessage) error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	return b.client.WriteJSON(msg)
}

// pumpUpstream forwards browser audio chunks to the upstream stream.
func (b *Bridge) pumpUpstream() error {
	for {
		var msg clientMessage
		if err := b.client.ReadJSON(&msg); err != nil {
			return fmt.Errorf("dialogue: client read failed: %w", err)
		}
		if msg.Type != msgAudio || msg.Data == "" {
			continue
		}
		if err := b.live.SendAudio(msg.Data); err != nil {
			return err
		}
	}
}

// pumpDownstream forwards upstream events to the browser and folds
// finished turns into the session.
func (b *Bridge) pumpDownstream() error {
	for {
		events, err := b.live.ReadEvents()
		if err != nil {
			return err
		}
		for i := range events {
			if err := b.handleEvent(&events[i]); err != nil {
				return err
			}
		}
	}
}

func (b *Bridge) handleEvent(ev *Event) error {
	switch ev.Kind {
	case EventAudio:
		raw, err := base64.StdEncoding.DecodeString(ev.AudioB64)
		if err != nil {
			b.logger.Warn("dropping undecodable audio chunk", zap.Error(err))
			return nil
		}
		start := b.sched.Schedule(PCMDuration(len(raw), OutputSampleRate))
		playIn := time.Until(start)
		if playIn < 0 {
			playIn = 0
		}
		return b.send(&serverMessage{Type: msgAudio, Data: ev.AudioB64, PlayInMs: playIn.Milliseconds()})
	case EventUserTranscript:
		b.acc.UserFragment(ev.Text)
		return b.send(&serverMessage{Type: msgTranscript, Role: "user", Text: ev.Text})
	case EventModelTranscript:
		b.acc.ModelFragment(ev.Text)
		return b.send(&serverMessage{Type: msgTranscript, Role: "ai", Text: ev.Text})
	case EventTurnComplete:
		utterances, block, emitted := b.acc.TurnComplete()
		if emitted {
			if err := b.sess.AppendDialogueTurn(block, utterances); err != nil {
				b.logger.Warn("dropping turn after capture closed", zap.Error(err))
			}
		}
		return b.send(&serverMessage{Type: msgTurnComplete})
	case EventInterrupted:
		b.sched.Flush()
		return b.send(&serverMessage{Type: msgInterrupted})
	default:
		return nil
	}
}
