package binding

import (
	"context"
	"errors"
	"log"
	"sync"
)

var (
	// ErrInvalidSignature marks an update that failed verification.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrConnectionClosed is delivered once when the source closes.
	ErrConnectionClosed = errors.New("connection closed")
)

// MessageType classifies a frame read from a Source.
type MessageType int

const (
	MessageBinary MessageType = iota
	MessageText
	MessageClose
)

// Message is one frame from a Source.
type Message struct {
	Type MessageType
	Data []byte
}

// Source is a message transport such as a websocket connection.
type Source interface {
	Recv(ctx context.Context) (Message, error)
}

// Result is one item delivered by a Stream. Exactly one field is set.
type Result struct {
	Update Update
	Err    error
}

// Stream reads binary messages from a Source, decodes and verifies each one
// and delivers the outcome on Results. Decode and verification failures are
// delivered and reading continues. A close frame delivers ErrConnectionClosed
// and a transport error is delivered as-is; both end the stream.
type Stream struct {
	results chan Result
	cancel  context.CancelFunc
	done    chan struct{}
	once    sync.Once
}

// NewStream starts reading src. Updates are checked against identityHex.
func NewStream(ctx context.Context, client *Client, src Source, identityHex string) (*Stream, error) {
	if _, err := decodeHex("identity", identityHex); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Stream{
		results: make(chan Result, 16),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go s.run(ctx, client, src, identityHex)
	return s, nil
}

// Results is closed when the stream ends.
func (s *Stream) Results() <-chan Result {
	return s.results
}

// Close stops the stream and waits for the reader to exit.
func (s *Stream) Close() {
	s.once.Do(s.cancel)
	<-s.done
}

func (s *Stream) run(ctx context.Context, client *Client, src Source, identity string) {
	defer close(s.done)
	defer close(s.results)

	for {
		msg, err := src.Recv(ctx)
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("stream: receive failed: %v", err)
				s.send(ctx, Result{Err: err})
			}
			return
		}

		switch msg.Type {
		case MessageBinary:
			u, err := client.DecodeUpdate(identity, msg.Data)
			if err != nil {
				log.Printf("stream: dropping %d byte message: %v", len(msg.Data), err)
				if !s.send(ctx, Result{Err: err}) {
					return
				}
				continue
			}
			if !s.send(ctx, Result{Update: u}) {
				return
			}
		case MessageClose:
			s.send(ctx, Result{Err: ErrConnectionClosed})
			return
		}
	}
}

func (s *Stream) send(ctx context.Context, r Result) bool {
	select {
	case s.results <- r:
		return true
	case <-ctx.Done():
		return false
	}
}
