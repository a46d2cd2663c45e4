package venue

import (
	"context"
	"encoding/json"
	"math"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"fundarb/internal/market"
)

const defaultQuoteMaxAge = 5 * time.Second

// StreamQuotes layers a websocket book-ticker feed over another adapter.
// While the stream is healthy, TopOfBook answers from the cached quote;
// stale or absent quotes fall back to the wrapped adapter's REST read.
// Everything else is delegated untouched.
type StreamQuotes struct {
	Adapter

	wsURL  string
	maxAge time.Duration
	log    zerolog.Logger

	mu     sync.RWMutex
	quotes map[string]cachedQuote
}

type cachedQuote struct {
	book market.TopOfBook
	at   time.Time
}

type bookFrame struct {
	Market string          `json:"market"`
	Bid    decimal.Decimal `json:"bid"`
	Ask    decimal.Decimal `json:"ask"`
}

func NewStreamQuotes(inner Adapter, wsURL string, maxAge time.Duration, log zerolog.Logger) *StreamQuotes {
	if maxAge <= 0 {
		maxAge = defaultQuoteMaxAge
	}
	return &StreamQuotes{
		Adapter: inner,
		wsURL:   wsURL,
		maxAge:  maxAge,
		log:     log,
		quotes:  make(map[string]cachedQuote),
	}
}

// TopOfBook serves the streamed quote when fresh enough, otherwise the
// wrapped adapter's.
func (s *StreamQuotes) TopOfBook(ctx context.Context, instrument string) (market.TopOfBook, error) {
	s.mu.RLock()
	q, ok := s.quotes[instrument]
	s.mu.RUnlock()
	if ok && time.Since(q.at) <= s.maxAge {
		return q.book, nil
	}
	return s.Adapter.TopOfBook(ctx, instrument)
}

// Run consumes the book-ticker stream until the context is canceled,
// reconnecting with capped backoff on failure.
func (s *StreamQuotes) Run(ctx context.Context) error {
	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.consume(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.log.Warn().Err(err).Str("venue", s.Name()).Msg("quote stream disconnected, retrying")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff = time.Duration(math.Min(float64(maxBackoff), float64(backoff)*1.8))
			continue
		}
		return nil
	}
}

func (s *StreamQuotes) consume(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, s.wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	s.log.Info().Str("venue", s.Name()).Str("url", s.wsURL).Msg("connected quote stream")

	conn.SetReadLimit(1 << 20)
	conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(30 * time.Second))
		return nil
	})

	pingCtx, pingCancel := context.WithCancel(ctx)
	defer pingCancel()
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					s.log.Warn().Err(err).Str("venue", s.Name()).Msg("quote stream ping failed")
					return
				}
			case <-pingCtx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var frame bookFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			s.log.Warn().Err(err).Str("venue", s.Name()).Msg("failed to decode book frame")
			continue
		}
		if frame.Market == "" {
			continue
		}
		s.apply(frame, time.Now())
	}
}

func (s *StreamQuotes) apply(frame bookFrame, at time.Time) {
	s.mu.Lock()
	s.quotes[frame.Market] = cachedQuote{
		book: market.TopOfBook{Venue: s.Name(), Bid: frame.Bid, Ask: frame.Ask},
		at:   at,
	}
	s.mu.Unlock()
}
