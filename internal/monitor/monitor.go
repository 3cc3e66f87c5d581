// Package monitor watches the pending-transaction stream for payments
// to a set of addresses. Each observed hash is announced immediately,
// then rechecked after a settle delay: still-pending recipients may
// change before a transaction is mined, so the verdict waits.
package monitor

import (
	"context"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/quillchain/quillwallet/config"
	"github.com/quillchain/quillwallet/internal/ledger"
	"github.com/quillchain/quillwallet/internal/log"
	"github.com/quillchain/quillwallet/pkg/types"
)

const eventQueueSize = 100

// Monitor turns the node's pending-transaction stream into typed
// payment events for a watch set.
type Monitor struct {
	gw      ledger.Gateway
	cfg     config.MonitorConfig
	clock   clock.Clock
	limiter *rate.Limiter
	log     zerolog.Logger
}

// New builds a monitor over the given gateway.
func New(gw ledger.Gateway, cfg config.MonitorConfig) *Monitor {
	return &Monitor{
		gw:      gw,
		cfg:     cfg,
		clock:   clock.New(),
		limiter: rate.NewLimiter(rate.Limit(cfg.RechecksPerSecond), 1),
		log:     log.Monitor,
	}
}

// Subscribe opens a standing subscription and returns the event stream.
// It fails only if the subscription handshake itself fails; everything
// after that is reported as events. The stream ends, and the channel
// closes, when ctx is cancelled or the node drops the subscription.
// In-flight rechecks are drained before the close.
func (m *Monitor) Subscribe(ctx context.Context, watch WatchSet) (<-chan Event, error) {
	hashes, err := m.gw.SubscribePendingTransactions(ctx)
	if err != nil {
		return nil, err
	}

	sub := &subscription{
		monitor: m,
		watch:   watch,
		events:  make(chan Event, eventQueueSize),
		log:     m.log.With().Str("subscription", uuid.NewString()).Logger(),
	}
	sub.log.Info().Int("watched", watch.Len()).Msg("subscription opened")

	go sub.run(ctx, hashes)
	return sub.events, nil
}

// subscription is the per-Subscribe state: one reader goroutine plus
// one recheck goroutine per observed hash.
type subscription struct {
	monitor *Monitor
	watch   WatchSet
	events  chan Event
	wg      sync.WaitGroup
	log     zerolog.Logger
}

func (s *subscription) run(ctx context.Context, hashes <-chan types.Hash) {
	for hash := range hashes {
		s.emit(ctx, HashSeenEvent{Hash: hash})
		s.wg.Add(1)
		go s.recheck(ctx, hash)
	}
	s.wg.Wait()
	close(s.events)
	s.log.Info().Msg("subscription closed")
}

// recheck waits out the settle delay, then fetches the transaction and
// delivers the verdict. A failed lookup becomes an UnconfirmedEvent; it
// never takes down the subscription or other rechecks.
func (s *subscription) recheck(ctx context.Context, hash types.Hash) {
	defer s.wg.Done()

	m := s.monitor
	delay := m.clock.Timer(m.cfg.RecheckDelay)
	defer delay.Stop()
	select {
	case <-ctx.Done():
		return
	case <-delay.C:
	}

	if err := m.limiter.Wait(ctx); err != nil {
		return
	}

	lookupCtx, cancel := context.WithTimeout(ctx, m.cfg.RecheckTimeout)
	defer cancel()
	tx, err := m.gw.Transaction(lookupCtx, hash)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.log.Warn().Err(err).Str("hash", hash.String()).Msg("recheck failed")
		s.emit(ctx, UnconfirmedEvent{Hash: hash, Err: err})
		return
	}

	if tx.To == nil || !s.watch.Contains(*tx.To) {
		return
	}
	s.log.Info().
		Str("hash", hash.String()).
		Str("to", tx.To.String()).
		Msg("payment to watched address")
	s.emit(ctx, PaymentEvent{Tx: tx})
}

func (s *subscription) emit(ctx context.Context, ev Event) {
	select {
	case s.events <- ev:
	case <-ctx.Done():
	}
}
