package monitor

import (
	"github.com/quillchain/quillwallet/internal/ledger"
	"github.com/quillchain/quillwallet/pkg/types"
)

const (
	EventData EventType = iota
	EventNewPayment
	EventUnconfirmed
)

// EventType tags the concrete event carried on the subscription channel.
type EventType int

func (et EventType) String() string {
	switch et {
	case EventData:
		return "DATA"
	case EventNewPayment:
		return "NEW_PAYMENT"
	case EventUnconfirmed:
		return "UNCONFIRMED"
	default:
		return "Unknown"
	}
}

// Event is the tagged union delivered by Monitor.Subscribe.
type Event interface {
	Type() EventType
}

// HashSeenEvent is emitted as soon as a pending transaction hash is
// observed, before anything is known about the transaction itself.
type HashSeenEvent struct {
	Hash types.Hash
}

func (e HashSeenEvent) Type() EventType {
	return EventData
}

// PaymentEvent is emitted when a rechecked transaction pays a watched
// address.
type PaymentEvent struct {
	Tx *ledger.Transaction
}

func (e PaymentEvent) Type() EventType {
	return EventNewPayment
}

// UnconfirmedEvent is emitted when the recheck of a hash fails. The
// subscription stays live; the caller decides whether the hash matters.
type UnconfirmedEvent struct {
	Hash types.Hash
	Err  error
}

func (e UnconfirmedEvent) Type() EventType {
	return EventUnconfirmed
}
