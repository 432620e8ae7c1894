package core

// Frame is a marshaled wire event ready for the transport.
type Frame []byte

type SessionID string

// SignalConnection abstracts the messaging transport endpoint of one peer.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// PublishResult reports delivery stats/backpressure to the caller.
type PublishResult struct {
	SentTo  int
	Dropped []SessionID
}
