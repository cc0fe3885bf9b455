package live

import (
	"sync"
	"sync/atomic"
)

// outbox buffers encoded frames for the connection writer. Send never
// blocks: when the buffer is full the oldest frame is dropped, since a
// newer state supersedes it.
type outbox struct {
	msgs    chan []byte
	done    chan struct{}
	once    sync.Once
	dropped atomic.Uint64
}

func newOutbox(size int) *outbox {
	if size < 1 {
		size = 32
	}
	return &outbox{
		msgs: make(chan []byte, size),
		done: make(chan struct{}),
	}
}

func (o *outbox) Send(msg []byte) {
	select {
	case <-o.done:
		return
	default:
	}

	for {
		select {
		case o.msgs <- msg:
			return
		default:
		}
		select {
		case <-o.msgs:
			o.dropped.Add(1)
		default:
		}
	}
}

func (o *outbox) Messages() <-chan []byte { return o.msgs }

func (o *outbox) Dropped() uint64 { return o.dropped.Load() }

func (o *outbox) Close() {
	o.once.Do(func() { close(o.done) })
}
