package mqtt

// bufferedMsg stores a serialized MQTT message for replay after reconnection.
type bufferedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// ringBuffer is a bounded FIFO that stores messages while disconnected.
// When full the oldest message is dropped. A retained message replaces any
// retained message already queued for the same topic, since the broker
// would only keep the newest one anyway.
// Not safe for concurrent use; caller must synchronize.
type ringBuffer struct {
	msgs     []bufferedMsg
	capacity int
	dropped  int // messages lost to overflow since last drain
}

func newRingBuffer(capacity int) *ringBuffer {
	return &ringBuffer{
		msgs:     make([]bufferedMsg, 0, capacity),
		capacity: capacity,
	}
}

func (r *ringBuffer) push(msg bufferedMsg) {
	if msg.retained {
		for i, m := range r.msgs {
			if m.retained && m.topic == msg.topic {
				r.msgs = append(r.msgs[:i], r.msgs[i+1:]...)
				break
			}
		}
	}
	if len(r.msgs) == r.capacity {
		r.msgs = append(r.msgs[:0], r.msgs[1:]...)
		r.dropped++
	}
	r.msgs = append(r.msgs, msg)
}

// drainAll returns the queued messages oldest first and how many were
// dropped, then empties the buffer.
func (r *ringBuffer) drainAll() ([]bufferedMsg, int) {
	dropped := r.dropped
	r.dropped = 0
	if len(r.msgs) == 0 {
		return nil, dropped
	}
	result := make([]bufferedMsg, len(r.msgs))
	copy(result, r.msgs)
	r.msgs = r.msgs[:0]
	return result, dropped
}

func (r *ringBuffer) len() int {
	return len(r.msgs)
}
