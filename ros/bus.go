package ros

import (
	"sync"

	"go.uber.org/atomic"

	"go.viam.com/imubridge/logging"
)

// DefaultQueueSize is the queue depth used when none is given.
const DefaultQueueSize = 5

// A Publisher accepts messages for a single topic. Publishing never blocks and reports nothing
// back; delivery is up to the implementation.
type Publisher interface {
	Publish(msg Imu)
}

// A Node hands out publishers for named topics.
type Node interface {
	Advertise(topic string, queueSize int) Publisher
}

// Bus is an in-memory Node. Every subscriber of a topic gets its own bounded queue; when a queue
// is full the oldest message is dropped to make room, like a ROS publisher queue.
type Bus struct {
	mu     sync.Mutex
	topics map[string]*topicState
	closed bool
	logger logging.Logger
}

type topicState struct {
	name       string
	queueSize  int
	advertised bool
	seq        uint32
	subs       []*Subscription
}

// NewBus returns an empty bus.
func NewBus(logger logging.Logger) *Bus {
	return &Bus{
		topics: map[string]*topicState{},
		logger: logger,
	}
}

func (b *Bus) topicLocked(name string) *topicState {
	t, ok := b.topics[name]
	if !ok {
		t = &topicState{name: name, queueSize: DefaultQueueSize}
		b.topics[name] = t
	}
	return t
}

// Advertise registers topic with the given queue depth and returns its publisher. A
// non-positive depth falls back to DefaultQueueSize.
func (b *Bus) Advertise(topic string, queueSize int) Publisher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	t := b.topicLocked(topic)
	t.queueSize = queueSize
	t.advertised = true
	b.logger.Debugw("advertised topic", "topic", topic, "queue_size", queueSize)
	return &topicPublisher{bus: b, topic: topic}
}

// Topics returns the names of the advertised topics.
func (b *Bus) Topics() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var names []string
	for name, t := range b.topics {
		if t.advertised {
			names = append(names, name)
		}
	}
	return names
}

// Subscribe attaches a new subscriber to topic. A non-positive queueSize inherits the
// advertised queue depth of the topic.
func (b *Bus) Subscribe(topic string, queueSize int) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := b.topicLocked(topic)
	if queueSize <= 0 {
		queueSize = t.queueSize
	}
	sub := &Subscription{
		bus:     b,
		topic:   topic,
		ch:      make(chan Imu, queueSize),
		dropped: atomic.NewUint64(0),
	}
	if b.closed {
		sub.closed = true
		close(sub.ch)
		return sub
	}
	t.subs = append(t.subs, sub)
	return sub
}

func (b *Bus) publish(topic string, msg Imu) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	t := b.topicLocked(topic)
	t.seq++
	msg.Header.Seq = t.seq
	for _, sub := range t.subs {
		sub.deliver(msg)
	}
}

func (b *Bus) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sub.closed {
		return
	}
	if t, ok := b.topics[sub.topic]; ok {
		for i, s := range t.subs {
			if s == sub {
				t.subs = append(t.subs[:i], t.subs[i+1:]...)
				break
			}
		}
	}
	sub.closed = true
	close(sub.ch)
}

// Close closes every subscription. Publishing afterwards is a no-op.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, t := range b.topics {
		for _, sub := range t.subs {
			sub.closed = true
			close(sub.ch)
		}
		t.subs = nil
	}
}

type topicPublisher struct {
	bus   *Bus
	topic string
}

func (p *topicPublisher) Publish(msg Imu) {
	p.bus.publish(p.topic, msg)
}

// Subscription receives the messages published on one topic.
type Subscription struct {
	bus     *Bus
	topic   string
	ch      chan Imu
	closed  bool
	dropped *atomic.Uint64
}

// deliver is called with the bus lock held.
func (s *Subscription) deliver(msg Imu) {
	for {
		select {
		case s.ch <- msg:
			return
		default:
		}
		select {
		case <-s.ch:
			s.dropped.Inc()
		default:
		}
	}
}

// Topic returns the subscribed topic.
func (s *Subscription) Topic() string {
	return s.topic
}

// C returns the channel messages are delivered on. It is closed when the subscription or the
// bus is closed.
func (s *Subscription) C() <-chan Imu {
	return s.ch
}

// Dropped returns how many messages were discarded because the queue was full.
func (s *Subscription) Dropped() uint64 {
	return s.dropped.Load()
}

// Close detaches the subscription from the bus.
func (s *Subscription) Close() {
	s.bus.unsubscribe(s)
}
