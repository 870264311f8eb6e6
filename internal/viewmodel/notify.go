package viewmodel

import "sync"

// subscriber delivers snapshots to one consumer in publish order. The queue is
// unbounded so publishing never blocks on a slow reader.
type subscriber struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []State
	closed bool
	done   chan struct{}
	out    chan State
}

func newSubscriber() *subscriber {
	s := &subscriber{
		done: make(chan struct{}),
		out:  make(chan State),
	}
	s.cond = sync.NewCond(&s.mu)
	go s.run()
	return s
}

func (s *subscriber) enqueue(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.queue = append(s.queue, state)
	s.cond.Signal()
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.queue = nil
	close(s.done)
	s.cond.Signal()
}

func (s *subscriber) run() {
	defer close(s.out)
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if s.closed {
			s.mu.Unlock()
			return
		}
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		select {
		case s.out <- next:
		case <-s.done:
			return
		}
	}
}
