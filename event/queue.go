package event

import "sync"

// pendingQueue is the ordered list of envelopes awaiting a Process pass.
// Producers append under a short critical section; the driver takes the
// whole batch with an O(1) swap. Sequence numbers are assigned under the
// same lock, so the queue order is a total order consistent with each
// producer's own dispatch order.
type pendingQueue struct {
	mu    sync.Mutex
	items []Envelope
	seq   uint64
}

// append stamps the envelope's sequence number and adds it to the tail.
func (q *pendingQueue) append(env Envelope) {
	q.mu.Lock()
	q.seq++
	env.Metadata.Seq = q.seq
	q.items = append(q.items, env)
	q.mu.Unlock()
}

// take removes and returns the current contents, leaving an empty queue.
// Events dispatched after take returns land in the next batch.
func (q *pendingQueue) take() []Envelope {
	q.mu.Lock()
	items := q.items
	q.items = nil
	q.mu.Unlock()
	return items
}

// depth returns the number of events currently queued.
func (q *pendingQueue) depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
