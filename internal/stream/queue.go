// ABOUTME: Priority queue of pending frames
// ABOUTME: Min-heap keyed by sequence number for reordered emission
package stream

import (
	"container/heap"

	"github.com/framecast/framecast-go/pkg/video"
)

type pendingFrame struct {
	seq   int64
	frame video.Frame
}

// frameQueue is a min-heap of pending frames ordered by sequence number.
// Late sequence numbers are accepted; duplicates both survive and pop in
// adjacent order. Callers own locking.
type frameQueue struct {
	items []pendingFrame
}

func newFrameQueue() *frameQueue {
	q := &frameQueue{}
	heap.Init(q)
	return q
}

// Implement heap.Interface
func (q *frameQueue) Len() int { return len(q.items) }

func (q *frameQueue) Less(i, j int) bool {
	return q.items[i].seq < q.items[j].seq
}

func (q *frameQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
}

func (q *frameQueue) Push(x interface{}) {
	q.items = append(q.items, x.(pendingFrame))
}

func (q *frameQueue) Pop() interface{} {
	n := len(q.items)
	item := q.items[n-1]
	q.items = q.items[:n-1]
	return item
}

// add inserts a frame under its sequence number
func (q *frameQueue) add(seq int64, frame video.Frame) {
	heap.Push(q, pendingFrame{seq: seq, frame: frame})
}

// popMin removes and returns the minimum-sequence entry
func (q *frameQueue) popMin() (pendingFrame, bool) {
	if len(q.items) == 0 {
		return pendingFrame{}, false
	}
	return heap.Pop(q).(pendingFrame), true
}
