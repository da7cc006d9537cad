// Package walk — BFS queue with deduplication.
// Directories are keyed by their resolved path so a symlink cycle is visited
// at most once.
package walk

// Queue is a BFS queue of directories with dedup by canonical key.
type Queue struct {
	items   []string
	visited map[string]bool
	idx     int // current read position
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		visited: make(map[string]bool),
	}
}

// Add enqueues a directory under its canonical key if not seen before.
func (q *Queue) Add(key, dir string) {
	if q.visited[key] {
		return
	}
	q.visited[key] = true
	q.items = append(q.items, dir)
}

// HasNext returns true if there are unprocessed directories.
func (q *Queue) HasNext() bool {
	return q.idx < len(q.items)
}

// Next returns the next unprocessed directory and advances the pointer.
func (q *Queue) Next() string {
	dir := q.items[q.idx]
	q.idx++
	return dir
}

// Visited returns the total number of unique directories seen.
func (q *Queue) Visited() int {
	return len(q.visited)
}
