package report

import "sync"

// Entry is one recorded message.
type Entry struct {
	Msg    string
	Fields []any
}

// Recorder stores every message in memory so tests can assert on emitted
// summaries. The zero value is ready to use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// Info implements Reporter.
func (r *Recorder) Info(msg string, keysAndValues ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{
		Msg:    msg,
		Fields: append([]any(nil), keysAndValues...),
	})
}

// Entries returns a copy of the recorded messages in emission order.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}
