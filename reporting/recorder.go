package reporting

import "sync"

// Kind tells which channel an Entry came through.
type Kind uint8

const (
	KindError Kind = iota
	KindWarning
	KindInfo
)

type Entry struct {
	Kind    Kind
	Code    int
	Err     error
	Message string
}

// Recorder is an in-memory Reporter, mostly useful in tests.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

func (r *Recorder) Error(code ErrorCode, err error, args ...any) {
	r.add(Entry{Kind: KindError, Code: int(code), Err: err, Message: code.describe(args)})
}

func (r *Recorder) Warning(code WarningCode, err error, args ...any) {
	r.add(Entry{Kind: KindWarning, Code: int(code), Err: err, Message: code.describe(args)})
}

func (r *Recorder) Info(code InfoCode, args ...any) {
	r.add(Entry{Kind: KindInfo, Code: int(code), Message: code.describe(args)})
}

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Errors returns the recorded error codes in order.
func (r *Recorder) Errors() []ErrorCode {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ErrorCode
	for _, e := range r.entries {
		if e.Kind == KindError {
			out = append(out, ErrorCode(e.Code))
		}
	}
	return out
}

// Warnings returns the recorded warning codes in order.
func (r *Recorder) Warnings() []WarningCode {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []WarningCode
	for _, e := range r.entries {
		if e.Kind == KindWarning {
			out = append(out, WarningCode(e.Code))
		}
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = r.entries[:0]
}
