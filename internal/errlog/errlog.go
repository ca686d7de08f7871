package errlog

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by the unit of work it interrupted.
type Kind int

const (
	ScanFailure Kind = iota + 1
	FolderCreationFailure
	MoveFailure
	ArchiveCreationFailure
	ArchiveRelocationFailure
)

func (k Kind) String() string {
	switch k {
	case ScanFailure:
		return "scan"
	case FolderCreationFailure:
		return "folder_creation"
	case MoveFailure:
		return "move"
	case ArchiveCreationFailure:
		return "archive_creation"
	case ArchiveRelocationFailure:
		return "archive_relocation"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k Kind) action() string {
	switch k {
	case ScanFailure:
		return "scan"
	case FolderCreationFailure:
		return "create folder"
	case MoveFailure:
		return "move"
	case ArchiveCreationFailure:
		return "create archive"
	case ArchiveRelocationFailure:
		return "relocate archive"
	default:
		return "process"
	}
}

// Error is a failure tied to the path or extension it implicates.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind.action(), e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Record is one logged failure.
type Record struct {
	Message string `json:"message"`
	Source  string `json:"source"`
	Kind    Kind   `json:"kind"`
}

// Log maps failure messages to the source they were attributed to.
// Recording an existing message again replaces its source but keeps its
// position. A Log is owned by a single goroutine.
type Log struct {
	records []Record
	index   map[string]int
}

// New returns an empty log.
func New() *Log {
	return &Log{index: make(map[string]int)}
}

// Record stores msg attributed to source.
func (l *Log) Record(msg, source string) {
	l.record(Record{Message: msg, Source: source})
}

// Add records err. An *Error contributes its kind and path; any other error
// is recorded with an empty source.
func (l *Log) Add(err error) {
	if err == nil {
		return
	}
	var e *Error
	if errors.As(err, &e) {
		l.record(Record{Message: e.Error(), Source: e.Path, Kind: e.Kind})
		return
	}
	l.record(Record{Message: err.Error()})
}

func (l *Log) record(r Record) {
	if i, ok := l.index[r.Message]; ok {
		l.records[i] = r
		return
	}
	l.index[r.Message] = len(l.records)
	l.records = append(l.records, r)
}

// Len returns the number of distinct messages.
func (l *Log) Len() int { return len(l.records) }

// Records returns a copy of the records in first-seen order.
func (l *Log) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}
