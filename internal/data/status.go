// internal/data/status.go
package data

// Status is the reading state of a book. The set is closed: external input
// is parsed onto one of the three variants before it reaches storage, and
// the books table carries a CHECK constraint as a backstop.
type Status string

const (
	StatusToRead  Status = "to-read"
	StatusReading Status = "reading"
	StatusRead    Status = "read"
)

// Statuses lists every variant in display order, for rendering select options.
func Statuses() []Status {
	return []Status{StatusToRead, StatusReading, StatusRead}
}

// ParseStatus maps raw form input onto a Status. Anything outside the set,
// including the empty string, falls back to StatusToRead.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusReading:
		return StatusReading
	case StatusRead:
		return StatusRead
	default:
		return StatusToRead
	}
}

func (s Status) String() string {
	return string(s)
}
