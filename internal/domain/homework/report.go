// internal/domain/homework/report.go
package homework

// ReportState remembers what has already been delivered to the chat.
// It lives in memory only and starts empty on every process start.
type ReportState struct {
	lastSent  map[string]string // homework name -> last delivered message
	lastError string
}

func NewReportState() *ReportState {
	return &ReportState{lastSent: make(map[string]string)}
}

// Changed reports whether message differs from what was last delivered for name.
func (s *ReportState) Changed(name, message string) bool {
	prev, ok := s.lastSent[name]
	return !ok || prev != message
}

// Commit records a delivered homework message.
func (s *ReportState) Commit(name, message string) {
	s.lastSent[name] = message
}

// ErrorChanged reports whether an error report differs from the last delivered one.
func (s *ReportState) ErrorChanged(message string) bool {
	return s.lastError != message
}

func (s *ReportState) CommitError(message string) {
	s.lastError = message
}

// ClearError forgets the last error report so a recurrence is reported again.
func (s *ReportState) ClearError() {
	s.lastError = ""
}
