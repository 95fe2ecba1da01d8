package summary

import "fmt"

// SummaryError represents a failure producing a policy card from text.
type SummaryError struct {
	Message string
	Cause   error
}

func (e *SummaryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("summary error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("summary error: %s", e.Message)
}

func (e *SummaryError) Unwrap() error {
	return e.Cause
}
