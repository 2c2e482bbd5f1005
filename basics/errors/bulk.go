package errors

import (
	"fmt"
	"strings"
	"sync"
)

// BulkError collects the failures of independent steps that all have to run,
// ex. closing the destination and removing the resume record at the end of a transfer
type BulkError struct {
	mutex   sync.Mutex
	entries []stepError
}

type stepError struct {
	step string
	err  error
}

func NewBulkError() *BulkError {
	return &BulkError{
		entries: make([]stepError, 0),
	}
}

// Add records the error of the step, nil errors are ignored
func (b *BulkError) Add(step string, err error) {
	if err == nil {
		return
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.entries = append(b.entries, stepError{step: step, err: err})
}

func (b *BulkError) HasError() bool {
	return b.Count() > 0
}

func (b *BulkError) Count() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	return len(b.entries)
}

// Unwrap exposes the collected errors to errors.Is and errors.As
func (b *BulkError) Unwrap() []error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	errs := make([]error, len(b.entries))
	for i, e := range b.entries {
		errs[i] = e.err
	}
	return errs
}

// ErrorOrNil returns nil when nothing is collected
func (b *BulkError) ErrorOrNil() error {
	if !b.HasError() {
		return nil
	}
	return b
}

func (b *BulkError) Error() string {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	messages := make([]string, len(b.entries))
	for i, e := range b.entries {
		messages[i] = fmt.Sprintf("%s: %s", e.step, e.err)
	}
	return strings.Join(messages, "; ")
}

var _ error = &BulkError{}
