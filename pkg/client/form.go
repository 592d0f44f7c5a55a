package client

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// FormState enumerates the submission state machine.
type FormState string

const (
	FormStateEditing    FormState = "editing"
	FormStateSubmitting FormState = "submitting"
)

// ErrSubmissionInFlight reports a rejected re-entrant submit.
var ErrSubmissionInFlight = errors.New("submission already in flight")

// BugSubmitter is the slice of the API the form needs.
type BugSubmitter interface {
	CreateBug(ctx context.Context, input CreateBugInput) (*Bug, error)
}

// BugForm collects title, description and priority, validates presence before
// calling the API, and surfaces either the created bug through the success
// callback or a field-level error map. A single submission may be in flight
// per form instance.
type BugForm struct {
	mu        sync.Mutex
	api       BugSubmitter
	state     FormState
	onSuccess func(Bug)

	fieldErrors map[string]string
	submitError string
}

// NewBugForm builds a form bound to the given API and success callback.
func NewBugForm(api BugSubmitter, onSuccess func(Bug)) *BugForm {
	return &BugForm{
		api:         api,
		state:       FormStateEditing,
		onSuccess:   onSuccess,
		fieldErrors: map[string]string{},
	}
}

// State returns the current state.
func (f *BugForm) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// FieldErrors returns the last validation results, keyed by field name.
func (f *BugForm) FieldErrors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.fieldErrors))
	for k, v := range f.fieldErrors {
		out[k] = v
	}
	return out
}

// SubmitError returns the generic submission-error slot, empty when the last
// submit succeeded or failed on field validation only.
func (f *BugForm) SubmitError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitError
}

// Submit runs presence validation and, when it passes, posts the bug. The
// state moves editing -> submitting -> (success | failed) and always lands
// back in editing.
func (f *BugForm) Submit(ctx context.Context, title, description, priority string) error {
	f.mu.Lock()
	if f.state == FormStateSubmitting {
		f.mu.Unlock()
		return ErrSubmissionInFlight
	}

	problems := map[string]string{}
	if strings.TrimSpace(title) == "" {
		problems["title"] = "Title is required"
	}
	if strings.TrimSpace(description) == "" {
		problems["description"] = "Description is required"
	}
	if len(problems) > 0 {
		f.fieldErrors = problems
		f.submitError = ""
		f.mu.Unlock()
		return &APIError{Status: 0, Message: "validation failed", FieldErrors: problems}
	}

	f.state = FormStateSubmitting
	f.fieldErrors = map[string]string{}
	f.submitError = ""
	f.mu.Unlock()

	bug, err := f.api.CreateBug(ctx, CreateBugInput{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Priority:    priority,
	})

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = FormStateEditing
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && len(apiErr.FieldErrors) > 0 {
			f.fieldErrors = apiErr.FieldErrors
		} else {
			f.submitError = err.Error()
		}
		return err
	}
	if f.onSuccess != nil {
		f.onSuccess(*bug)
	}
	return nil
}
