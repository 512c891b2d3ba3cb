package gridform_test

import (
	"context"
	"sync"
)

// recorder is a scripted Interaction that records every prompt.
type recorder struct {
	mx       sync.Mutex
	answer   bool
	confirms []string
	notes    []string
}

func newRecorder(answer bool) *recorder {
	return &recorder{answer: answer}
}

func (r *recorder) Confirm(_ context.Context, msg string) bool {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.confirms = append(r.confirms, msg)
	return r.answer
}

func (r *recorder) Notify(_ context.Context, msg string) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.notes = append(r.notes, msg)
}

func (r *recorder) Notes() []string {
	r.mx.Lock()
	defer r.mx.Unlock()
	return append([]string(nil), r.notes...)
}

func (r *recorder) Confirms() []string {
	r.mx.Lock()
	defer r.mx.Unlock()
	return append([]string(nil), r.confirms...)
}

type focusRecorder struct {
	rowID, field string
}

func (f *focusRecorder) Focus(rowID, field string) {
	f.rowID, f.field = rowID, field
}
