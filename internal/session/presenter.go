package session

import "github.com/ayusman/signtutor/internal/pose"

// Failure identifies why a frame or letter produced no score.
type Failure string

const (
	// FailureDegenerateInput marks a frame whose landmarks collapsed.
	FailureDegenerateInput Failure = "degenerate_input"
	// FailureNoReferenceData marks a letter with no canonical pose.
	FailureNoReferenceData Failure = "no_reference_data"
)

// Presenter receives the stream of score samples and per-frame failure
// states. Implementations must not block; a slow consumer must buffer or
// drop on its own side.
type Presenter interface {
	Present(sample pose.Sample)
	PresentFailure(kind Failure)
}

// Fanout broadcasts to multiple presenters.
type Fanout []Presenter

func (f Fanout) Present(sample pose.Sample) {
	for _, p := range f {
		p.Present(sample)
	}
}

func (f Fanout) PresentFailure(kind Failure) {
	for _, p := range f {
		p.PresentFailure(kind)
	}
}

type nopPresenter struct{}

func (nopPresenter) Present(pose.Sample)    {}
func (nopPresenter) PresentFailure(Failure) {}
