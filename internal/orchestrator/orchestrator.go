package orchestrator

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/recruitkit/screener/internal/intake"
	"github.com/recruitkit/screener/internal/jobspec"
	"github.com/recruitkit/screener/internal/results"
	"github.com/recruitkit/screener/internal/screening"
)

// State is the submission lifecycle phase. Submissions run
// Idle -> Validating -> Submitting -> {Success, Failure} -> Idle; the
// terminal phase of the last attempt is kept in LastOutcome.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateFailure    State = "failure"
)

// ErrorKind classifies a failed submission attempt.
type ErrorKind string

const (
	// KindNoResumes and KindNoJobDescription are detected locally before any
	// request is made.
	KindNoResumes        ErrorKind = "no_resumes"
	KindNoJobDescription ErrorKind = "no_job_description"

	// KindAnalysisFailed covers every post-submission failure: network,
	// timeout, non-2xx, malformed payload.
	KindAnalysisFailed ErrorKind = "analysis_failed"
)

// ErrSubmissionInFlight is returned when Submit is called while a previous
// request is still outstanding.
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

// SubmitError is a terminal error for a single submission attempt. Message is
// safe to show to the end user; the underlying cause is only wrapped for
// diagnostics.
type SubmitError struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *SubmitError) Error() string { return e.Message }

func (e *SubmitError) Unwrap() error { return e.cause }

// Analyzer is the outbound dependency: one request, whole batch, full result
// sequence or an error.
type Analyzer interface {
	Analyze(files []*intake.ResumeFile, spec *jobspec.JobSpec) (*screening.Results, error)
}

// Orchestrator validates submission preconditions, drives the
// request/response lifecycle against the analysis service and owns when the
// results store is cleared and repopulated. Failed attempts never touch the
// caller's file collection or job spec, so a retry needs no re-upload.
type Orchestrator struct {
	mu          sync.Mutex
	state       State
	lastOutcome State
	analyzer    Analyzer
	store       *results.Store
	logger      *zap.Logger
}

func New(analyzer Analyzer, store *results.Store, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Orchestrator{
		state:    StateIdle,
		analyzer: analyzer,
		store:    store,
		logger:   logger,
	}
}

// State returns the current lifecycle phase so callers can gate the submit
// action while a request is outstanding.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// LastOutcome returns the terminal phase of the most recent attempt, or
// StateIdle when nothing was attempted yet.
func (o *Orchestrator) LastOutcome() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastOutcome
}

// Submit validates the inputs and runs one analysis request. The resume-count
// check is evaluated before the description check, so when both are violated
// the reported error is KindNoResumes.
func (o *Orchestrator) Submit(files []*intake.ResumeFile, spec *jobspec.JobSpec) error {
	o.mu.Lock()
	if o.state == StateSubmitting {
		o.mu.Unlock()
		return ErrSubmissionInFlight
	}

	o.state = StateValidating

	if len(files) == 0 {
		o.state = StateIdle
		o.mu.Unlock()
		return &SubmitError{
			Kind:    KindNoResumes,
			Message: "add at least one resume before submitting",
		}
	}

	if !spec.HasDescription() {
		o.state = StateIdle
		o.mu.Unlock()
		return &SubmitError{
			Kind:    KindNoJobDescription,
			Message: "a job description is required",
		}
	}

	// Stale results never coexist with an in-flight request.
	o.store.Clear()
	o.state = StateSubmitting
	o.mu.Unlock()

	o.logger.Info("submitting resumes for analysis",
		zap.Int("resumes", len(files)),
		zap.Int("required_experience", spec.RequiredExperience),
	)

	res, err := o.analyzer.Analyze(files, spec)

	o.mu.Lock()
	defer o.mu.Unlock()

	if err != nil {
		o.lastOutcome = StateFailure
		o.state = StateIdle
		o.logger.Error("analysis request failed", zap.Error(err))
		return &SubmitError{
			Kind:    KindAnalysisFailed,
			Message: "analysis failed, please try again",
			cause:   err,
		}
	}

	o.store.Replace(res)
	o.lastOutcome = StateSuccess
	o.state = StateIdle

	o.logger.Info("analysis completed",
		zap.Int("submitted", len(files)),
		zap.Int("results", res.Len()),
	)

	return nil
}
