// Package client submits the comment form of a page to the comment
// endpoint, the way the page's script does in a browser.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/looplab/fsm"
	"go.uber.org/zap"
)

// SuccessMessage is shown after the endpoint accepted a comment.
const SuccessMessage = "Thank you for the comment! It should be visible after you refresh the page."

const maxResponseSize = 1 << 20

var (
	ErrBusy            = errors.New("a submission is already in progress")
	ErrInvalidEndpoint = errors.New("invalid endpoint")
)

// State is the state of a Submitter.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateError      State = "error"
)

const (
	eventSubmit  = "submit"
	eventSucceed = "succeed"
	eventFail    = "fail"
)

// Outcome describes a finished submission.
type Outcome struct {
	State State

	// StatusCode is zero if no response was received.
	StatusCode int

	Area MessageArea
}

type Params struct {
	// Endpoint is the absolute url the form is posted to.
	Endpoint string

	// Client is the http client to use. Defaults to http.DefaultClient.
	Client *http.Client

	// SuccessMessage overrides the text shown on success.
	SuccessMessage string

	Log *zap.Logger
}

// Submitter posts a form and keeps the message area up to date. At most
// one submission is in flight per Submitter.
type Submitter struct {
	endpoint       string
	client         *http.Client
	successMessage string
	fsm            *fsm.FSM
	log            *zap.Logger

	mu   sync.Mutex
	area MessageArea
}

func New(params Params) (*Submitter, error) {
	endpoint, err := url.Parse(params.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" || endpoint.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an absolute http url", ErrInvalidEndpoint, params.Endpoint)
	}

	s := &Submitter{
		endpoint:       endpoint.String(),
		client:         params.Client,
		successMessage: params.SuccessMessage,
		log:            params.Log,
	}

	if s.client == nil {
		s.client = http.DefaultClient
	}
	if s.successMessage == "" {
		s.successMessage = SuccessMessage
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}

	s.fsm = fsm.NewFSM(
		string(StateIdle),
		fsm.Events{
			{Name: eventSubmit, Src: []string{string(StateIdle), string(StateSuccess), string(StateError)}, Dst: string(StateSubmitting)},
			{Name: eventSucceed, Src: []string{string(StateSubmitting)}, Dst: string(StateSuccess)},
			{Name: eventFail, Src: []string{string(StateSubmitting)}, Dst: string(StateError)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				s.log.Debug("state changed",
					zap.String("event", e.Event),
					zap.String("from", e.Src),
					zap.String("to", e.Dst),
				)
			},
			"enter_" + string(StateSubmitting): func(_ context.Context, _ *fsm.Event) {
				s.updateArea(func(a *MessageArea) {
					a.clear()
				})
			},
			"enter_" + string(StateSuccess): func(_ context.Context, _ *fsm.Event) {
				s.updateArea(func(a *MessageArea) {
					a.Text = s.successMessage
					a.add(ClassMessage, ClassSuccess)
				})
			},
			"enter_" + string(StateError): func(_ context.Context, e *fsm.Event) {
				var message string
				if len(e.Args) > 0 {
					message, _ = e.Args[0].(string)
				}
				s.updateArea(func(a *MessageArea) {
					a.add(ClassMessage, ClassError)
					a.Text = message
				})
			},
		},
	)

	return s, nil
}

// State returns the current state.
func (s *Submitter) State() State {
	return State(s.fsm.Current())
}

// Area returns a copy of the message area.
func (s *Submitter) Area() MessageArea {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.area.clone()
}

// Submit posts the current values of form. On a 200 response the
// success message is shown and the form is reset; on any other response
// the endpoint's message is shown and the form is left as is. Transport
// failures are shown like rejected submissions. The returned error is
// non-nil only if the submission could not be started.
func (s *Submitter) Submit(ctx context.Context, form *Form) (Outcome, error) {
	if err := s.fsm.Event(ctx, eventSubmit); err != nil {
		var invalid fsm.InvalidEventError
		var inTransition fsm.InTransitionError
		if errors.As(err, &invalid) || errors.As(err, &inTransition) {
			return s.outcome(0), ErrBusy
		}
		return s.outcome(0), err
	}

	// the submission must settle even when ctx ends mid-flight
	settleCtx := context.WithoutCancel(ctx)

	payload := form.Payload().Encode()

	log := s.log.With(
		zap.String("endpoint", s.endpoint),
		zap.String("form", form.ID),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(payload))
	if err != nil {
		s.transition(settleCtx, eventFail, err.Error())
		return s.outcome(0), fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	res, err := s.client.Do(req)
	if err != nil {
		log.Debug("request failed", zap.Error(err))
		s.transition(settleCtx, eventFail, err.Error())
		return s.outcome(0), nil
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize))
	if err != nil {
		log.Debug("failed to read response", zap.Error(err))
	}

	log = log.With(zap.Int("status", res.StatusCode))

	if res.StatusCode == http.StatusOK {
		log.Debug("comment accepted")
		s.transition(settleCtx, eventSucceed)
		form.Reset()
		return s.outcome(res.StatusCode), nil
	}

	message := errorMessage(res.StatusCode, body)
	log.Debug("comment rejected", zap.String("message", message))
	s.transition(settleCtx, eventFail, message)

	return s.outcome(res.StatusCode), nil
}

func (s *Submitter) transition(ctx context.Context, event string, args ...any) {
	if err := s.fsm.Event(ctx, event, args...); err != nil {
		s.log.Error("invalid state transition",
			zap.String("event", event),
			zap.String("state", s.fsm.Current()),
			zap.Error(err),
		)
	}
}

func (s *Submitter) updateArea(fn func(*MessageArea)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.area)
}

func (s *Submitter) outcome(status int) Outcome {
	return Outcome{
		State:      s.State(),
		StatusCode: status,
		Area:       s.Area(),
	}
}
