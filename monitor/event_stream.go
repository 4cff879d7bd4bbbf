package monitor

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/launchdarkly/assert-harness/assert"
	"github.com/launchdarkly/assert-harness/framework"
	"github.com/launchdarkly/assert-harness/framework/ldtest"
	"github.com/launchdarkly/assert-harness/framework/stacktrace"

	"github.com/gorilla/mux"
	"github.com/launchdarkly/eventsource"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// Event names sent on the stream.
const (
	EventStarted  = "started"
	EventPassed   = "passed"
	EventFailed   = "failed"
	EventError    = "error"
	EventFinished = "finished"
	EventSkipped  = "skipped"
	EventEnd      = "end"
)

const testEventsChannel = "tests"

type eventSourceDebugLogger struct {
	logger framework.Logger
}

func (l eventSourceDebugLogger) Println(args ...interface{}) {
	l.logger.Printf("%s", fmt.Sprintln(args...))
}

func (l eventSourceDebugLogger) Printf(fmt string, args ...interface{}) {
	l.logger.Printf(fmt, args...)
}

// EventStream is an ldtest.TestLogger that publishes test events as Server-Sent Events. It is
// also an http.Handler serving these endpoints:
//
//	GET /events   the event stream; a new subscriber first receives every event sent so far
//	GET /status   a JSON summary of the run so far
//
// Each event's data is a JSON object with a "test" property naming the test, except for the
// "end" event, which has the totals of the run.
//
// Every subscriber receives every event exactly once, in the order sent, however its connection
// interleaves with the run.
type EventStream struct {
	streams     *eventsource.Server
	handler     http.Handler
	debugLogger framework.Logger
	history     []eventsource.Event
	status      Status
	closed      bool
	done        chan struct{}
	lock        sync.Mutex
	sent        *sync.Cond
}

// Status is the summary served by GET /status.
type Status struct {
	Started  int
	Finished int
	Skipped  int
	Passes   int
	Failures int
	Errors   int
	Done     bool
}

type testEvent struct {
	id   string
	name string
	data ldvalue.Value
}

func (e testEvent) Event() string { return e.name }
func (e testEvent) Id() string    { return e.id } //nolint:stylecheck
func (e testEvent) Data() string  { return e.data.JSONString() }

// NewEventStream creates an EventStream. The debug logger receives a line for each event sent.
func NewEventStream(debugLogger framework.Logger) *EventStream {
	if debugLogger == nil {
		debugLogger = framework.NullLogger()
	}
	streams := eventsource.NewServer()
	streams.ReplayAll = true
	streams.Logger = eventSourceDebugLogger{debugLogger}

	s := &EventStream{
		streams:     streams,
		debugLogger: debugLogger,
		done:        make(chan struct{}),
	}
	s.sent = sync.NewCond(&s.lock)
	streams.Register(testEventsChannel, s)

	router := mux.NewRouter()
	router.HandleFunc("/events", streams.Handler(testEventsChannel)).Methods("GET")
	router.HandleFunc("/status", s.serveStatus).Methods("GET")
	s.handler = router

	return s
}

func (s *EventStream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Close disconnects all subscribers.
func (s *EventStream) Close() {
	s.lock.Lock()
	if s.closed {
		s.lock.Unlock()
		return
	}
	s.closed = true
	close(s.done)
	s.sent.Broadcast()
	s.lock.Unlock()
	s.streams.Close()
}

// Status returns the summary of the run so far.
func (s *EventStream) Status() Status {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.status
}

// Replay is called by the eventsource server for each new subscriber. The channel it returns
// is the subscriber's whole feed: it delivers the events sent so far, then each later event as it
// is sent, and is closed by Close. A reconnecting subscriber that sends the id of the last event
// it received continues after that event.
func (s *EventStream) Replay(channel, id string) chan eventsource.Event {
	start, err := strconv.Atoi(id)
	if err != nil || start < 0 {
		start = 0
	}
	feed := make(chan eventsource.Event)
	go func() {
		defer close(feed)
		for next := start; ; next++ {
			s.lock.Lock()
			for next >= len(s.history) && !s.closed {
				s.sent.Wait()
			}
			if s.closed {
				s.lock.Unlock()
				return
			}
			e := s.history[next]
			s.lock.Unlock()

			select {
			case feed <- e:
			case <-s.done:
				return
			}
		}
	}()
	return feed
}

func (s *EventStream) TestStarted(id ldtest.TestID) {
	s.publish(EventStarted, id, func(status *Status) { status.Started++ }, nil)
}

func (s *EventStream) TestPassed(id ldtest.TestID, message string) {
	s.publish(EventPassed, id, func(status *Status) { status.Passes++ }, func(b *ldvalue.ObjectBuilder) {
		b.Set("message", ldvalue.String(message))
	})
}

// TestError sends a "failed" event for an assertion failure, and an "error" event for anything
// else. Either one has a "stack" property if the error carries a stacktrace.
func (s *EventStream) TestError(id ldtest.TestID, err error) {
	stack := ldtest.FailureStacktrace(err)
	name := EventError
	if assert.IsAssertionError(err) {
		name = EventFailed
	}
	s.publish(name, id, func(status *Status) {
		if name == EventFailed {
			status.Failures++
		} else {
			status.Errors++
		}
	}, func(b *ldvalue.ObjectBuilder) {
		b.Set("message", ldvalue.String(err.Error()))
		if len(stack) != 0 {
			b.Set("stack", stackValue(stack))
		}
	})
}

func (s *EventStream) TestFinished(id ldtest.TestID, result ldtest.TestResult, debugOutput framework.CapturedOutput) {
	s.publish(EventFinished, id, func(status *Status) { status.Finished++ }, func(b *ldvalue.ObjectBuilder) {
		b.Set("passes", ldvalue.Int(result.Passes))
		b.Set("errors", ldvalue.Int(len(result.Errors)))
		if result.NonCritical {
			b.Set("nonCritical", ldvalue.String(result.Explanation))
		}
	})
}

func (s *EventStream) TestSkipped(id ldtest.TestID, reason string) {
	s.publish(EventSkipped, id, func(status *Status) { status.Skipped++ }, func(b *ldvalue.ObjectBuilder) {
		if reason != "" {
			b.Set("reason", ldvalue.String(reason))
		}
	})
}

// EndLog sends the "end" event. Subscribers stay connected until Close is called.
func (s *EventStream) EndLog(results ldtest.Results) error {
	data := ldvalue.ObjectBuild().
		Set("tests", ldvalue.Int(len(results.Tests))).
		Set("passes", ldvalue.Int(results.Passes())).
		Set("failures", ldvalue.Int(len(results.Failures))).
		Set("nonCriticalFailures", ldvalue.Int(len(results.NonCriticalFailures))).
		Set("ok", ldvalue.Bool(results.OK())).
		Build()
	s.send(EventEnd, data, func(status *Status) { status.Done = true })
	return nil
}

func (s *EventStream) publish(
	name string,
	id ldtest.TestID,
	updateStatus func(*Status),
	addProps func(*ldvalue.ObjectBuilder),
) {
	b := ldvalue.ObjectBuild().Set("test", ldvalue.String(id.String()))
	if addProps != nil {
		addProps(b)
	}
	s.send(name, b.Build(), updateStatus)
}

func (s *EventStream) send(name string, data ldvalue.Value, updateStatus func(*Status)) {
	s.lock.Lock()
	e := testEvent{id: fmt.Sprint(len(s.history) + 1), name: name, data: data}
	s.history = append(s.history, e)
	updateStatus(&s.status)
	s.sent.Broadcast()
	s.lock.Unlock()

	s.debugLogger.Printf("sending %s event with data: %s", e.Event(), e.Data())
}

func (s *EventStream) serveStatus(w http.ResponseWriter, r *http.Request) {
	status := s.Status()
	data := ldvalue.ObjectBuild().
		Set("started", ldvalue.Int(status.Started)).
		Set("finished", ldvalue.Int(status.Finished)).
		Set("skipped", ldvalue.Int(status.Skipped)).
		Set("passes", ldvalue.Int(status.Passes)).
		Set("failures", ldvalue.Int(status.Failures)).
		Set("errors", ldvalue.Int(status.Errors)).
		Set("done", ldvalue.Bool(status.Done)).
		Build()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(data.JSONString()))
}

func stackValue(frames []stacktrace.Frame) ldvalue.Value {
	b := ldvalue.ArrayBuild()
	for _, f := range frames {
		b.Add(ldvalue.String(f.String()))
	}
	return b.Build()
}
