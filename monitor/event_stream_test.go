package monitor

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/launchdarkly/assert-harness/framework/helpers"
	"github.com/launchdarkly/assert-harness/framework/ldtest"

	"github.com/launchdarkly/eventsource"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	m "github.com/launchdarkly/go-test-helpers/v2/matchers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subscribe(t *testing.T, server *httptest.Server) *eventsource.Stream {
	req, _ := http.NewRequest("GET", server.URL+"/events", nil)
	stream, err := eventsource.SubscribeWithRequest("", req)
	require.NoError(t, err)
	return stream
}

func requireEvent(t *testing.T, stream *eventsource.Stream) eventsource.Event {
	return helpers.RequireValueWithMessage(t, stream.Events, time.Second*5, "timed out waiting for event")
}

func requireEventData(t *testing.T, stream *eventsource.Stream, name string) ldvalue.Value {
	e := requireEvent(t, stream)
	require.Equal(t, name, e.Event())
	return ldvalue.Parse([]byte(e.Data()))
}

func TestNewSubscriberReceivesEarlierEvents(t *testing.T) {
	s := NewEventStream(nil)
	defer s.Close()

	results := ldtest.Run(ldtest.TestConfiguration{TestLogger: s}, func(t *ldtest.T) {
		t.Run("a", func(t *ldtest.T) {
			t.Assert().Equal(1, "1", "loosely equal")
			t.Assert().StrictEqual(1, "1")
		})
	})
	require.NoError(t, s.EndLog(results))

	httphelpers.WithServer(s, func(server *httptest.Server) {
		stream := subscribe(t, server)
		defer stream.Close()

		m.In(t).Assert(requireEventData(t, stream, EventStarted).JSONString(), m.JSONStrEqual(`{"test":"a"}`))
		m.In(t).Assert(requireEventData(t, stream, EventPassed).JSONString(),
			m.JSONStrEqual(`{"test":"a","message":"loosely equal"}`))

		failed := requireEventData(t, stream, EventFailed)
		assert.Equal(t, "a", failed.GetByKey("test").StringValue())
		assert.Equal(t, `AssertionError : "1" === 1`, failed.GetByKey("message").StringValue())

		m.In(t).Assert(requireEventData(t, stream, EventFinished).JSONString(),
			m.JSONStrEqual(`{"test":"a","passes":1,"errors":1}`))

		end := requireEventData(t, stream, EventEnd)
		assert.Equal(t, 1, end.GetByKey("passes").IntValue())
		assert.Equal(t, 1, end.GetByKey("failures").IntValue())
		assert.False(t, end.GetByKey("ok").BoolValue())
	})
}

func TestSubscriberReceivesLiveEvents(t *testing.T) {
	s := NewEventStream(nil)
	defer s.Close()

	httphelpers.WithServer(s, func(server *httptest.Server) {
		stream := subscribe(t, server)
		defer stream.Close()

		go func() {
			s.TestSkipped(ldtest.TestID{"x", "y"}, "excluded by filter parameters")
			s.TestError(ldtest.TestID{"x"}, errors.New("connection refused"))
		}()

		m.In(t).Assert(requireEventData(t, stream, EventSkipped).JSONString(),
			m.JSONStrEqual(`{"test":"x/y","reason":"excluded by filter parameters"}`))
		m.In(t).Assert(requireEventData(t, stream, EventError).JSONString(),
			m.JSONStrEqual(`{"test":"x","message":"connection refused"}`))
		helpers.RequireNoMoreValues(t, stream.Events, time.Millisecond*50)
	})
}

func TestSubscriberDuringRunReceivesEachEventOnce(t *testing.T) {
	s := NewEventStream(nil)
	defer s.Close()

	const count = 200
	sendAll := func() {
		for i := 0; i < count; i++ {
			s.TestPassed(ldtest.TestID{"a"}, "")
		}
	}

	httphelpers.WithServer(s, func(server *httptest.Server) {
		go sendAll()
		stream := subscribe(t, server)
		defer stream.Close()

		for i := 1; i <= count; i++ {
			e := requireEvent(t, stream)
			require.Equal(t, fmt.Sprint(i), e.Id(), "events must arrive in order without repeats")
		}
		helpers.RequireNoMoreValues(t, stream.Events, time.Millisecond*50)
	})
}

func TestReplayFeedContinuesWithLaterEvents(t *testing.T) {
	s := NewEventStream(nil)
	defer s.Close()

	s.TestStarted(ldtest.TestID{"a"})
	feed := s.Replay(testEventsChannel, "")
	go s.TestPassed(ldtest.TestID{"a"}, "")

	first := helpers.RequireValue(t, feed, time.Second)
	second := helpers.RequireValue(t, feed, time.Second)
	assert.Equal(t, EventStarted, first.Event())
	assert.Equal(t, EventPassed, second.Event())
	helpers.RequireNoMoreValues(t, feed, time.Millisecond*50)
}

func TestReplayFeedResumesAfterLastEventID(t *testing.T) {
	s := NewEventStream(nil)
	defer s.Close()

	s.TestStarted(ldtest.TestID{"a"})
	s.TestPassed(ldtest.TestID{"a"}, "")
	s.TestFinished(ldtest.TestID{"a"}, ldtest.TestResult{}, nil)

	feed := s.Replay(testEventsChannel, "2")
	e := helpers.RequireValue(t, feed, time.Second)
	assert.Equal(t, "3", e.Id())
	assert.Equal(t, EventFinished, e.Event())
}

func TestCloseEndsReplayFeeds(t *testing.T) {
	s := NewEventStream(nil)
	feed := s.Replay(testEventsChannel, "")
	s.Close()
	s.Close()

	open := helpers.RequireValueWithMessage(t, closedSignal(feed), time.Second, "feed was not closed")
	assert.False(t, open)
}

func closedSignal(feed chan eventsource.Event) <-chan bool {
	ch := make(chan bool, 1)
	go func() {
		_, open := <-feed
		ch <- open
	}()
	return ch
}

func TestStatusIsDoneAfterEndLog(t *testing.T) {
	s := NewEventStream(nil)
	defer s.Close()

	go func() {
		_ = s.EndLog(ldtest.Results{})
	}()
	helpers.RequireEventually(t, func() bool { return s.Status().Done }, time.Second, time.Millisecond*10,
		"timed out waiting for end of run")
}

func TestStatusEndpoint(t *testing.T) {
	s := NewEventStream(nil)
	defer s.Close()

	s.TestStarted(ldtest.TestID{"a"})
	s.TestPassed(ldtest.TestID{"a"}, "")
	s.TestPassed(ldtest.TestID{"a"}, "")
	s.TestError(ldtest.TestID{"a"}, errors.New("oops"))
	s.TestFinished(ldtest.TestID{"a"}, ldtest.TestResult{}, nil)

	httphelpers.WithServer(s, func(server *httptest.Server) {
		resp, err := http.Get(server.URL + "/status")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		m.In(t).Assert(string(body), m.JSONStrEqual(
			`{"started":1,"finished":1,"skipped":0,"passes":2,"failures":0,"errors":1,"done":false}`))
	})

	assert.Equal(t, Status{Started: 1, Finished: 1, Passes: 2, Errors: 1}, s.Status())
}

func TestUnknownPathIsNotFound(t *testing.T) {
	s := NewEventStream(nil)
	defer s.Close()

	httphelpers.WithServer(s, func(server *httptest.Server) {
		resp, err := http.Get(server.URL + "/other")
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
