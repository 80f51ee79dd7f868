package handler_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/hr-ops/internal/domain"
	"github.com/pkordes/hr-ops/internal/events"
	"github.com/pkordes/hr-ops/internal/handler"
)

// readFrame reads one SSE frame (lines up to the blank separator).
func readFrame(t *testing.T, r *bufio.Reader) []string {
	t.Helper()
	var lines []string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		if line == "" {
			return lines
		}
		lines = append(lines, line)
	}
}

func TestStreamEvents_DeliversPublishedChanges(t *testing.T) {
	broker := events.NewBroker(discardLogger())
	t.Cleanup(broker.Close)
	trips := &mockTripServicer{
		delete: func(_ context.Context, _ int64) error { return nil },
	}
	srv := httptest.NewServer(newHTTPHandler(handler.Services{Trips: trips, Events: broker}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	body := bufio.NewReader(resp.Body)
	assert.Equal(t, []string{": connected"}, readFrame(t, body))
	require.Eventually(t, func() bool { return broker.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	// A successful write through the API is what publishes.
	del, err := http.NewRequestWithContext(ctx, http.MethodDelete, srv.URL+"/trips/3", nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(del)
	require.NoError(t, err)
	delResp.Body.Close()
	require.Equal(t, http.StatusNoContent, delResp.StatusCode)

	frame := readFrame(t, body)
	require.Len(t, frame, 3)
	assert.True(t, strings.HasPrefix(frame[0], "id: "))
	assert.Equal(t, "event: "+events.TripsUpdated, frame[1])

	var ev events.Event
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(frame[2], "data: ")), &ev))
	assert.Equal(t, events.TripsUpdated, ev.Type)
	assert.Equal(t, strings.TrimPrefix(frame[0], "id: "), ev.ID)
}

func TestStreamEvents_EndsWhenBrokerCloses(t *testing.T) {
	broker := events.NewBroker(discardLogger())
	srv := httptest.NewServer(newHTTPHandler(handler.Services{Events: broker}))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/events")
	require.NoError(t, err)
	defer resp.Body.Close()

	body := bufio.NewReader(resp.Body)
	readFrame(t, body)
	require.Eventually(t, func() bool { return broker.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	broker.Close()

	_, err = body.ReadString('\n')
	assert.Error(t, err, "stream should end after the broker closes")
}

// Failed writes never reach subscribers.
func TestStreamEvents_NoEventOnFailedWrite(t *testing.T) {
	broker := &recordingBroker{}
	trips := &mockTripServicer{
		delete: func(_ context.Context, _ int64) error { return domain.ErrNotFound },
	}
	h := newHTTPHandler(handler.Services{Trips: trips, Events: broker})

	rec := do(h, http.MethodDelete, "/trips/3", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, broker.types())
}
