// Package action provides event actions for load generation.
package action

import (
	"io"
	"net/http"
	"strings"
	"time"

	"pacesmith/internal/core"
)

// HTTP issues one request per event and reports the outcome. The request is
// issued synchronously from the stream's goroutine; its duration never
// delays the next scheduled event beyond what the arrival model dictates,
// which is the whole point of scheduling arrivals independently.
type HTTP struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    string
	Client  *http.Client
}

// Do performs the request for the event scheduled at ts and returns the
// measurement. Status codes below 400 count as success.
func (a *HTTP) Do(streamID int, ts time.Time) core.Event {
	start := time.Now()

	method := a.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequest(method, a.URL, strings.NewReader(a.Body))
	if err != nil {
		return core.Event{
			StreamID:  streamID,
			Timestamp: ts,
			Duration:  time.Since(start),
			Success:   false,
			Error:     err.Error(),
		}
	}
	for k, v := range a.Headers {
		req.Header.Set(k, v)
	}

	resp, err := a.Client.Do(req)
	duration := time.Since(start)
	if err != nil {
		return core.Event{
			StreamID:  streamID,
			Timestamp: ts,
			Duration:  duration,
			Success:   false,
			Error:     err.Error(),
		}
	}
	defer resp.Body.Close()

	// Drain the body so the connection can be reused.
	io.Copy(io.Discard, resp.Body)

	success := resp.StatusCode < 400
	errStr := ""
	if !success {
		errStr = resp.Status
	}

	return core.Event{
		StreamID:  streamID,
		Timestamp: ts,
		Duration:  duration,
		Success:   success,
		Error:     errStr,
	}
}
