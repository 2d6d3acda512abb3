package api

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/seantiz/abacus/internal/calc"
	"github.com/seantiz/abacus/internal/model"
)

// readEvents collects data lines and event names until the body ends.
func readEvents(t *testing.T, resp *http.Response) (data []model.Display, events []string) {
	t.Helper()
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if ev, ok := strings.CutPrefix(line, "event: "); ok {
			events = append(events, ev)
			scanner.Scan() // data line of the named event
			continue
		}
		if raw, ok := strings.CutPrefix(line, "data: "); ok {
			var d model.Display
			if err := json.Unmarshal([]byte(raw), &d); err != nil {
				t.Fatalf("unmarshal %q: %v", raw, err)
			}
			data = append(data, d)
		}
	}
	return data, events
}

func TestStreamDisplayNotFound(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/sessions/nonexistent/display")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestStreamDisplayClosedSession(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	sess, err := srv.sessions.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := srv.sessions.Close(ctx, sess.ID); err != nil {
		t.Fatalf("Close: %v", err)
	}

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/sessions/" + sess.ID + "/display")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}

	data, events := readEvents(t, resp)
	if len(data) != 1 || data[0].Input != "0" {
		t.Errorf("data = %+v, want the final display", data)
	}
	if len(events) != 1 || events[0] != "done" {
		t.Errorf("events = %v, want [done]", events)
	}
}

func TestStreamDisplayReceivesUpdates(t *testing.T) {
	srv := newTestServer(t)

	sess, err := srv.sessions.Create(context.Background())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", ts.URL+"/v1/sessions/"+sess.ID+"/display", nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	if _, err := srv.sessions.Press(ctx, sess.ID, []calc.Key{calc.DigitKey("7")}); err != nil {
		t.Fatalf("Press: %v", err)
	}
	if _, err := srv.sessions.Press(ctx, sess.ID, []calc.Key{calc.OperatorKey(calc.Multiply)}); err != nil {
		t.Fatalf("Press: %v", err)
	}
	if _, err := srv.sessions.Close(ctx, sess.ID); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, events := readEvents(t, resp)

	want := []model.Display{
		{Input: "0"},
		{Input: "7"},
		{Input: "7", Accumulator: "7", Operator: "*"},
	}
	if len(data) != len(want) {
		t.Fatalf("got %d updates, want %d: %+v", len(data), len(want), data)
	}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("update[%d] = %+v, want %+v", i, data[i], want[i])
		}
	}
	if len(events) != 1 || events[0] != "done" {
		t.Errorf("events = %v, want [done]", events)
	}
}
