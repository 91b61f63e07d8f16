package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bft-labs/midpoint/internal/plot"
)

const (
	workedX = "1, 1.3, 1.6, 1.9, 2.2, 2.5, 2.8"
	workedY = "1.449, 2.06, 2.645, 3.216, 3.779, 4.338, 4.898"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv, err := New(Config{
		MaxPoints:    100,
		MaxBodyBytes: 4096,
		Precision:    4,
		Chart:        plot.Options{Width: 320, Height: 240, Format: plot.PNG},
		DefaultX:     workedX,
		DefaultY:     workedY,
	}, nil, prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func postJSON(t *testing.T, url string, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, out
}

func TestCompute_OK(t *testing.T) {
	_, ts := newTestServer(t)

	resp, out := postJSON(t, ts.URL+"/api/compute", `{"x":[0,1,2],"y":[0,2,4]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %v", resp.StatusCode, out)
	}
	if out["result"] != 4.0 {
		t.Errorf("result = %v, want 4", out["result"])
	}
	if out["formatted"] != "4.0000" {
		t.Errorf("formatted = %v, want 4.0000", out["formatted"])
	}
	if out["ascending"] != true {
		t.Errorf("ascending = %v, want true", out["ascending"])
	}
	segs, ok := out["segments"].([]interface{})
	if !ok || len(segs) != 2 {
		t.Fatalf("segments = %v, want 2 entries", out["segments"])
	}
	first := segs[0].(map[string]interface{})
	if first["mid"] != 0.5 || first["height"] != 1.0 || first["area"] != 1.0 {
		t.Errorf("first segment = %v", first)
	}
}

func TestCompute_Precision(t *testing.T) {
	_, ts := newTestServer(t)

	_, out := postJSON(t, ts.URL+"/api/compute", `{"x":[0,1],"y":[1,2],"precision":1}`)
	if out["formatted"] != "1.5" {
		t.Errorf("formatted = %v, want 1.5", out["formatted"])
	}
}

func TestCompute_Errors(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantKind   string
	}{
		{name: "malformed json", body: `{"x":[1,2]`, wantStatus: http.StatusBadRequest, wantKind: "parse"},
		{name: "string values", body: `{"x":["a","b"],"y":[1,2]}`, wantStatus: http.StatusBadRequest, wantKind: "parse"},
		{name: "missing y", body: `{"x":[1,2]}`, wantStatus: http.StatusBadRequest, wantKind: "parse"},
		{name: "unknown field", body: `{"x":[1,2],"y":[1,2],"z":1}`, wantStatus: http.StatusBadRequest, wantKind: "parse"},
		{name: "length mismatch", body: `{"x":[1,2,3],"y":[1,2]}`, wantStatus: http.StatusUnprocessableEntity, wantKind: "length_mismatch"},
		{name: "single point", body: `{"x":[1],"y":[1]}`, wantStatus: http.StatusUnprocessableEntity, wantKind: "insufficient_data"},
		{name: "empty", body: `{"x":[],"y":[]}`, wantStatus: http.StatusUnprocessableEntity, wantKind: "insufficient_data"},
		{name: "overflowing estimate", body: `{"x":[-1.7e308,1.7e308],"y":[1e10,1e10]}`, wantStatus: http.StatusUnprocessableEntity, wantKind: "non_finite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, out := postJSON(t, ts.URL+"/api/compute", tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d (%v)", resp.StatusCode, tt.wantStatus, out)
			}
			if out["kind"] != tt.wantKind {
				t.Errorf("kind = %v, want %v", out["kind"], tt.wantKind)
			}
			if out["error"] == "" || out["error"] == nil {
				t.Error("expected error message")
			}
		})
	}
}

func TestCompute_TooManyPoints(t *testing.T) {
	_, ts := newTestServer(t)

	xs := make([]string, 101)
	for i := range xs {
		xs[i] = "1"
	}
	arr := "[" + strings.Join(xs, ",") + "]"
	resp, out := postJSON(t, ts.URL+"/api/compute", `{"x":`+arr+`,"y":`+arr+`}`)
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want %d (%v)", resp.StatusCode, http.StatusRequestEntityTooLarge, out)
	}
	if out["kind"] != "too_many_points" {
		t.Errorf("kind = %v, want too_many_points", out["kind"])
	}
}

func TestCompute_BodyTooLarge(t *testing.T) {
	_, ts := newTestServer(t)

	big := `{"x":[` + strings.Repeat("1,", 4096) + `1],"y":[1]}`
	resp, out := postJSON(t, ts.URL+"/api/compute", big)
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413 (%v)", resp.StatusCode, out)
	}
}

func TestIndex(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	page := string(body)
	if !strings.Contains(page, "Midpoint Rule Calculator") {
		t.Error("page title missing")
	}
	if !strings.Contains(page, workedX) {
		t.Error("default x values not prefilled")
	}
	if !strings.Contains(page, "Compute Integral") {
		t.Error("submit button missing")
	}
}

func TestIndex_Submit(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name     string
		x, y     string
		contains []string
		excludes []string
	}{
		{
			name:     "valid input",
			x:        "0, 1, 2",
			y:        "0, 2, 4",
			contains: []string{"The integral value is:", `<strong id="result">4.0000</strong>`, `/chart.png?`},
		},
		{
			name:     "invalid number",
			x:        "0, one",
			y:        "0, 2",
			contains: []string{"Enter valid numbers for x and y"},
		},
		{
			name:     "length mismatch",
			x:        "0, 1, 2",
			y:        "0, 2",
			contains: []string{"The x and y lists must have the same length."},
		},
		{
			name:     "non-finite estimate",
			x:        "-1.7e308, 1.7e308",
			y:        "1e10, 1e10",
			contains: []string{`class="error"`, "The estimate is not a finite number."},
			excludes: []string{"The integral value is:", "/chart."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.PostForm(ts.URL+"/", url.Values{"x": {tt.x}, "y": {tt.y}})
			if err != nil {
				t.Fatalf("POST /: %v", err)
			}
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			for _, want := range tt.contains {
				if !strings.Contains(string(body), want) {
					t.Errorf("page does not contain %q", want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(string(body), unwanted) {
					t.Errorf("page contains %q", unwanted)
				}
			}
		})
	}
}

func TestChart(t *testing.T) {
	_, ts := newTestServer(t)

	q := url.Values{"x": {workedX}, "y": {workedY}}.Encode()

	resp, err := http.Get(ts.URL + "/chart.png?" + q)
	if err != nil {
		t.Fatalf("GET chart: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if resp.Header.Get("Content-Type") != "image/png" {
		t.Errorf("Content-Type = %v", resp.Header.Get("Content-Type"))
	}
	if !bytes.HasPrefix(body, []byte("\x89PNG")) {
		t.Error("body is not a PNG")
	}

	resp, err = http.Get(ts.URL + "/chart.svg?" + q)
	if err != nil {
		t.Fatalf("GET chart: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.Header.Get("Content-Type") != "image/svg+xml" || !strings.Contains(string(body), "<svg") {
		t.Errorf("unexpected svg response: %s", resp.Header.Get("Content-Type"))
	}
}

func TestChart_BadInput(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/chart.png?x=1,2&y=1")
	if err != nil {
		t.Fatalf("GET chart: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/chart.png?x=1,1&y=1,2")
	if err != nil {
		t.Fatalf("GET chart: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d", resp.StatusCode)
	}

	postJSON(t, ts.URL+"/api/compute", `{"x":[0,1],"y":[1,1]}`)
	postJSON(t, ts.URL+"/api/compute", `{"x":[0,1,2],"y":[1,1]}`)

	resp, err = http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	text := string(body)
	for _, want := range []string{
		`midpoint_computations_total{outcome="ok",source="api"} 1`,
		`midpoint_computations_total{outcome="length_mismatch",source="api"} 1`,
		`midpoint_series_points_count 1`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestServe_Shutdown(t *testing.T) {
	srv, err := New(Config{ShutdownTimeout: time.Second}, nil, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	addr := "http://" + ln.Addr().String()
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get(addr + "/healthz")
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not come up: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
