package api

import (
	"bytes"
	"encoding/json"
	"image"
	_ "image/png"
	"net/http"
	"strings"
	"testing"

	"github.com/terraincognita07/paycharts/internal/charts"
)

func TestHealthAndChartKinds(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	response, body := doRequest(t, app, testRequest{method: http.MethodGet, path: "/healthz"})
	expectStatus(t, response, body, http.StatusOK)
	if !strings.Contains(body, `"status":"ok"`) {
		t.Fatalf("unexpected health body %s", body)
	}

	response, body = doRequest(t, app, testRequest{method: http.MethodGet, path: "/api/charts"})
	expectStatus(t, response, body, http.StatusOK)
	var payload chartKindsResponse
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("decode chart kinds: %v", err)
	}
	if len(payload.Kinds) != 3 || payload.Kinds[0] != "bar" || payload.Default != "bar" {
		t.Fatalf("unexpected chart kinds %#v", payload)
	}
}

func TestRenderChartReturnsHTMLFragment(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	response, body := doRequest(t, app, testRequest{
		method: http.MethodPost,
		path:   "/api/charts/bar/render?width=1280",
		body:   `{"title": "Quarterly payments", "notesDescription": "Seasonally adjusted."}`,
	})
	expectStatus(t, response, body, http.StatusOK)

	if contentType := response.Header.Get("Content-Type"); !strings.HasPrefix(contentType, "text/html") {
		t.Fatalf("expected html content type, got %q", contentType)
	}
	for _, want := range []string{
		`class="payments-chart payments-chart--bar payments-chart--desktop"`,
		"Quarterly payments",
		"Chart: Payments Intelligence",
		"View chart notes",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected rendered chart to contain %q, got %s", want, body)
		}
	}
}

func TestRenderChartReturnsNodeTreeForJSONClients(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	response, body := doRequest(t, app, testRequest{
		method:  http.MethodPost,
		path:    "/api/charts/pie/render?width=375",
		headers: jsonHeaders,
	})
	expectStatus(t, response, body, http.StatusOK)

	var root charts.Node
	if err := json.Unmarshal([]byte(body), &root); err != nil {
		t.Fatalf("decode chart node: %v", err)
	}
	if root.Tag != "div" || !root.HasClass("payments-chart--mobile") {
		t.Fatalf("unexpected root node %#v", root.Attrs)
	}
	if got := len(root.FindByClass("pie-slice")); got != 5 {
		t.Fatalf("expected 5 aggregated pie slices on mobile, got %d", got)
	}
	if source := root.First("chart-source-text"); source == nil || source.TextContent() != "Source: The payments association industry research" {
		t.Fatalf("expected configured default source text in footer")
	}
}

func TestRenderChartValidatesRequest(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	cases := []struct {
		name    string
		path    string
		body    string
		headers map[string]string
		status  int
		message string
	}{
		{name: "unknown kind", path: "/api/charts/radar/render", status: http.StatusNotFound, message: "unknown chart kind"},
		{name: "malformed options", path: "/api/charts/bar/render", body: `{"data": "nope"`, status: http.StatusBadRequest, message: "invalid chart options"},
		{name: "bad width", path: "/api/charts/bar/render?width=wide", status: http.StatusBadRequest, message: `invalid width "wide"`},
		{name: "negative page", path: "/api/charts/bar/render?page=-1", status: http.StatusBadRequest, message: `invalid page "-1"`},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			response, body := doRequest(t, app, testRequest{method: http.MethodPost, path: testCase.path, body: testCase.body})
			expectStatus(t, response, body, testCase.status)
			if got := readAPIError(t, body); got != testCase.message {
				t.Fatalf("expected error %q, got %q", testCase.message, got)
			}
		})
	}
}

func TestRenderChartErrorForHTMXRequests(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	response, body := doRequest(t, app, testRequest{
		method:  http.MethodPost,
		path:    "/api/charts/radar/render",
		headers: map[string]string{"HX-Request": "true"},
	})
	expectStatus(t, response, body, http.StatusNotFound)
	if body != `<div class="status-error">unknown chart kind</div>` {
		t.Fatalf("unexpected htmx error body %q", body)
	}
}

func TestExportChartPNG(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	response, body := doRequest(t, app, testRequest{
		method: http.MethodPost,
		path:   "/api/charts/line/export.png?width=800",
		body:   `{"title": "Trend"}`,
	})
	expectStatus(t, response, body, http.StatusOK)
	if contentType := response.Header.Get("Content-Type"); contentType != "image/png" {
		t.Fatalf("expected image/png, got %q", contentType)
	}
	config, _, err := image.DecodeConfig(bytes.NewReader([]byte(body)))
	if err != nil {
		t.Fatalf("decode exported png: %v", err)
	}
	if config.Width != 800 {
		t.Fatalf("expected exported width 800, got %d", config.Width)
	}

	response, body = doRequest(t, app, testRequest{
		method: http.MethodPost,
		path:   "/api/charts/bar/export.png",
		body:   `{"data": []}`,
	})
	expectStatus(t, response, body, http.StatusUnprocessableEntity)
}

func TestExportChartPNGIsRateLimited(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	request := testRequest{method: http.MethodPost, path: "/api/charts/bar/export.png", body: `{"data": []}`}
	for attempt := 0; attempt < exportLimit; attempt++ {
		response, body := doRequest(t, app, request)
		expectStatus(t, response, body, http.StatusUnprocessableEntity)
	}

	response, body := doRequest(t, app, request)
	expectStatus(t, response, body, http.StatusTooManyRequests)
}

func TestAutoRenderDocument(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	document := `<!DOCTYPE html><html><head></head><body>
<div id="volumes" data-payments-bar-chart data-chart-title="Volumes"></div>
<div id="broken" data-payments-pie-chart data-chart-data="{not json"><p>placeholder</p></div>
</body></html>`

	response, body := doRequest(t, app, testRequest{method: http.MethodPost, path: "/api/autorender?width=1280", body: document})
	expectStatus(t, response, body, http.StatusOK)

	if rendered := response.Header.Get("X-Charts-Rendered"); rendered != "1" {
		t.Fatalf("expected one rendered chart, got %q", rendered)
	}
	if failed := response.Header.Get("X-Charts-Failed"); failed != "1" {
		t.Fatalf("expected one failed container, got %q", failed)
	}
	if !strings.Contains(body, "payments-chart--bar") || !strings.Contains(body, "Volumes") {
		t.Fatalf("expected bar chart mounted into document, got %s", body)
	}
	if !strings.Contains(body, "<p>placeholder</p>") {
		t.Fatalf("expected malformed container to keep its placeholder, got %s", body)
	}
}

func TestAutoRenderAppliesPageScrollLock(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	id := mountOnPage(t, app, "report", false)
	response, body := doRequest(t, app, testRequest{method: http.MethodPost, path: "/api/instances/" + id + "/notes/open", headers: jsonHeaders})
	expectStatus(t, response, body, http.StatusOK)

	document := `<!DOCTYPE html><html><head></head><body style="margin: 0"><div data-payments-line-chart></div></body></html>`
	response, body = doRequest(t, app, testRequest{method: http.MethodPost, path: "/api/autorender?page_id=report", body: document})
	expectStatus(t, response, body, http.StatusOK)
	if !strings.Contains(body, `<body style="margin: 0; overflow: hidden">`) {
		t.Fatalf("expected locked page body, got %s", body)
	}

	response, body = doRequest(t, app, testRequest{method: http.MethodPost, path: "/api/instances/" + id + "/notes/close", headers: jsonHeaders})
	expectStatus(t, response, body, http.StatusOK)
	response, body = doRequest(t, app, testRequest{method: http.MethodPost, path: "/api/autorender?page_id=report", body: `<body style="overflow: hidden"></body>`})
	expectStatus(t, response, body, http.StatusOK)
	if strings.Contains(body, "overflow") {
		t.Fatalf("expected released page to scroll again, got %s", body)
	}

	response, body = doRequest(t, app, testRequest{method: http.MethodPost, path: "/api/autorender?page_id=elsewhere", body: `<body style="overflow: hidden"></body>`})
	expectStatus(t, response, body, http.StatusOK)
	if !strings.Contains(body, "overflow: hidden") {
		t.Fatalf("expected unknown page to keep its own style, got %s", body)
	}
}
