package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/paycharts/internal/charts"
	"github.com/terraincognita07/paycharts/internal/models"
)

func decodeInstance(t *testing.T, body string) instanceResponse {
	t.Helper()

	var payload instanceResponse
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("decode instance response: %v", err)
	}
	return payload
}

func scrollLockState(t *testing.T, app *fiber.App, pageID string) scrollLockResponse {
	t.Helper()

	response, body := doRequest(t, app, testRequest{method: http.MethodGet, path: "/api/pages/" + pageID + "/scroll-lock"})
	expectStatus(t, response, body, http.StatusOK)
	var payload scrollLockResponse
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("decode scroll lock: %v", err)
	}
	return payload
}

func TestInstanceLifecycle(t *testing.T) {
	t.Parallel()

	app, handler := newTestApp(t)
	response, body := doRequest(t, app, testRequest{
		method:  http.MethodPost,
		path:    "/api/instances/bar?width=375&page_id=report",
		body:    `{"notesDescription": "Figures exclude refunds."}`,
		headers: jsonHeaders,
	})
	expectStatus(t, response, body, http.StatusCreated)

	created := decodeInstance(t, body)
	id := created.State.ID
	if id == "" || response.Header.Get("Location") != "/api/instances/"+id {
		t.Fatalf("expected location for instance %q, got %q", id, response.Header.Get("Location"))
	}
	if created.State.Device != models.DeviceMobile || created.State.Page != 0 || created.State.TotalPages != 2 {
		t.Fatalf("unexpected initial state %#v", created.State)
	}
	if got, _ := created.Chart.Attr("id"); got != charts.InstanceDOMID(id) {
		t.Fatalf("expected chart root id %q, got %q", charts.InstanceDOMID(id), got)
	}
	if handler.instances.count() != 1 {
		t.Fatalf("expected one stored instance, got %d", handler.instances.count())
	}

	base := "/api/instances/" + id
	steps := []struct {
		path      string
		wantPage  int
		wantNotes bool
		wantLock  int
	}{
		{path: base + "/pages/next", wantPage: 1},
		{path: base + "/pages/next", wantPage: 1},
		{path: base + "/notes/open", wantPage: 1, wantNotes: true, wantLock: 1},
		{path: base + "/click?target=dialog", wantPage: 1, wantNotes: true, wantLock: 1},
		{path: base + "/keydown?key=Enter", wantPage: 1, wantNotes: true, wantLock: 1},
		{path: base + "/keydown?key=Escape", wantPage: 1},
		{path: base + "/notes/open", wantPage: 1, wantNotes: true, wantLock: 1},
		{path: base + "/click?target=backdrop", wantPage: 1},
		{path: base + "/pages/previous", wantPage: 0},
		{path: base + "/notes/open", wantNotes: true, wantLock: 1},
		{path: base + "/notes/close"},
	}
	for _, step := range steps {
		response, body := doRequest(t, app, testRequest{method: http.MethodPost, path: step.path, headers: jsonHeaders})
		expectStatus(t, response, body, http.StatusOK)
		state := decodeInstance(t, body).State
		if state.Page != step.wantPage || state.NotesOpen != step.wantNotes {
			t.Fatalf("%s: expected page %d notes %v, got %#v", step.path, step.wantPage, step.wantNotes, state)
		}
		if lock := scrollLockState(t, app, "report"); lock.Holders != step.wantLock || lock.Locked != (step.wantLock > 0) {
			t.Fatalf("%s: expected %d scroll lock holders, got %#v", step.path, step.wantLock, lock)
		}
	}

	response, body = doRequest(t, app, testRequest{method: http.MethodPost, path: base + "/notes/open", headers: jsonHeaders})
	expectStatus(t, response, body, http.StatusOK)
	response, body = doRequest(t, app, testRequest{method: http.MethodDelete, path: base})
	expectStatus(t, response, body, http.StatusNoContent)
	if lock := scrollLockState(t, app, "report"); lock.Locked || lock.Holders != 0 {
		t.Fatalf("expected unmount to release the page scroll lock, got %#v", lock)
	}

	response, body = doRequest(t, app, testRequest{method: http.MethodGet, path: base})
	expectStatus(t, response, body, http.StatusNotFound)
	response, body = doRequest(t, app, testRequest{method: http.MethodDelete, path: base})
	expectStatus(t, response, body, http.StatusNotFound)
}

func mountOnPage(t *testing.T, app *fiber.App, pageID string, viaHeader bool) string {
	t.Helper()

	request := testRequest{
		method:  http.MethodPost,
		path:    "/api/instances/bar?width=1280",
		body:    `{"notesDescription": "Provisional figures."}`,
		headers: map[string]string{"Accept": "application/json"},
	}
	if viaHeader {
		request.headers[pageIDHeader] = pageID
	} else {
		request.path += "&page_id=" + pageID
	}
	response, body := doRequest(t, app, request)
	expectStatus(t, response, body, http.StatusCreated)
	return decodeInstance(t, body).State.ID
}

func TestInstanceScrollLocksKeepTheirPageIDs(t *testing.T) {
	t.Parallel()

	app, handler := newTestApp(t)
	pageIDs := make([]string, 24)
	ids := make([]string, len(pageIDs))
	for index := range pageIDs {
		pageIDs[index] = fmt.Sprintf("page-%02d", index)
		ids[index] = mountOnPage(t, app, pageIDs[index], index%2 == 1)
		response, body := doRequest(t, app, testRequest{method: http.MethodPost, path: "/api/instances/" + ids[index] + "/notes/open", headers: jsonHeaders})
		expectStatus(t, response, body, http.StatusOK)
	}

	if handler.pages.Len() != len(pageIDs) {
		t.Fatalf("expected %d tracked pages, got %d", len(pageIDs), handler.pages.Len())
	}
	for index, pageID := range pageIDs {
		lock := scrollLockState(t, app, pageID)
		if lock.Page != pageID || lock.Holders != 1 || !lock.Locked {
			t.Fatalf("expected one holder on %s, got %#v", pageID, lock)
		}
		response, body := doRequest(t, app, testRequest{method: http.MethodGet, path: "/api/instances/" + ids[index], headers: jsonHeaders})
		expectStatus(t, response, body, http.StatusOK)
		if state := decodeInstance(t, body).State; state.PageID != pageID {
			t.Fatalf("expected instance on %s, got %q", pageID, state.PageID)
		}
	}

	for _, id := range ids {
		response, body := doRequest(t, app, testRequest{method: http.MethodDelete, path: "/api/instances/" + id})
		expectStatus(t, response, body, http.StatusNoContent)
	}
	if handler.pages.Len() != 0 {
		t.Fatalf("expected unmounted pages to be evicted, got %d", handler.pages.Len())
	}
}

func TestInstanceActionsTriggerScrollLockEvent(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	id := mountOnPage(t, app, "report", false)
	base := "/api/instances/" + id

	readTrigger := func(response *http.Response) scrollLockResponse {
		t.Helper()
		payload := map[string]scrollLockResponse{}
		if err := json.Unmarshal([]byte(response.Header.Get(hxTriggerHeader)), &payload); err != nil {
			t.Fatalf("decode %s header %q: %v", hxTriggerHeader, response.Header.Get(hxTriggerHeader), err)
		}
		lock, ok := payload[charts.ScrollLockEvent]
		if !ok {
			t.Fatalf("expected %s event, got %v", charts.ScrollLockEvent, payload)
		}
		return lock
	}

	steps := []struct {
		method string
		path   string
		status int
		want   scrollLockResponse
	}{
		{method: http.MethodPost, path: base + "/notes/open", status: http.StatusOK, want: scrollLockResponse{Page: "report", Locked: true, Holders: 1}},
		{method: http.MethodPost, path: base + "/keydown?key=Enter", status: http.StatusOK, want: scrollLockResponse{Page: "report", Locked: true, Holders: 1}},
		{method: http.MethodPost, path: base + "/click?target=backdrop", status: http.StatusOK, want: scrollLockResponse{Page: "report"}},
		{method: http.MethodPost, path: base + "/notes/open", status: http.StatusOK, want: scrollLockResponse{Page: "report", Locked: true, Holders: 1}},
		{method: http.MethodPost, path: base + "/notes/close", status: http.StatusOK, want: scrollLockResponse{Page: "report"}},
		{method: http.MethodPost, path: base + "/notes/open", status: http.StatusOK, want: scrollLockResponse{Page: "report", Locked: true, Holders: 1}},
		{method: http.MethodDelete, path: base, status: http.StatusNoContent, want: scrollLockResponse{Page: "report"}},
	}
	for _, step := range steps {
		response, body := doRequest(t, app, testRequest{method: step.method, path: step.path, headers: map[string]string{"HX-Request": "true"}})
		expectStatus(t, response, body, step.status)
		if got := readTrigger(response); got != step.want {
			t.Fatalf("%s %s: expected scroll lock event %#v, got %#v", step.method, step.path, step.want, got)
		}
	}
}

func TestInstanceRendersHTMXControls(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	response, body := doRequest(t, app, testRequest{
		method:  http.MethodPost,
		path:    "/api/instances/line?width=375",
		body:    `{"notesDescription": "Quarterly."}`,
		headers: map[string]string{"HX-Request": "true"},
	})
	expectStatus(t, response, body, http.StatusCreated)

	location := response.Header.Get("Location")
	id := strings.TrimPrefix(location, "/api/instances/")
	for _, want := range []string{
		`id="` + charts.InstanceDOMID(id) + `"`,
		`hx-post="` + location + `/pages/next"`,
		`hx-post="` + location + `/notes/open"`,
		`hx-target="#` + charts.InstanceDOMID(id) + `"`,
		`hx-on:` + charts.ScrollLockEvent + `=`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in htmx chart, got %s", want, body)
		}
	}
}

func TestInstanceResizeIsAccepted(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	response, body := doRequest(t, app, testRequest{method: http.MethodPost, path: "/api/instances/bar?width=1280", headers: jsonHeaders})
	expectStatus(t, response, body, http.StatusCreated)
	base := "/api/instances/" + decodeInstance(t, body).State.ID

	response, body = doRequest(t, app, testRequest{method: http.MethodPost, path: base + "/resize?width=375"})
	expectStatus(t, response, body, http.StatusAccepted)

	deadline := time.Now().Add(2 * time.Second)
	for {
		response, body = doRequest(t, app, testRequest{method: http.MethodGet, path: base, headers: jsonHeaders})
		expectStatus(t, response, body, http.StatusOK)
		if decodeInstance(t, body).State.Device == models.DeviceMobile {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected debounced resize to settle on mobile, last state %s", body)
		}
		time.Sleep(25 * time.Millisecond)
	}

	response, body = doRequest(t, app, testRequest{method: http.MethodPost, path: base + "/resize"})
	expectStatus(t, response, body, http.StatusBadRequest)
}

func TestMountInstanceRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	app, handler := newTestApp(t)
	response, body := doRequest(t, app, testRequest{method: http.MethodPost, path: "/api/instances/radar"})
	expectStatus(t, response, body, http.StatusNotFound)
	if handler.instances.count() != 0 {
		t.Fatalf("expected no stored instances, got %d", handler.instances.count())
	}
}
