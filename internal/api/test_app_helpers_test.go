package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/paycharts/internal/charts"
	"github.com/terraincognita07/paycharts/internal/config"
	"github.com/terraincognita07/paycharts/internal/models"
)

func testSettings() *config.Settings {
	return &config.Settings{
		Port:          "0",
		DefaultKind:   models.ChartBar,
		InstanceTTL:   time.Minute,
		ViewportWidth: 1200,
		SourceText:    models.DefaultSourceText,
		LogoURL:       charts.DefaultLogoURL,
		LogoAlt:       charts.DefaultLogoAlt,
	}
}

func newTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()

	handler := NewHandler(testSettings())
	t.Cleanup(handler.Close)

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, handler
}

type testRequest struct {
	method  string
	path    string
	body    string
	headers map[string]string
}

func doRequest(t *testing.T, app *fiber.App, request testRequest) (*http.Response, string) {
	t.Helper()

	var body io.Reader
	if request.body != "" {
		body = strings.NewReader(request.body)
	}
	httpRequest := httptest.NewRequest(request.method, request.path, body)
	for name, value := range request.headers {
		httpRequest.Header.Set(name, value)
	}

	response, err := app.Test(httpRequest, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.method, request.path, err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", request.method, request.path, err)
	}
	return response, string(payload)
}

func expectStatus(t *testing.T, response *http.Response, body string, want int) {
	t.Helper()
	if response.StatusCode != want {
		t.Fatalf("expected status %d, got %d: %s", want, response.StatusCode, body)
	}
}

func readAPIError(t *testing.T, body string) string {
	t.Helper()

	payload := map[string]string{}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("decode api error %q: %v", body, err)
	}
	return payload["error"]
}

var jsonHeaders = map[string]string{"Accept": "application/json"}
