package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/terraincognita07/paycharts/internal/charts"
	"github.com/terraincognita07/paycharts/internal/models"
)

const (
	defaultPageID   = "default"
	pageIDHeader    = "X-Page-ID"
	hxTriggerHeader = "HX-Trigger"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	if isHTMX(c) {
		return c.Status(status).SendString(fmt.Sprintf("<div class=\"status-error\">%s</div>", template.HTMLEscapeString(message)))
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func acceptsJSON(c *fiber.Ctx) bool {
	return strings.Contains(strings.ToLower(c.Get("Accept")), "application/json")
}

func isHTMX(c *fiber.Ctx) bool {
	return strings.EqualFold(c.Get("HX-Request"), "true")
}

func parseKindParam(c *fiber.Ctx) (models.ChartKind, error) {
	return models.ParseChartKind(c.Params("kind"))
}

// parseChartOptions decodes an optional JSON body. An empty body means every
// option takes its default, including the sample dataset.
func parseChartOptions(c *fiber.Ctx) (models.ChartOptions, error) {
	options := models.ChartOptions{}
	if len(strings.TrimSpace(string(c.Body()))) == 0 {
		return options, nil
	}
	if err := json.Unmarshal(c.Body(), &options); err != nil {
		return models.ChartOptions{}, fmt.Errorf("invalid chart options: %w", err)
	}
	return options, nil
}

func parsePositiveQuery(c *fiber.Ctx, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return value, nil
}

func parsePageQuery(c *fiber.Ctx) (int, error) {
	raw := strings.TrimSpace(c.Query("page"))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid page %q", raw)
	}
	return value, nil
}

// requestPageID names the host page a request belongs to. The value outlives
// the request as a scroll lock key, so it is copied off fasthttp's buffers.
func requestPageID(c *fiber.Ctx) string {
	if pageID := strings.TrimSpace(c.Query("page_id")); pageID != "" {
		return utils.CopyString(pageID)
	}
	if pageID := strings.TrimSpace(c.Get(pageIDHeader)); pageID != "" {
		return utils.CopyString(pageID)
	}
	return defaultPageID
}

func sendHTML(c *fiber.Ctx, status int, markup string) error {
	c.Type("html", "utf-8")
	return c.Status(status).SendString(markup)
}

func sendChart(c *fiber.Ctx, status int, node *charts.Node) error {
	if acceptsJSON(c) {
		return c.Status(status).JSON(node)
	}
	markup, err := charts.HTMLString(node)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to render chart")
	}
	return sendHTML(c, status, markup)
}

func chartErrorStatus(err error) int {
	switch {
	case errors.Is(err, charts.ErrUnknownChartKind):
		return fiber.StatusNotFound
	case errors.Is(err, charts.ErrUnmounted):
		return fiber.StatusGone
	default:
		return fiber.StatusInternalServerError
	}
}
