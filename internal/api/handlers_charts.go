package api

import (
	"bytes"
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/paycharts/internal/charts"
	"github.com/terraincognita07/paycharts/internal/export"
	"github.com/terraincognita07/paycharts/internal/host"
)

func (handler *Handler) RenderChart(c *fiber.Ctx) error {
	kind, err := parseKindParam(c)
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "unknown chart kind")
	}
	options, err := parseChartOptions(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid chart options")
	}
	width, err := parsePositiveQuery(c, "width", handler.settings.ViewportWidth)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	page, err := parsePageQuery(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	node, err := handler.renderer.Render(kind, options, charts.View{Width: width, Page: page})
	if err != nil {
		log.Printf("render %s chart failed: %v", kind, err)
		return apiError(c, chartErrorStatus(err), "failed to render chart")
	}
	return sendChart(c, fiber.StatusOK, node)
}

func (handler *Handler) ExportChartPNG(c *fiber.Ctx) error {
	if !handler.limiter.allow(requestLimiterKey(c, "export"), now(), exportLimit, limitWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many export requests")
	}

	kind, err := parseKindParam(c)
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "unknown chart kind")
	}
	options, err := parseChartOptions(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid chart options")
	}
	width, err := parsePositiveQuery(c, "width", handler.settings.ViewportWidth)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	page, err := parsePageQuery(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	var output bytes.Buffer
	err = handler.exporter.WritePNG(&output, export.Request{
		Kind:    kind,
		Options: options,
		Width:   width,
		Page:    page,
	})
	switch {
	case errors.Is(err, export.ErrNothingToPlot):
		return apiError(c, fiber.StatusUnprocessableEntity, "nothing to plot")
	case err != nil:
		log.Printf("export %s chart failed: %v", kind, err)
		return apiError(c, chartErrorStatus(err), "failed to export chart")
	}

	c.Set(fiber.HeaderContentDisposition, "inline; filename=\""+string(kind)+"-chart.png\"")
	c.Type("png")
	return c.Send(output.Bytes())
}

// AutoRender mounts a chart into every flagged container of the posted HTML
// document and returns the document. Per-container failures are reported in
// headers and leave error panels or untouched placeholders in the markup.
func (handler *Handler) AutoRender(c *fiber.Ctx) error {
	width, err := parsePositiveQuery(c, "width", handler.settings.ViewportWidth)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	document, err := host.Parse(bytes.NewReader(c.Body()))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid html document")
	}

	bridge, err := handler.newRegistry(width)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "chart renderers unavailable")
	}
	result := bridge.AutoRender(document)
	if lock, ok := handler.pages.Lookup(requestPageID(c)); ok {
		document.SetScrollLocked(lock.Locked())
	}
	markup, err := document.String()
	if err != nil {
		log.Printf("serialise auto-rendered document failed: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to render document")
	}

	c.Set("X-Charts-Rendered", strconv.Itoa(len(result.Rendered)))
	c.Set("X-Charts-Failed", strconv.Itoa(len(result.Errors)))
	return sendHTML(c, fiber.StatusOK, markup)
}
