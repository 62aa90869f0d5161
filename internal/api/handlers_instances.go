package api

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/paycharts/internal/charts"
	"github.com/terraincognita07/paycharts/internal/security"
)

var now = time.Now

func (handler *Handler) MountInstance(c *fiber.Ctx) error {
	if !handler.limiter.allow(requestLimiterKey(c, "mount"), now(), mountLimit, limitWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many chart instances")
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

	id, err := security.NewInstanceID()
	if err != nil {
		log.Printf("generate instance id failed: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to mount chart")
	}

	pageID := requestPageID(c)
	lock, detach := handler.pages.Attach(pageID)
	instance, err := handler.renderer.Mount(charts.InstanceConfig{
		ID:         id,
		Kind:       kind,
		Options:    options,
		Width:      width,
		Page:       page,
		PageID:     pageID,
		ScrollLock: lock,
		OnUnmount:  detach,
		Actions: charts.HTMXActions{
			InstancePath: "/api/instances/" + id,
			TargetID:     charts.InstanceDOMID(id),
		},
	})
	if err != nil {
		detach()
		return apiError(c, chartErrorStatus(err), "failed to mount chart")
	}
	handler.instances.add(instance)

	c.Set(fiber.HeaderLocation, "/api/instances/"+id)
	return handler.respondInstance(c, fiber.StatusCreated, instance)
}

func (handler *Handler) GetInstance(c *fiber.Ctx) error {
	instance, ok := handler.lookupInstance(c)
	if !ok {
		return apiError(c, fiber.StatusNotFound, "chart instance not found")
	}
	return handler.respondInstance(c, fiber.StatusOK, instance)
}

func (handler *Handler) UnmountInstance(c *fiber.Ctx) error {
	instance, ok := handler.lookupInstance(c)
	if !ok || !handler.instances.remove(instance.ID()) {
		return apiError(c, fiber.StatusNotFound, "chart instance not found")
	}
	handler.setScrollLockTrigger(c, instance.PageID())
	return c.SendStatus(fiber.StatusNoContent)
}

// ResizeInstance feeds the debounced viewport; the new width applies once the
// resize burst settles, so the response only acknowledges it.
func (handler *Handler) ResizeInstance(c *fiber.Ctx) error {
	instance, ok := handler.lookupInstance(c)
	if !ok {
		return apiError(c, fiber.StatusNotFound, "chart instance not found")
	}
	width, err := parsePositiveQuery(c, "width", 0)
	if err != nil || width == 0 {
		return apiError(c, fiber.StatusBadRequest, "width is required")
	}
	instance.ObserveResize(width)
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"accepted": true, "width": width})
}

func (handler *Handler) NextPage(c *fiber.Ctx) error {
	return handler.applyInstanceAction(c, func(instance *charts.Instance) {
		instance.NextPage()
	})
}

func (handler *Handler) PreviousPage(c *fiber.Ctx) error {
	return handler.applyInstanceAction(c, func(instance *charts.Instance) {
		instance.PreviousPage()
	})
}

func (handler *Handler) OpenNotes(c *fiber.Ctx) error {
	return handler.applyInstanceAction(c, func(instance *charts.Instance) {
		instance.OpenNotes()
	})
}

func (handler *Handler) CloseNotes(c *fiber.Ctx) error {
	return handler.applyInstanceAction(c, func(instance *charts.Instance) {
		instance.CloseNotes()
	})
}

func (handler *Handler) InstanceKeydown(c *fiber.Ctx) error {
	key := c.Query("key")
	return handler.applyInstanceAction(c, func(instance *charts.Instance) {
		instance.HandleKey(key)
	})
}

func (handler *Handler) InstanceClick(c *fiber.Ctx) error {
	target := c.Query("target")
	return handler.applyInstanceAction(c, func(instance *charts.Instance) {
		instance.HandleClick(target)
	})
}

func (handler *Handler) PageScrollLock(c *fiber.Ctx) error {
	return c.JSON(handler.scrollLockState(c.Params("page")))
}

func (handler *Handler) scrollLockState(pageID string) scrollLockResponse {
	response := scrollLockResponse{Page: pageID}
	if lock, ok := handler.pages.Lookup(pageID); ok {
		response.Locked = lock.Locked()
		response.Holders = lock.Holders()
	}
	return response
}

// setScrollLockTrigger reports the page's scroll lock as an htmx event, so the
// chart root can suspend or restore body scrolling after the swap.
func (handler *Handler) setScrollLockTrigger(c *fiber.Ctx, pageID string) {
	payload, err := json.Marshal(map[string]scrollLockResponse{
		charts.ScrollLockEvent: handler.scrollLockState(pageID),
	})
	if err != nil {
		log.Printf("encode scroll lock trigger failed: %v", err)
		return
	}
	c.Set(hxTriggerHeader, string(payload))
}

func (handler *Handler) lookupInstance(c *fiber.Ctx) (*charts.Instance, bool) {
	return handler.instances.get(c.Params("id"))
}

// applyInstanceAction runs one control action and answers with the re-rendered
// chart, so an HTMX swap of the chart root shows the new state.
func (handler *Handler) applyInstanceAction(c *fiber.Ctx, action func(*charts.Instance)) error {
	instance, ok := handler.lookupInstance(c)
	if !ok {
		return apiError(c, fiber.StatusNotFound, "chart instance not found")
	}
	action(instance)
	handler.setScrollLockTrigger(c, instance.PageID())
	return handler.respondInstance(c, fiber.StatusOK, instance)
}

func (handler *Handler) respondInstance(c *fiber.Ctx, status int, instance *charts.Instance) error {
	node, err := instance.Render()
	if err != nil {
		return apiError(c, chartErrorStatus(err), "failed to render chart")
	}
	if acceptsJSON(c) {
		return c.Status(status).JSON(instanceResponse{State: instance.State(), Chart: node})
	}
	return sendChart(c, status, node)
}
