package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	chartRoutes := api.Group("/charts")
	chartRoutes.Get("", handler.ListChartKinds)
	chartRoutes.Post("/:kind/render", handler.RenderChart)
	chartRoutes.Post("/:kind/export.png", handler.ExportChartPNG)

	api.Post("/autorender", handler.AutoRender)

	instances := api.Group("/instances")
	instances.Post("/:kind", handler.MountInstance)
	instances.Get("/:id", handler.GetInstance)
	instances.Delete("/:id", handler.UnmountInstance)
	instances.Post("/:id/resize", handler.ResizeInstance)
	instances.Post("/:id/pages/next", handler.NextPage)
	instances.Post("/:id/pages/previous", handler.PreviousPage)
	instances.Post("/:id/notes/open", handler.OpenNotes)
	instances.Post("/:id/notes/close", handler.CloseNotes)
	instances.Post("/:id/keydown", handler.InstanceKeydown)
	instances.Post("/:id/click", handler.InstanceClick)

	api.Get("/pages/:page/scroll-lock", handler.PageScrollLock)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
