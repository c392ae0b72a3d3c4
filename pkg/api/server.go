package api

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/transitpanel/transitpanel/pkg/panel"
	"github.com/transitpanel/transitpanel/pkg/poller"
	"github.com/transitpanel/transitpanel/pkg/store"
)

// Server exposes the rendered panel plus the raw normalised state.
type Server struct {
	Store    *store.Store
	Poller   *poller.Poller
	Renderer panel.Renderer
}

func (s Server) Setup(listen string) error {
	return s.newApp().Listen(listen)
}

func (s Server) newApp() *fiber.App {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	webApp.Get("/panel", s.getPanel)

	group := webApp.Group("/api")
	group.Get("/version", getVersion)
	group.Get("/stops", s.listStops)
	group.Get("/stops/+", s.getSchedules)
	group.Get("/traffic/+", s.getTraffic)
	group.Get("/bike/+", s.getBikeHistory)

	return webApp
}

const panelPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="10">
<title>transitpanel</title>
</head>
<body>%s</body>
</html>`

func (s Server) getPanel(c *fiber.Ctx) error {
	node := s.Renderer.Panel(s.Store, time.Now(), s.Poller.NextPoll())

	c.Type("html", "utf-8")

	return c.SendString(fmt.Sprintf(panelPage, node.HTML()))
}
