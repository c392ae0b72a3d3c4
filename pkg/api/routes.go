package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/transitpanel/transitpanel/pkg/transit"
)

const apiVersion = "1.0.0"

func getVersion(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"version": apiVersion})
}

func (s Server) listStops(c *fiber.Ctx) error {
	stops := []fiber.Map{}

	for _, stop := range s.Renderer.Stops {
		adapter := s.Renderer.Registry.For(stop.Type)
		if adapter == nil {
			continue
		}

		stops = append(stops, fiber.Map{
			"type":  stop.Type,
			"label": stop.DisplayLabel(),
			"index": adapter.Index(stop),
			"order": stop.Order,
		})
	}

	return c.JSON(stops)
}

func (s Server) getSchedules(c *fiber.Ctx) error {
	index := c.Params("+")

	set, lastUpdate, found := s.Store.Schedules(index)
	if !found {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "No schedules stored for this stop-index",
		})
	}

	marshalled, err := marshalGroups(set)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"lastUpdate": lastUpdate,
		"schedules":  marshalled,
	})
}

func (s Server) getTraffic(c *fiber.Ctx) error {
	index := "traffic/" + c.Params("+")

	info, found := s.Store.Traffic(index)
	if !found {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "No traffic stored for this stop-index",
		})
	}

	marshalled, err := marshalGroups(info)
	if err != nil {
		return err
	}

	return c.JSON(marshalled)
}

func (s Server) getBikeHistory(c *fiber.Ctx) error {
	index := "velib/" + c.Params("+")

	var history []transit.BikeStationSnapshot
	if s.Store.History() != nil {
		history = s.Store.History().Entries(index)
	}
	if len(history) == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "No snapshots stored for this station",
		})
	}

	marshalled, err := marshalGroups(history)
	if err != nil {
		return err
	}

	return c.JSON(marshalled)
}

func marshalGroups(data interface{}) (interface{}, error) {
	return sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, data)
}
