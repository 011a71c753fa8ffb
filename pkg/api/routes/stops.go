package routes

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/iett/pkg/iett"
)

func (h *iettHandler) getDurak(c *fiber.Ctx) error {
	kod := strings.TrimSpace(c.Query("kod"))
	if kod == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "kod parameter is required",
		})
	}

	duraklar, err := h.client.GetDurak(c.UserContext(), kod)
	if err != nil {
		return upstreamFailure(c, err, "GetDurak")
	}

	if len(duraklar) == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Durak matching kod",
		})
	}

	return c.JSON(duraklar[0])
}

func (h *iettHandler) listGarajlar(c *fiber.Ctx) error {
	garajlar, err := h.client.GetGaraj(c.UserContext())
	if err != nil {
		return upstreamFailure(c, err, "GetGaraj")
	}

	return c.JSON(garajlar)
}

func (h *iettHandler) getDurakDetay(c *fiber.Ctx) error {
	hatKodu, ok := requiredLineCode(c, "hatKodu")
	if !ok {
		return nil
	}

	duraklar, err := h.client.GetDurakDetay(c.UserContext(), hatKodu)
	if err != nil {
		return upstreamFailure(c, err, "DurakDetay")
	}

	if yon := strings.ToUpper(strings.TrimSpace(c.Query("yon"))); yon != "" {
		route := iett.RouteStops(duraklar, yon)

		return c.JSON(fiber.Map{
			"yon":       yon,
			"duraklar":  route,
			"uzunlukKm": iett.RouteDistanceKm(route),
			"yonler":    iett.Directions(duraklar),
		})
	}

	return c.JSON(duraklar)
}
