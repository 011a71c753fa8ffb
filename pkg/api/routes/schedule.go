package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/iett/pkg/iett"
	"github.com/travigo/iett/pkg/util"
)

func (h *iettHandler) getSeferSaatleri(c *fiber.Ctx) error {
	hatKodu, ok := requiredLineCode(c, "hatKodu")
	if !ok {
		return nil
	}

	seferler, err := h.client.GetPlanlananSeferSaati(c.UserContext(), hatKodu)
	if err != nil {
		return upstreamFailure(c, err, "GetPlanlananSeferSaati")
	}

	if util.ParseBool(c.Query("grouped")) {
		return c.JSON(iett.GroupSchedule(seferler))
	}

	return c.JSON(seferler)
}

func (h *iettHandler) listDuyurular(c *fiber.Ctx) error {
	duyurular, err := h.client.GetDuyurular(c.UserContext(), util.NormaliseLineCode(c.Query("hatKodu")))
	if err != nil {
		return upstreamFailure(c, err, "GetDuyurular")
	}

	return c.JSON(duyurular)
}
