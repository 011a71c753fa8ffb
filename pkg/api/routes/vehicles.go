package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/iett/pkg/util"
)

func (h *iettHandler) getKonum(c *fiber.Ctx) error {
	hatKodu, ok := requiredLineCode(c, "hatKodu")
	if !ok {
		return nil
	}

	konumlar, err := h.client.GetHatOtoKonum(c.UserContext(), hatKodu)
	if err != nil {
		return upstreamFailure(c, err, "GetHatOtoKonum")
	}

	if util.ParseBool(c.Query("duraklar")) {
		konumlar = h.client.ResolveStopNames(c.UserContext(), konumlar)
	}

	return c.JSON(konumlar)
}
