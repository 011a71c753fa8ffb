package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/iett/pkg/gtfsrt"
	"github.com/travigo/iett/pkg/iett"
	"github.com/travigo/iett/pkg/util"
)

func (h *iettHandler) listHatlar(c *fiber.Ctx) error {
	if kod := util.NormaliseLineCode(c.Query("kod")); kod != "" {
		hatlar, err := h.client.GetHat(c.UserContext(), kod)
		if err != nil {
			return upstreamFailure(c, err, "GetHat")
		}

		return c.JSON(hatlar)
	}

	var hatlar []iett.Hat
	var err error
	if query := c.Query("q"); query != "" {
		hatlar, err = h.client.SearchHatlar(c.UserContext(), query)
	} else {
		hatlar, err = h.client.GetHat(c.UserContext(), "")
	}
	if err != nil {
		return upstreamFailure(c, err, "GetHat")
	}

	iett.SortHatlar(hatlar)

	hatlarReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, hatlar)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Hatlar",
		})
	}

	return c.JSON(hatlarReduced)
}

func (h *iettHandler) getRouteDetail(c *fiber.Ctx) error {
	hatKodu := util.NormaliseLineCode(c.Params("hatKodu"))

	return c.JSON(h.aggregator.RouteDetail(c.UserContext(), hatKodu))
}

func (h *iettHandler) getVehiclePositionsFeed(c *fiber.Ctx) error {
	hatKodu := util.NormaliseLineCode(c.Params("hatKodu"))

	konumlar, err := h.client.GetHatOtoKonum(c.UserContext(), hatKodu)
	if err != nil {
		return upstreamFailure(c, err, "GetHatOtoKonum")
	}

	feed, err := gtfsrt.Marshal(gtfsrt.VehiclePositions(konumlar, time.Now()))
	if err != nil {
		return upstreamFailure(c, err, "gtfs-rt marshal")
	}

	c.Set(fiber.HeaderContentType, "application/x-protobuf")
	return c.Send(feed)
}
