package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/iett/pkg/dataaggregator"
	"github.com/travigo/iett/pkg/iett"
	"github.com/travigo/iett/pkg/util"
)

type iettHandler struct {
	client     *iett.Client
	aggregator *dataaggregator.Aggregator
}

func IETTRouter(router fiber.Router, client *iett.Client, aggregator *dataaggregator.Aggregator) {
	h := &iettHandler{
		client:     client,
		aggregator: aggregator,
	}

	router.Get("/hatlar", h.listHatlar)
	router.Get("/hat/:hatKodu", h.getRouteDetail)
	router.Get("/hat/:hatKodu/gtfs-rt", h.getVehiclePositionsFeed)

	router.Get("/durak", h.getDurak)
	router.Get("/garajlar", h.listGarajlar)
	router.Get("/durak-detay", h.getDurakDetay)

	router.Get("/sefer-saatleri", h.getSeferSaatleri)
	router.Get("/duyurular", h.listDuyurular)
	router.Get("/konum", h.getKonum)
}

// requiredLineCode reads and normalises a line code query parameter.
// It writes the 400 response itself when the parameter is missing.
func requiredLineCode(c *fiber.Ctx, name string) (string, bool) {
	hatKodu := util.NormaliseLineCode(c.Query(name))
	if hatKodu == "" {
		c.SendStatus(fiber.StatusBadRequest)
		c.JSON(fiber.Map{
			"error": name + " parameter is required",
		})
		return "", false
	}

	return hatKodu, true
}

func upstreamFailure(c *fiber.Ctx, err error, operation string) error {
	log.Error().Err(err).Str("operation", operation).Str("path", c.Path()).Msg("İETT request failed")

	c.SendStatus(fiber.StatusInternalServerError)
	return c.JSON(fiber.Map{
		"error": "Could not retrieve data from İETT",
	})
}
