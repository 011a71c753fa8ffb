package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/travigo/iett/pkg/api/routes"
	"github.com/travigo/iett/pkg/dataaggregator"
	"github.com/travigo/iett/pkg/iett"
)

func NewApp(client *iett.Client) *fiber.App {
	webApp := fiber.New(fiber.Config{
		AppName:               "iett",
		DisableStartupMessage: true,
	})
	webApp.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	webApp.Use(NewLogger())
	webApp.Use(recover.New())

	webApp.Get("version", routes.APIVersion)
	webApp.Get("metrics", adaptor.HTTPHandler(promhttp.Handler()))

	routes.IETTRouter(webApp.Group("/iett"), client, dataaggregator.NewAggregator(client))

	return webApp
}

func SetupServer(listen string, client *iett.Client) error {
	return NewApp(client).Listen(listen)
}
