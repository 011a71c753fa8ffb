package lookup

import (
	"errors"
	"io"
	"os"

	"github.com/kr/pretty"
	"github.com/travigo/iett/pkg/config"
	"github.com/travigo/iett/pkg/dataaggregator"
	"github.com/travigo/iett/pkg/iett"
	"github.com/travigo/iett/pkg/util"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:      "lookup",
		Usage:     "Print the route detail of a line",
		ArgsUsage: "<hatKodu>",
		Action: func(c *cli.Context) error {
			hatKodu := util.NormaliseLineCode(c.Args().First())
			if hatKodu == "" {
				return errors.New("a line code is required")
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			detail := dataaggregator.NewAggregator(client).RouteDetail(c.Context, hatKodu)

			return PrintRouteDetail(c.App.Writer, detail)
		},
	}
}

func RegisterExportCLI() *cli.Command {
	return &cli.Command{
		Name:      "export-schedule",
		Usage:     "Write the planned departures of a line as CSV",
		ArgsUsage: "<hatKodu>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "file to write, stdout when empty",
			},
		},
		Action: func(c *cli.Context) error {
			hatKodu := util.NormaliseLineCode(c.Args().First())
			if hatKodu == "" {
				return errors.New("a line code is required")
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			seferler, err := client.GetPlanlananSeferSaati(c.Context, hatKodu)
			if err != nil {
				return err
			}

			var out io.Writer = c.App.Writer
			if path := c.String("output"); path != "" {
				file, err := os.Create(path)
				if err != nil {
					return err
				}
				defer file.Close()

				out = file
			}

			return iett.WriteScheduleCSV(out, seferler)
		},
	}
}

func newClient() (*iett.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	return cfg.NewClient()
}

// PrintRouteDetail writes a human readable dump of detail
func PrintRouteDetail(w io.Writer, detail *dataaggregator.RouteDetail) error {
	if detail.Hat == nil {
		if _, err := pretty.Fprintf(w, "Line not found or unavailable (status %v)\n", detail.Durum.Hat); err != nil {
			return err
		}
	}

	_, err := pretty.Fprintf(w, "%# v\n", detail)
	return err
}
