package iett

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/iett/pkg/util"
)

const (
	MethodGetDurak = "GetDurak_json"
	MethodGetGaraj = "GetGaraj_json"
)

// GetDurak looks a stop up by its code, an empty code lists every stop
func (c *Client) GetDurak(ctx context.Context, durakKodu string) ([]Durak, error) {
	params := map[string]string{}
	if durakKodu != "" {
		params["DurakKodu"] = durakKodu
	}

	return callJSON[Durak](ctx, c, c.Endpoints.HatDurakGuzergah, MethodGetDurak, params, c.Freshness.Stop)
}

func (c *Client) GetGaraj(ctx context.Context) ([]Garaj, error) {
	return callJSON[Garaj](ctx, c, c.Endpoints.HatDurakGuzergah, MethodGetGaraj, map[string]string{}, c.Freshness.Garage)
}

// ResolveStopNames returns a copy of konumlar with NearestStopName filled in for every
// nearest stop code that could be looked up. Lookups that fail leave the name empty.
func (c *Client) ResolveStopNames(ctx context.Context, konumlar []HatOtoKonum) []HatOtoKonum {
	var codes []string
	for _, konum := range konumlar {
		codes = append(codes, konum.NearestStopCode)
	}
	codes = util.RemoveDuplicateStrings(codes, nil)

	type stopName struct {
		code string
		name string
	}

	p := pool.NewWithResults[stopName]().WithMaxGoroutines(8)
	for _, code := range codes {
		p.Go(func() stopName {
			duraklar, err := c.GetDurak(ctx, code)
			if err != nil {
				log.Debug().Err(err).Str("durak", code).Msg("Failed to resolve nearest stop")
				return stopName{code: code}
			}
			if len(duraklar) == 0 {
				return stopName{code: code}
			}

			return stopName{code: code, name: duraklar[0].Name}
		})
	}

	names := map[string]string{}
	for _, resolved := range p.Wait() {
		if resolved.name != "" {
			names[resolved.code] = resolved.name
		}
	}

	resolvedKonumlar := make([]HatOtoKonum, len(konumlar))
	for i, konum := range konumlar {
		konum.NearestStopName = names[konum.NearestStopCode]
		resolvedKonumlar[i] = konum
	}

	return resolvedKonumlar
}
