package dataaggregator

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/travigo/iett/pkg/iett"
	"github.com/travigo/iett/pkg/metrics"
)

type PartStatus string

const (
	PartStatusOK          PartStatus = "ok"
	PartStatusUnavailable PartStatus = "unavailable"
)

// RouteDetailStatus tells apart a part that came back empty from one whose call failed.
// A nil Hat with Hat status ok means the line does not exist.
type RouteDetailStatus struct {
	Hat       PartStatus `json:"hat"`
	Seferler  PartStatus `json:"seferler"`
	Duyurular PartStatus `json:"duyurular"`
	Konumlar  PartStatus `json:"konumlar"`
	Duraklar  PartStatus `json:"duraklar"`
}

// RouteDetail is everything known about one line. Every list is non-nil.
type RouteDetail struct {
	Hat       *iett.Hat             `json:"hat"`
	Seferler  []iett.PlanlananSefer `json:"seferler"`
	Duyurular []iett.Duyuru         `json:"duyurular"`
	Konumlar  []iett.HatOtoKonum    `json:"konumlar"`
	Duraklar  []iett.DurakDetay     `json:"duraklar"`

	Durum RouteDetailStatus `json:"durum"`
}

type Aggregator struct {
	Source DataSource
}

func NewAggregator(source DataSource) *Aggregator {
	log.Debug().Msg("Registering route detail aggregator")

	return &Aggregator{Source: source}
}

// RouteDetail queries every part of a line concurrently. It never fails: a part whose
// call errors is left empty and marked unavailable.
func (a *Aggregator) RouteDetail(ctx context.Context, hatKodu string) *RouteDetail {
	var (
		hatResult       Result[[]iett.Hat]
		seferlerResult  Result[[]iett.PlanlananSefer]
		duyurularResult Result[[]iett.Duyuru]
		konumlarResult  Result[[]iett.HatOtoKonum]
		duraklarResult  Result[[]iett.DurakDetay]
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		hatResult = capture(func() ([]iett.Hat, error) { return a.Source.GetHat(ctx, hatKodu) })
	})
	wg.Go(func() {
		seferlerResult = capture(func() ([]iett.PlanlananSefer, error) { return a.Source.GetPlanlananSeferSaati(ctx, hatKodu) })
	})
	wg.Go(func() {
		duyurularResult = capture(func() ([]iett.Duyuru, error) { return a.Source.GetDuyurular(ctx, hatKodu) })
	})
	wg.Go(func() {
		konumlarResult = capture(func() ([]iett.HatOtoKonum, error) { return a.Source.GetHatOtoKonum(ctx, hatKodu) })
	})
	wg.Go(func() {
		duraklarResult = capture(func() ([]iett.DurakDetay, error) { return a.Source.GetDurakDetay(ctx, hatKodu) })
	})
	wg.Wait()

	return mergeRouteDetail(hatKodu, hatResult, seferlerResult, duyurularResult, konumlarResult, duraklarResult)
}

func mergeRouteDetail(
	hatKodu string,
	hatResult Result[[]iett.Hat],
	seferlerResult Result[[]iett.PlanlananSefer],
	duyurularResult Result[[]iett.Duyuru],
	konumlarResult Result[[]iett.HatOtoKonum],
	duraklarResult Result[[]iett.DurakDetay],
) *RouteDetail {
	detail := &RouteDetail{
		Seferler:  valueOr(seferlerResult, []iett.PlanlananSefer{}),
		Duyurular: valueOr(duyurularResult, []iett.Duyuru{}),
		Konumlar:  valueOr(konumlarResult, []iett.HatOtoKonum{}),
		Duraklar:  valueOr(duraklarResult, []iett.DurakDetay{}),
		Durum: RouteDetailStatus{
			Hat:       partStatus(hatKodu, "hat", hatResult.Err),
			Seferler:  partStatus(hatKodu, "seferler", seferlerResult.Err),
			Duyurular: partStatus(hatKodu, "duyurular", duyurularResult.Err),
			Konumlar:  partStatus(hatKodu, "konumlar", konumlarResult.Err),
			Duraklar:  partStatus(hatKodu, "duraklar", duraklarResult.Err),
		},
	}

	if hatResult.OK() && len(hatResult.Value) > 0 {
		hat := hatResult.Value[0]
		detail.Hat = &hat
	}

	return detail
}

func partStatus(hatKodu string, part string, err error) PartStatus {
	if err == nil {
		return PartStatusOK
	}

	log.Warn().Err(err).Str("hat", hatKodu).Str("part", part).Msg("Route detail part unavailable")
	metrics.ObservePartialFailure(part)

	return PartStatusUnavailable
}
