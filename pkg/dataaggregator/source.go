package dataaggregator

import (
	"context"

	"github.com/travigo/iett/pkg/iett"
)

// DataSource supplies every part of a route detail. *iett.Client is the production source.
type DataSource interface {
	GetHat(ctx context.Context, hatKodu string) ([]iett.Hat, error)
	GetPlanlananSeferSaati(ctx context.Context, hatKodu string) ([]iett.PlanlananSefer, error)
	GetDuyurular(ctx context.Context, hatKodu string) ([]iett.Duyuru, error)
	GetHatOtoKonum(ctx context.Context, hatKodu string) ([]iett.HatOtoKonum, error)
	GetDurakDetay(ctx context.Context, hatKodu string) ([]iett.DurakDetay, error)
}
