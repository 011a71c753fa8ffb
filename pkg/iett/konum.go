package iett

import "context"

const MethodGetHatOtoKonum = "GetHatOtoKonum_json"

// GetHatOtoKonum returns the live positions of every vehicle currently running hatKodu
func (c *Client) GetHatOtoKonum(ctx context.Context, hatKodu string) ([]HatOtoKonum, error) {
	return callJSON[HatOtoKonum](ctx, c, c.Endpoints.SeferGerceklesme, MethodGetHatOtoKonum, map[string]string{"HatKodu": hatKodu}, c.Freshness.VehicleLocations)
}
