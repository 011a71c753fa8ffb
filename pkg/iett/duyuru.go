package iett

import (
	"context"
	"strings"
)

const MethodGetDuyurular = "GetDuyurular_json"

// GetDuyurular returns every announcement, or only those whose line text contains hatKodu
func (c *Client) GetDuyurular(ctx context.Context, hatKodu string) ([]Duyuru, error) {
	duyurular, err := callJSON[Duyuru](ctx, c, c.Endpoints.Duyurular, MethodGetDuyurular, map[string]string{}, c.Freshness.Announcements)
	if err != nil || hatKodu == "" {
		return duyurular, err
	}

	return FilterDuyurular(duyurular, hatKodu), nil
}

// FilterDuyurular keeps announcements whose line text contains hatKodu, ignoring case
func FilterDuyurular(duyurular []Duyuru, hatKodu string) []Duyuru {
	hatKodu = strings.ToUpper(hatKodu)

	filtered := []Duyuru{}
	for _, duyuru := range duyurular {
		if strings.Contains(strings.ToUpper(duyuru.Line), hatKodu) {
			filtered = append(filtered, duyuru)
		}
	}

	return filtered
}
