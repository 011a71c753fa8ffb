package iett

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const MethodGetHat = "GetHat_json"

// GetHat returns the line matching hatKodu, or every line when hatKodu is empty
func (c *Client) GetHat(ctx context.Context, hatKodu string) ([]Hat, error) {
	if hatKodu == "" {
		return callJSON[Hat](ctx, c, c.Endpoints.HatDurakGuzergah, MethodGetHat, map[string]string{}, c.Freshness.AllLines)
	}

	return callJSON[Hat](ctx, c, c.Endpoints.HatDurakGuzergah, MethodGetHat, map[string]string{"HatKodu": hatKodu}, c.Freshness.Line)
}

// SearchHatlar matches query case-insensitively against the code and name of every line
func (c *Client) SearchHatlar(ctx context.Context, query string) ([]Hat, error) {
	hatlar, err := c.GetHat(ctx, "")
	if err != nil {
		return []Hat{}, err
	}

	query = strings.ToUpper(strings.TrimSpace(query))

	matches := []Hat{}
	for _, hat := range hatlar {
		if strings.Contains(strings.ToUpper(hat.Code), query) || strings.Contains(strings.ToUpper(hat.Name), query) {
			matches = append(matches, hat)
		}
	}

	return matches, nil
}

// SortHatlar orders lines by the number their code starts with, codes without a leading
// number last. Ties and non-numeric codes fall back to Turkish collation of the code.
func SortHatlar(hatlar []Hat) {
	collator := collate.New(language.Turkish)

	sort.SliceStable(hatlar, func(i, j int) bool {
		a, aNumeric := leadingNumber(hatlar[i].Code)
		b, bNumeric := leadingNumber(hatlar[j].Code)

		switch {
		case aNumeric && bNumeric && a != b:
			return a < b
		case aNumeric && !bNumeric:
			return true
		case !aNumeric && bNumeric:
			return false
		default:
			return collator.CompareString(hatlar[i].Code, hatlar[j].Code) < 0
		}
	})
}

func leadingNumber(code string) (int, bool) {
	end := 0
	for end < len(code) && code[end] >= '0' && code[end] <= '9' {
		end++
	}

	if end == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(code[:end])
	return n, err == nil
}
