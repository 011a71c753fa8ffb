package iett

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/iett/pkg/soap"
)

func TestGetHatSingleLine(t *testing.T) {
	caller := newFakeCaller()
	caller.responses[MethodGetHat] = jsonResponse(MethodGetHat, `[{"SHATKODU":"500T","SHATADI":"TUZLA - CEVİZLİBAĞ","TARIFE":"Tam","HAT_UZUNLUGU":"58,4","SEFER_SURESI":112}]`)

	client := NewClient(caller)
	hatlar, err := client.GetHat(context.Background(), "500T")

	require.NoError(t, err)
	require.Len(t, hatlar, 1)
	assert.Equal(t, "500T", hatlar[0].Code)
	assert.Equal(t, "TUZLA - CEVİZLİBAĞ", hatlar[0].Name)
	assert.InDelta(t, 58.4, float64(hatlar[0].LengthKm), 0.001)
	assert.InDelta(t, 112, float64(hatlar[0].TripDurationMinutes), 0.001)

	calls := caller.callsFor(MethodGetHat)
	require.Len(t, calls, 1)
	assert.Equal(t, map[string]string{"HatKodu": "500T"}, calls[0].Params)
	assert.Equal(t, client.Endpoints.HatDurakGuzergah, calls[0].Endpoint)
	assert.Equal(t, client.Freshness.Line, calls[0].Freshness)
	assert.Equal(t, soap.DefaultTimeout, calls[0].Timeout)
}

func TestGetHatAllLines(t *testing.T) {
	caller := newFakeCaller()
	caller.responses[MethodGetHat] = jsonResponse(MethodGetHat, `[{"SHATKODU":"34"},{"SHATKODU":"500T"}]`)

	client := NewClient(caller)
	hatlar, err := client.GetHat(context.Background(), "")

	require.NoError(t, err)
	assert.Len(t, hatlar, 2)

	calls := caller.callsFor(MethodGetHat)
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].Params)
	assert.Equal(t, client.Freshness.AllLines, calls[0].Freshness)
}

func TestGetHatPropagatesErrors(t *testing.T) {
	caller := newFakeCaller()
	caller.errors[MethodGetHat] = &soap.TransportError{Method: MethodGetHat, StatusCode: 502}

	hatlar, err := NewClient(caller).GetHat(context.Background(), "500T")

	assert.True(t, errors.Is(err, soap.ErrTransport))
	assert.Empty(t, hatlar)
}

func TestGetHatInvalidPayload(t *testing.T) {
	caller := newFakeCaller()
	caller.responses[MethodGetHat] = jsonResponse(MethodGetHat, `{"SHATKODU":`)

	_, err := NewClient(caller).GetHat(context.Background(), "500T")

	assert.True(t, errors.Is(err, soap.ErrExtraction))
}

func TestSearchHatlar(t *testing.T) {
	caller := newFakeCaller()
	caller.responses[MethodGetHat] = jsonResponse(MethodGetHat, `[
		{"SHATKODU":"500T","SHATADI":"TUZLA - CEVİZLİBAĞ"},
		{"SHATKODU":"34","SHATADI":"AVCILAR - ZİNCİRLİKUYU"},
		{"SHATKODU":"15F","SHATADI":"BEYKOZ - KADIKÖY"}
	]`)

	client := NewClient(caller)

	byCode, err := client.SearchHatlar(context.Background(), " 500t ")
	require.NoError(t, err)
	require.Len(t, byCode, 1)
	assert.Equal(t, "500T", byCode[0].Code)

	byName, err := client.SearchHatlar(context.Background(), "KADIKÖY")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "15F", byName[0].Code)

	none, err := client.SearchHatlar(context.Background(), "XYZ")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestSortHatlar(t *testing.T) {
	hatlar := []Hat{
		{Code: "HT1"},
		{Code: "500T"},
		{Code: "34"},
		{Code: "15F"},
		{Code: "15"},
		{Code: "ÇM1"},
		{Code: "CM2"},
	}

	SortHatlar(hatlar)

	var codes []string
	for _, hat := range hatlar {
		codes = append(codes, hat.Code)
	}

	assert.Equal(t, []string{"15", "15F", "34", "500T", "CM2", "ÇM1", "HT1"}, codes)
}
