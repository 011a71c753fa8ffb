package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/iett/pkg/iett"
	"github.com/travigo/iett/pkg/soap"
	"google.golang.org/protobuf/proto"
)

type upstreamStub struct {
	mu        sync.Mutex
	responses map[string]string
	failing   map[string]bool
	calls     []soap.Call
}

func (u *upstreamStub) Call(ctx context.Context, call soap.Call) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.calls = append(u.calls, call)

	if u.failing[call.Method] {
		return "", &soap.TransportError{Method: call.Method, StatusCode: http.StatusServiceUnavailable}
	}

	for _, value := range call.Params {
		if body, ok := u.responses[call.Method+"|"+value]; ok {
			return body, nil
		}
	}

	return u.responses[call.Method], nil
}

func (u *upstreamStub) paramsFor(method string) []map[string]string {
	u.mu.Lock()
	defer u.mu.Unlock()

	params := []map[string]string{}
	for _, call := range u.calls {
		if call.Method == method {
			params = append(params, call.Params)
		}
	}
	return params
}

func result(method string, payload string) string {
	return `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body><` + method + `Response xmlns="http://tempuri.org/"><` +
		method + `Result>` + soap.EscapeXML(payload) + `</` + method + `Result></` + method + `Response></soap:Body></soap:Envelope>`
}

func newTestApp(t *testing.T) (*fiber.App, *upstreamStub) {
	t.Helper()

	upstream := &upstreamStub{
		responses: map[string]string{},
		failing:   map[string]bool{},
	}

	upstream.responses[iett.MethodGetHat] = result(iett.MethodGetHat, `[
		{"SHATKODU":"500T","SHATADI":"TUZLA - CEVİZLİBAĞ","TARIFE":"Tam","HAT_UZUNLUGU":58.4,"SEFER_SURESI":112},
		{"SHATKODU":"34","SHATADI":"AVCILAR - ZİNCİRLİKUYU","TARIFE":"Tam","HAT_UZUNLUGU":"41,5","SEFER_SURESI":65},
		{"SHATKODU":"KM12","SHATADI":"KEMERBURGAZ - METRO","TARIFE":"Tam","HAT_UZUNLUGU":8,"SEFER_SURESI":30}
	]`)
	upstream.responses[iett.MethodGetHat+"|500T"] = result(iett.MethodGetHat, `[{"SHATKODU":"500T","SHATADI":"TUZLA - CEVİZLİBAĞ","TARIFE":"Tam","HAT_UZUNLUGU":58.4,"SEFER_SURESI":112}]`)
	upstream.responses[iett.MethodGetHat+"|YOK"] = result(iett.MethodGetHat, `[]`)

	upstream.responses[iett.MethodGetDurak+"|118951"] = result(iett.MethodGetDurak, `[{"SDURAKKODU":118951,"SDURAKADI":"KADIKÖY","ILCEADI":"Kadıköy"}]`)
	upstream.responses[iett.MethodGetDurak+"|1"] = result(iett.MethodGetDurak, `[]`)
	upstream.responses[iett.MethodGetGaraj] = result(iett.MethodGetGaraj, `[{"ID":1,"SGARAJADI":"ANADOLU","SGARAJKODU":"A"}]`)

	upstream.responses[iett.MethodGetPlanlananSeferSaati] = result(iett.MethodGetPlanlananSeferSaati, `[
		{"SHATKODU":"500T","HATADI":"TUZLA - CEVİZLİBAĞ","SYON":"D","SGUNTIPI":"C","SSERVISTIPI":"ÖHO","DT":"07:30"},
		{"SHATKODU":"500T","HATADI":"TUZLA - CEVİZLİBAĞ","SYON":"D","SGUNTIPI":"C","SSERVISTIPI":"ÖHO","DT":"06:15"}
	]`)
	upstream.responses[iett.MethodGetDuyurular] = result(iett.MethodGetDuyurular, `[
		{"HATKODU":"500T","HAT":"500T","TIP":"Günlük","MESAJ":"Yol çalışması"},
		{"HATKODU":"34","HAT":"34","TIP":"Günlük","MESAJ":"Metrobüs"}
	]`)
	upstream.responses[iett.MethodGetHatOtoKonum] = result(iett.MethodGetHatOtoKonum, `[{"kapino":"C-1234","boylam":"29.01","enlem":"40.98","hatkodu":"500T","yon":"D","son_konum_zamani":"2024-03-04 11:58:30","yakinDurakKodu":"118951"}]`)
	upstream.responses[iett.MethodDurakDetay] = `<NewDataSet>
		<Table><HATKODU>500T</HATKODU><YON>D</YON><SIRANO>2</SIRANO><DURAKKODU>2</DURAKKODU><XKOORDINATI>29.02</XKOORDINATI><YKOORDINATI>40.99</YKOORDINATI></Table>
		<Table><HATKODU>500T</HATKODU><YON>G</YON><SIRANO>1</SIRANO><DURAKKODU>9</DURAKKODU></Table>
		<Table><HATKODU>500T</HATKODU><YON>D</YON><SIRANO>1</SIRANO><DURAKKODU>1</DURAKKODU><XKOORDINATI>29.01</XKOORDINATI><YKOORDINATI>40.98</YKOORDINATI></Table>
	</NewDataSet>`

	return NewApp(iett.NewClient(upstream)), upstream
}

func get(t *testing.T, app *fiber.App, path string) (int, []byte) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, body
}

func TestRouteDetailNormalisesLineCode(t *testing.T) {
	app, upstream := newTestApp(t)

	lowerStatus, lower := get(t, app, "/iett/hat/500t")
	upperStatus, upper := get(t, app, "/iett/hat/500T")

	assert.Equal(t, http.StatusOK, lowerStatus)
	assert.Equal(t, http.StatusOK, upperStatus)
	assert.JSONEq(t, string(upper), string(lower))

	for _, params := range upstream.paramsFor(iett.MethodGetHatOtoKonum) {
		assert.Equal(t, "500T", params["HatKodu"])
	}

	var detail map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(upper, &detail))
	assert.JSONEq(t, `{"hat":"ok","seferler":"ok","duyurular":"ok","konumlar":"ok","duraklar":"ok"}`, string(detail["durum"]))
	assert.Contains(t, string(detail["hat"]), `"SHATKODU":"500T"`)
}

func TestRouteDetailPartialFailure(t *testing.T) {
	app, upstream := newTestApp(t)
	upstream.failing[iett.MethodGetHatOtoKonum] = true

	status, body := get(t, app, "/iett/hat/500T")
	require.Equal(t, http.StatusOK, status)

	var detail struct {
		Konumlar []any             `json:"konumlar"`
		Seferler []any             `json:"seferler"`
		Durum    map[string]string `json:"durum"`
	}
	require.NoError(t, json.Unmarshal(body, &detail))

	assert.NotNil(t, detail.Konumlar)
	assert.Empty(t, detail.Konumlar)
	assert.Len(t, detail.Seferler, 2)
	assert.Equal(t, "unavailable", detail.Durum["konumlar"])
}

func TestListHatlarSortedAndReduced(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := get(t, app, "/iett/hatlar")
	require.Equal(t, http.StatusOK, status)

	var hatlar []map[string]any
	require.NoError(t, json.Unmarshal(body, &hatlar))
	require.Len(t, hatlar, 3)

	assert.Equal(t, "34", hatlar[0]["SHATKODU"])
	assert.Equal(t, "500T", hatlar[1]["SHATKODU"])
	assert.Equal(t, "KM12", hatlar[2]["SHATKODU"])
	assert.NotContains(t, hatlar[0], "TARIFE")
	assert.InDelta(t, 41.5, hatlar[0]["HAT_UZUNLUGU"], 0.001)
}

func TestListHatlarSearch(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := get(t, app, "/iett/hatlar?q=metro")
	require.Equal(t, http.StatusOK, status)

	var hatlar []map[string]any
	require.NoError(t, json.Unmarshal(body, &hatlar))
	require.Len(t, hatlar, 1)
	assert.Equal(t, "KM12", hatlar[0]["SHATKODU"])
}

func TestListHatlarByCode(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := get(t, app, "/iett/hatlar?kod=500t")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"TARIFE":"Tam"`)

	status, body = get(t, app, "/iett/hatlar?kod=yok")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))
}

func TestGetDurak(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := get(t, app, "/iett/durak")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "error")

	status, _ = get(t, app, "/iett/durak?kod=1")
	assert.Equal(t, http.StatusNotFound, status)

	status, body = get(t, app, "/iett/durak?kod=118951")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"SDURAKADI":"KADIKÖY"`)
}

func TestListGarajlar(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := get(t, app, "/iett/garajlar")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"SGARAJADI":"ANADOLU"`)
}

func TestSeferSaatleri(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := get(t, app, "/iett/sefer-saatleri")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := get(t, app, "/iett/sefer-saatleri?hatKodu=500t&grouped=true")
	require.Equal(t, http.StatusOK, status)

	var groups []iett.ScheduleGroup
	require.NoError(t, json.Unmarshal(body, &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, "Gidiş", groups[0].DirectionLabel)
	assert.Equal(t, "Hafta İçi", groups[0].DayTypeLabel)
	assert.Equal(t, []string{"06:15", "07:30"}, groups[0].Times)
}

func TestDuyurular(t *testing.T) {
	app, _ := newTestApp(t)

	_, all := get(t, app, "/iett/duyurular")
	_, filtered := get(t, app, "/iett/duyurular?hatKodu=34")

	var allDuyurular, filteredDuyurular []iett.Duyuru
	require.NoError(t, json.Unmarshal(all, &allDuyurular))
	require.NoError(t, json.Unmarshal(filtered, &filteredDuyurular))

	assert.Len(t, allDuyurular, 2)
	require.Len(t, filteredDuyurular, 1)
	assert.Equal(t, "Metrobüs", filteredDuyurular[0].Message)
}

func TestKonum(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := get(t, app, "/iett/konum")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := get(t, app, "/iett/konum?hatKodu=500T&duraklar=true")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"yakinDurakAdi":"KADIKÖY"`)

	_, body = get(t, app, "/iett/konum?hatKodu=500T")
	assert.NotContains(t, string(body), "yakinDurakAdi")
}

func TestKonumUpstreamFailure(t *testing.T) {
	app, upstream := newTestApp(t)
	upstream.failing[iett.MethodGetHatOtoKonum] = true

	status, body := get(t, app, "/iett/konum?hatKodu=500T")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, string(body), "error")
}

func TestDurakDetayDirection(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := get(t, app, "/iett/durak-detay?hatKodu=500T")
	require.Equal(t, http.StatusOK, status)

	var all []iett.DurakDetay
	require.NoError(t, json.Unmarshal(body, &all))
	require.Len(t, all, 3)
	assert.Equal(t, 2, all[0].Sequence)

	status, body = get(t, app, "/iett/durak-detay?hatKodu=500T&yon=d")
	require.Equal(t, http.StatusOK, status)

	var route struct {
		Yon       string            `json:"yon"`
		Duraklar  []iett.DurakDetay `json:"duraklar"`
		UzunlukKm float64           `json:"uzunlukKm"`
		Yonler    []string          `json:"yonler"`
	}
	require.NoError(t, json.Unmarshal(body, &route))
	assert.Equal(t, "D", route.Yon)
	require.Len(t, route.Duraklar, 2)
	assert.Equal(t, "1", route.Duraklar[0].StopCode)
	assert.Equal(t, "2", route.Duraklar[1].StopCode)
	assert.Greater(t, route.UzunlukKm, 0.0)
	assert.Equal(t, []string{"D", "G"}, route.Yonler)
}

func TestVehiclePositionsFeed(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/iett/hat/500t/gtfs-rt", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "application/x-protobuf", resp.Header.Get(fiber.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	feed := &gtfs.FeedMessage{}
	require.NoError(t, proto.Unmarshal(body, feed))
	require.Len(t, feed.GetEntity(), 1)
	assert.Equal(t, "C-1234", feed.GetEntity()[0].GetVehicle().GetVehicle().GetId())
}

func TestVersionAndMetrics(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := get(t, app, "/version")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "version")

	status, _ = get(t, app, "/metrics")
	assert.Equal(t, http.StatusOK, status)
}

func TestRequestID(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/version", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Len(t, resp.Header.Get(fiber.HeaderXRequestID), 36)
}
