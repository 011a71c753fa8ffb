package iett

import (
	"context"
	"time"

	"github.com/travigo/iett/pkg/soap"
)

// Caller performs a SOAP call and returns the raw response body
type Caller interface {
	Call(ctx context.Context, call soap.Call) (string, error)
}

// Endpoints are the asmx services the client talks to
type Endpoints struct {
	HatDurakGuzergah    string `yaml:"hat_durak_guzergah"`
	PlanlananSeferSaati string `yaml:"planlanan_sefer_saati"`
	Duyurular           string `yaml:"duyurular"`
	SeferGerceklesme    string `yaml:"sefer_gerceklesme"`
	IBB                 string `yaml:"ibb"`
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		HatDurakGuzergah:    "https://api.ibb.gov.tr/iett/UlasimAnaVeri/HatDurakGuzergah.asmx",
		PlanlananSeferSaati: "https://api.ibb.gov.tr/iett/UlasimAnaVeri/PlanlananSeferSaati.asmx",
		Duyurular:           "https://api.ibb.gov.tr/iett/UlasimDinamikVeri/Duyurular.asmx",
		SeferGerceklesme:    "https://api.ibb.gov.tr/iett/FiloDurum/SeferGerceklesme.asmx",
		IBB:                 "https://api.ibb.gov.tr/iett/ibb/ibb.asmx",
	}
}

// Freshness is how long each kind of response may be served from cache
type Freshness struct {
	AllLines         time.Duration
	Line             time.Duration
	Stop             time.Duration
	Garage           time.Duration
	Schedule         time.Duration
	Announcements    time.Duration
	VehicleLocations time.Duration
	RouteStops       time.Duration
}

func DefaultFreshness() Freshness {
	return Freshness{
		AllLines:         time.Hour,
		Line:             5 * time.Minute,
		Stop:             5 * time.Minute,
		Garage:           5 * time.Minute,
		Schedule:         5 * time.Minute,
		Announcements:    5 * time.Minute,
		VehicleLocations: 30 * time.Second,
		RouteStops:       time.Hour,
	}
}

type Client struct {
	Caller    Caller
	Endpoints Endpoints
	Freshness Freshness
	Timeout   time.Duration
}

func NewClient(caller Caller) *Client {
	return &Client{
		Caller:    caller,
		Endpoints: DefaultEndpoints(),
		Freshness: DefaultFreshness(),
		Timeout:   soap.DefaultTimeout,
	}
}

func (c *Client) call(ctx context.Context, endpoint string, method string, params map[string]string, freshness time.Duration) (string, error) {
	return c.Caller.Call(ctx, soap.Call{
		Endpoint:  endpoint,
		Method:    method,
		Params:    params,
		Timeout:   c.Timeout,
		Freshness: freshness,
	})
}

func callJSON[T any](ctx context.Context, c *Client, endpoint string, method string, params map[string]string, freshness time.Duration) ([]T, error) {
	body, err := c.call(ctx, endpoint, method, params, freshness)
	if err != nil {
		return []T{}, err
	}

	return soap.DecodeResult[T](body, method)
}
