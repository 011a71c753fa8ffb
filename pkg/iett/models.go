package iett

// Hat is a single bus line
type Hat struct {
	Code                string    `json:"SHATKODU" groups:"basic,detailed"`
	Name                string    `json:"SHATADI" groups:"basic,detailed"`
	Tariff              string    `json:"TARIFE" groups:"detailed"`
	LengthKm            FlexFloat `json:"HAT_UZUNLUGU" groups:"basic,detailed"`
	TripDurationMinutes FlexFloat `json:"SEFER_SURESI" groups:"basic,detailed"`
}

// Durak is a physical stop
type Durak struct {
	Code       FlexString `json:"SDURAKKODU"`
	Name       string     `json:"SDURAKADI"`
	Coordinate string     `json:"KOORDINAT"`
	District   string     `json:"ILCEADI"`
	Direction  string     `json:"SYON"`
	SmartStop  FlexString `json:"AKILLI"`
	Physical   FlexString `json:"FIZIKI"`
	Type       FlexString `json:"DURAKTIPI"`
	Accessible FlexString `json:"ENGELLIKULLANIMI"`
}

type Garaj struct {
	ID        FlexString `json:"ID"`
	Name      string     `json:"SGARAJADI"`
	Code      string     `json:"SGARAJKODU"`
	Latitude  FlexFloat  `json:"YKOORDINATI"`
	Longitude FlexFloat  `json:"XKOORDINATI"`
}

// Direction codes used by schedules and route stops
const (
	DirectionOutbound = "D"
	DirectionInbound  = "G"
)

// Day type codes used by schedules
const (
	DayTypeWeekday  = "C"
	DayTypeSaturday = "I"
	DayTypeSunday   = "P"
)

// PlanlananSefer is one scheduled departure of a line
type PlanlananSefer struct {
	LineCode    string  `json:"SHATKODU" csv:"line_code"`
	LineName    string  `json:"HATADI" csv:"line_name"`
	Route       string  `json:"SGUZERAH" csv:"route"`
	Direction   string  `json:"SYON" csv:"direction"`
	DayType     string  `json:"SGUNTIPI" csv:"day_type"`
	RouteMarker *string `json:"GUZERGAH_ISARETI" csv:"-"`
	ServiceType string  `json:"SSERVISTIPI" csv:"service_type"`
	Time        string  `json:"DT" csv:"departure_time"`
}

// Duyuru is an operational announcement. Line is free text and may name several lines.
type Duyuru struct {
	LineCode  string     `json:"HATKODU"`
	Line      string     `json:"HAT"`
	Type      FlexString `json:"TIP"`
	UpdatedAt string     `json:"GUNCELLEME_SAATI"`
	Message   string     `json:"MESAJ"`
}

// HatOtoKonum is a real time vehicle position report
type HatOtoKonum struct {
	DoorNumber      string `json:"kapino"`
	Longitude       string `json:"boylam"`
	Latitude        string `json:"enlem"`
	LineCode        string `json:"hatkodu"`
	RouteCode       string `json:"guzergahkodu"`
	LineName        string `json:"hatad"`
	Direction       string `json:"yon"`
	LastSeen        string `json:"son_konum_zamani"`
	NearestStopCode string `json:"yakinDurakKodu"`

	NearestStopName string `json:"yakinDurakAdi,omitempty"`
}

// DurakDetay is one stop of a line's route in one direction
type DurakDetay struct {
	LineCode      string  `json:"HATKODU"`
	Direction     string  `json:"YON"`
	DirectionName string  `json:"YON_ADI"`
	Sequence      int     `json:"SIRANO"`
	StopCode      string  `json:"DURAKKODU"`
	StopName      string  `json:"DURAKADI"`
	X             float64 `json:"XKOORDINATI"`
	Y             float64 `json:"YKOORDINATI"`
	StopType      string  `json:"DURAKTIPI"`
	Zone          string  `json:"ISLETMEBOLGE"`
	SubZone       string  `json:"ISLETMEALTBOLGE"`
	District      string  `json:"ILCEADI"`
}
