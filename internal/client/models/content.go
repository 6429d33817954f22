package models

// BirthDetails identifies a person for chart-based content.
type BirthDetails struct {
	Name  string `json:"name"`
	DOB   string `json:"dob"`
	Time  string `json:"time"`
	Place string `json:"place"`
}

type KundaliRequest struct {
	BirthDetails
	Language string `json:"language"`
}

// KundaliData is the opaque chart summary. Houses maps house number (1..12)
// to planet abbreviations.
type KundaliData struct {
	Lagna     string           `json:"lagna"`
	MoonSign  string           `json:"moonSign"`
	SunSign   string           `json:"sunSign"`
	Nakshatra string           `json:"nakshatra"`
	Houses    map[int][]string `json:"houses"`
}

type KundaliResult struct {
	Analysis string      `json:"analysis"`
	RawData  KundaliData `json:"rawData"`
}

type MatchRequest struct {
	Boy      BirthDetails `json:"boy"`
	Girl     BirthDetails `json:"girl"`
	Language string       `json:"language"`
}

// GunaScore is one area of a Guna Milan breakdown.
type GunaScore struct {
	Area  string  `json:"area"`
	Score float64 `json:"score"`
	Max   float64 `json:"max"`
}

type MatchResult struct {
	Score       float64     `json:"score"`
	Total       float64     `json:"total"`
	Description string      `json:"description"`
	GunaMilan   []GunaScore `json:"gunaMilan"`
}

type PanchangRequest struct {
	Date     string `json:"date,omitempty"`
	Location string `json:"location,omitempty"`
	Language string `json:"language"`
}

type Panchang struct {
	Date      string `json:"date,omitempty"`
	Location  string `json:"location,omitempty"`
	Tithi     string `json:"tithi"`
	Nakshatra string `json:"nakshatra"`
	Yog       string `json:"yog,omitempty"`
	Karan     string `json:"karan,omitempty"`
	Sunrise   string `json:"sunrise"`
	Sunset    string `json:"sunset"`
	Summary   string `json:"summary,omitempty"`
}

type HoroscopeRequest struct {
	Sign      string `json:"sign"`
	Timeframe string `json:"timeframe"`
	Language  string `json:"language"`
}

// PredictionKind selects one of the generic generator tools.
type PredictionKind string

const (
	PredictionRemedies   PredictionKind = "remedies"
	PredictionNumerology PredictionKind = "numerology"
	PredictionFestival   PredictionKind = "festival"
	PredictionBabyNames  PredictionKind = "babyNames"
)

type PredictionRequest struct {
	Kind     PredictionKind `json:"type"`
	Input    string         `json:"input"`
	Language string         `json:"language"`
}

// ChatTurn is one message of the astrologer conversation.
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}
