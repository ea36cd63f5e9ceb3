package domain

// ArpavCredits is the attribution attached to every advisory record.
const ArpavCredits = "ARPAV - https://meteo.arpa.veneto.it"

// AdvisoryIntro holds the issue date and the general sections of an advisory.
type AdvisoryIntro struct {
	Date       string `json:"date"`
	Situation  string `json:"situation"`
	Forecast   string `json:"forecast"`
	Guidance   string `json:"guidance"`
	Forecaster string `json:"forecaster"`
}

// AdvisoryIcon is a pictogram reference attached to an area forecast.
type AdvisoryIcon struct {
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Elevation   string `json:"elevation"`
}

// AdvisoryArea is the per-area forecast for a single day.
type AdvisoryArea struct {
	Area            string         `json:"area"`
	Danger          string         `json:"danger,omitempty"`
	FreshSnow       string         `json:"fresh_snow,omitempty"`
	DangerousPlaces string         `json:"dangerous_places,omitempty"`
	Elevations      string         `json:"elevations,omitempty"`
	AvalancheType   string         `json:"avalanche_type,omitempty"`
	DangerScope     string         `json:"danger_scope,omitempty"`
	Icons           []AdvisoryIcon `json:"icons,omitempty"`
}

// AdvisoryDay groups the area forecasts valid on one date.
type AdvisoryDay struct {
	Date  string         `json:"date"`
	Areas []AdvisoryArea `json:"areas"`
}

// AdvisoryRecord is the canonical output of the ARPAV advisory feed.
// When the feed is unavailable only Credits is set.
type AdvisoryRecord struct {
	Intro   *AdvisoryIntro `json:"intro,omitempty"`
	Days    []AdvisoryDay  `json:"days,omitempty"`
	Credits string         `json:"credits"`
}
