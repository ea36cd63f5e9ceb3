package domain

// AinevaCredits is the attribution attached to every bulletin record.
const AinevaCredits = "AINEVA - https://bollettini.aineva.it/more/open-data"

// Location is a micro-region covered by a bulletin.
type Location struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Rating is a danger rating valid above or below an elevation.
type Rating struct {
	Elevation string `json:"elevation"`
	Direction string `json:"direction"`
	Value     string `json:"value"`
}

// DangerPatternEntry is a coded danger pattern with its description.
type DangerPatternEntry struct {
	Code        string             `json:"code"`
	Description PatternDescription `json:"description"`
}

// Problem is an avalanche problem with its elevation range and aspects.
type Problem struct {
	Type         string   `json:"type"`
	Orientations []string `json:"orientations"`
	Elevation    string   `json:"elevation"`
	Direction    string   `json:"direction"`
}

// Tendency is the short-range trend attached to a bulletin.
type Tendency struct {
	Type    string `json:"type"`
	From    string `json:"from"`
	To      string `json:"to"`
	Comment string `json:"tendencyComment"`
}

// BulletinRecord is the canonical output for a single region.
type BulletinRecord struct {
	RegionID        string               `json:"region_id"`
	RegionName      string               `json:"region_name"`
	ReportTime      string               `json:"report_time"`
	StartTime       string               `json:"start_time"`
	EndTime         string               `json:"end_time"`
	Locations       []Location           `json:"locations"`
	Ratings         []Rating             `json:"ratings"`
	DangerPatterns  []DangerPatternEntry `json:"danger_patterns"`
	Problems        []Problem            `json:"problems"`
	Highlight       string               `json:"highlight"`
	Description     string               `json:"description"`
	SnowDescription string               `json:"snow_description"`
	Tendency        Tendency             `json:"tendency"`
	Credits         string               `json:"credits"`
}

// IsZero reports whether the record was never populated.
func (r BulletinRecord) IsZero() bool {
	return r.RegionID == ""
}
