// Package advisory parses the ARPAV mountain weather and avalanche advisory.
package advisory

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/couchcryptid/nvdata-service/internal/domain"
)

type document struct {
	Issued   *issuedXML   `xml:"data_emissione"`
	Bulletin *bulletinXML `xml:"bollettino"`
}

type issuedXML struct {
	Date string `xml:"date,attr"`
}

type bulletinXML struct {
	Situation  string   `xml:"situazione"`
	Forecast   string   `xml:"previsione"`
	Guidance   string   `xml:"indicazioni"`
	Forecaster string   `xml:"previsore"`
	Days       []dayXML `xml:"scadenza"`
}

type dayXML struct {
	Date  string    `xml:"data,attr"`
	Areas []areaXML `xml:"area"`
}

type areaXML struct {
	Name            string    `xml:"nome,attr"`
	Danger          string    `xml:"pericolo"`
	FreshSnow       string    `xml:"neve_fresca"`
	DangerousPlaces string    `xml:"luoghi_pericolosi"`
	Elevations      string    `xml:"quote"`
	AvalancheType   string    `xml:"tipodivalanga"`
	DangerScope     string    `xml:"ambitidelpericolo"`
	Icons           *iconsXML `xml:"icone"`
}

type iconsXML struct {
	Items []iconXML `xml:",any"`
}

type iconXML struct {
	XMLName     xml.Name
	Image       string `xml:"image,attr"`
	Description string `xml:"description,attr"`
	Elevation   string `xml:"quota,attr"`
}

// Parse decodes an advisory document. Credits are always set on the result.
func Parse(data []byte) (domain.AdvisoryRecord, error) {
	rec := domain.AdvisoryRecord{Credits: domain.ArpavCredits}

	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return rec, fmt.Errorf("parse advisory: %w", err)
	}

	if doc.Issued != nil || doc.Bulletin != nil {
		rec.Intro = &domain.AdvisoryIntro{}
	}
	if doc.Issued != nil {
		rec.Intro.Date = doc.Issued.Date
	}
	if b := doc.Bulletin; b != nil {
		rec.Intro.Situation = strings.TrimSpace(b.Situation)
		rec.Intro.Forecast = strings.TrimSpace(b.Forecast)
		rec.Intro.Guidance = strings.TrimSpace(b.Guidance)
		rec.Intro.Forecaster = strings.TrimSpace(b.Forecaster)

		rec.Days = make([]domain.AdvisoryDay, 0, len(b.Days))
		for _, d := range b.Days {
			rec.Days = append(rec.Days, convertDay(d))
		}
	}
	return rec, nil
}

// convertDay merges areas that share a name, keeping the position of the
// first one. Fields present on a later area override earlier values.
func convertDay(d dayXML) domain.AdvisoryDay {
	day := domain.AdvisoryDay{Date: d.Date, Areas: []domain.AdvisoryArea{}}
	pos := make(map[string]int)

	for _, a := range d.Areas {
		i, ok := pos[a.Name]
		if !ok {
			i = len(day.Areas)
			pos[a.Name] = i
			day.Areas = append(day.Areas, domain.AdvisoryArea{Area: a.Name})
		}
		merge(&day.Areas[i], a)
	}
	return day
}

func merge(dst *domain.AdvisoryArea, a areaXML) {
	set := func(field *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*field = v
		}
	}
	set(&dst.Danger, a.Danger)
	set(&dst.FreshSnow, a.FreshSnow)
	set(&dst.DangerousPlaces, a.DangerousPlaces)
	set(&dst.Elevations, a.Elevations)
	set(&dst.AvalancheType, a.AvalancheType)
	set(&dst.DangerScope, a.DangerScope)

	if a.Icons == nil {
		return
	}
	for _, icon := range a.Icons.Items {
		converted := domain.AdvisoryIcon{
			Name:        icon.XMLName.Local,
			Image:       icon.Image,
			Description: icon.Description,
			Elevation:   icon.Elevation,
		}
		replaced := false
		for j := range dst.Icons {
			if dst.Icons[j].Name == converted.Name {
				dst.Icons[j] = converted
				replaced = true
				break
			}
		}
		if !replaced {
			dst.Icons = append(dst.Icons, converted)
		}
	}
}
