package domain

import (
	"bytes"
	"encoding/json"
)

// dangerPatterns is the EAWS danger pattern table in publication order.
// See https://bollettini.aineva.it/education/danger-patterns.
var dangerPatterns = []struct {
	code        string
	description string
}{
	{"DP1", "Strato debole persistente basale"},
	{"DP2", "Valanga per scivolamento di neve"},
	{"DP3", "Pioggia"},
	{"DP4", "Freddo su caldo / caldo su freddo"},
	{"DP5", "Neve dopo un lungo periodo di freddo"},
	{"DP6", "Neve fresca fredda a debole coesione e vento"},
	{"DP7", "Passaggio da poca a molta neve"},
	{"DP8", "Brina di superficie sepolta"},
	{"DP9", "Neve pallottolare coperta da neve fresca"},
	{"DP10", "Situazione primaverile"},
}

// PatternDescription is the description of a danger pattern code. A known
// code carries its text; an unknown code carries the whole table, which
// serializes as an ordered JSON object of code -> description.
type PatternDescription struct {
	Text       string
	WholeTable bool
}

// DangerPatternDescription looks up the description of a danger pattern code.
func DangerPatternDescription(code string) PatternDescription {
	for _, p := range dangerPatterns {
		if p.code == code {
			return PatternDescription{Text: p.description}
		}
	}
	return PatternDescription{WholeTable: true}
}

// Table returns the full code -> description table.
func (d PatternDescription) Table() map[string]string {
	table := make(map[string]string, len(dangerPatterns))
	for _, p := range dangerPatterns {
		table[p.code] = p.description
	}
	return table
}

// MarshalJSON writes the text, or the table in publication order.
func (d PatternDescription) MarshalJSON() ([]byte, error) {
	if !d.WholeTable {
		return json.Marshal(d.Text)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range dangerPatterns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.code)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.description)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts either form written by MarshalJSON.
func (d *PatternDescription) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '{' {
		*d = PatternDescription{WholeTable: true}
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	*d = PatternDescription{Text: text}
	return nil
}
