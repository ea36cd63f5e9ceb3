package service

import (
	"bytes"
	"encoding/json"
	"net/url"

	"github.com/couchcryptid/nvdata-service/internal/domain"
)

// Results is the coordinate query response: a list of records or, when a
// single result was requested, one record on its own.
type Results struct {
	records []domain.BulletinRecord
	single  bool
}

// LimitResults applies a max_results value. Zero leaves the records as they
// are, a positive n keeps the first n, and a negative n drops the last -n.
// n == 1 unwraps the first record.
func LimitResults(records []domain.BulletinRecord, n int) Results {
	if n == 0 {
		return Results{records: records}
	}

	end := n
	if n < 0 {
		end = len(records) + n
	}
	end = max(0, min(end, len(records)))

	return Results{records: records[:end], single: n == 1}
}

// Records returns the selected records.
func (r Results) Records() []domain.BulletinRecord {
	return r.records
}

// MarshalJSON writes an object for a single result ({} when there is none)
// and an array otherwise.
func (r Results) MarshalJSON() ([]byte, error) {
	if r.single {
		if len(r.records) == 0 {
			return []byte("{}"), nil
		}
		return json.Marshal(r.records[0])
	}
	if r.records == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.records)
}

// Link is a named API path.
type Link struct {
	Name string
	Path string
}

// Links is the ordered AINEVA section of the index. Regions sharing a display
// name collapse into one entry that keeps the first position and last path.
type Links struct {
	items []Link
}

func (l *Links) add(name, path string) {
	for i := range l.items {
		if l.items[i].Name == name {
			l.items[i].Path = path
			return
		}
	}
	l.items = append(l.items, Link{Name: name, Path: path})
}

// Items returns the links in order.
func (l Links) Items() []Link {
	return l.items
}

// RegionPath returns the API path of a region's bulletin.
func RegionPath(id string) string {
	return "/aineva/" + url.PathEscape(id)
}

// AdvisoryPath is the API path of the ARPAV advisory.
const AdvisoryPath = "/arpav"

// MarshalJSON writes the index document:
//
//	{"ARPAV":{"ARPAV":"/arpav"},"AINEVA":{"<name>":"/aineva/<id>",...}}
//
// The AINEVA key is omitted when no region has a bulletin.
func (l Links) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"ARPAV":{"ARPAV":`)
	arpav, err := json.Marshal(AdvisoryPath)
	if err != nil {
		return nil, err
	}
	buf.Write(arpav)
	buf.WriteByte('}')

	if len(l.items) > 0 {
		buf.WriteString(`,"AINEVA":{`)
		for i, link := range l.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(link.Name)
			if err != nil {
				return nil, err
			}
			v, err := json.Marshal(link.Path)
			if err != nil {
				return nil, err
			}
			buf.Write(k)
			buf.WriteByte(':')
			buf.Write(v)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
