package regions

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
)

// Entry is a single catalog row.
type Entry struct {
	ID   string
	Name string
}

// Catalog maps region ids to display names and remembers the order in which
// the ids appear in the source file.
type Catalog struct {
	ids   []string
	names map[string]string
}

// NewCatalog builds a catalog from entries in order. Entries with an empty id
// or name are dropped; a repeated id keeps its first position and its last name.
func NewCatalog(entries []Entry) *Catalog {
	c := &Catalog{names: make(map[string]string, len(entries))}
	for _, e := range entries {
		c.add(e.ID, e.Name)
	}
	return c
}

func (c *Catalog) add(id, name string) {
	if id == "" || name == "" {
		return
	}
	if _, ok := c.names[id]; !ok {
		c.ids = append(c.ids, id)
	}
	c.names[id] = name
}

// LoadCatalog reads "<lang>.json" from fsys.
func LoadCatalog(fsys fs.FS, lang string) (*Catalog, error) {
	f, err := fsys.Open(lang + ".json")
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	c, err := DecodeCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("decode catalog %s.json: %w", lang, err)
	}
	return c, nil
}

// DecodeCatalog reads a flat JSON object of id -> name, keeping key order.
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("catalog must be a JSON object")
	}

	c := &Catalog{names: make(map[string]string)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		id, _ := keyTok.(string)

		var name string
		if err := dec.Decode(&name); err != nil {
			return nil, fmt.Errorf("region %q: %w", id, err)
		}
		c.add(id, name)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return c, nil
}

// Len returns the number of regions.
func (c *Catalog) Len() int {
	return len(c.ids)
}

// IDs returns region ids in catalog order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// Name returns the display name for id.
func (c *Catalog) Name(id string) (string, bool) {
	name, ok := c.names[id]
	return name, ok
}

// RegionName returns the display name for id, or id itself when unknown.
func (c *Catalog) RegionName(id string) string {
	if name, ok := c.names[id]; ok {
		return name
	}
	return id
}
