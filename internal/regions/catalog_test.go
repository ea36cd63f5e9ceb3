package regions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCatalog_KeepsFileOrder(t *testing.T) {
	c, err := DecodeCatalog(strings.NewReader(testNames))
	require.NoError(t, err)

	assert.Equal(t, []string{"IT-34", "IT-34-BL-01", "IT-34-BL-02", "IT-32-TN", "IT-32-TN-01"}, c.IDs())
	assert.Equal(t, 5, c.Len())
}

func TestDecodeCatalog_DropsEmptyNames(t *testing.T) {
	c, err := DecodeCatalog(strings.NewReader(testNames))
	require.NoError(t, err)

	_, ok := c.Name("IT-21")
	assert.False(t, ok)
}

func TestDecodeCatalog_DuplicateKeepsFirstPosition(t *testing.T) {
	c, err := DecodeCatalog(strings.NewReader(`{"A": "one", "B": "two", "A": "three"}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, c.IDs())
	name, _ := c.Name("A")
	assert.Equal(t, "three", name)
}

func TestDecodeCatalog_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"array", `["IT-34"]`},
		{"non-string name", `{"IT-34": 34}`},
		{"truncated", `{"IT-34": "Veneto"`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCatalog(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestCatalog_RegionNameFallsBackToID(t *testing.T) {
	c := NewCatalog([]Entry{{ID: "IT-34", Name: "Veneto"}})

	assert.Equal(t, "Veneto", c.RegionName("IT-34"))
	assert.Equal(t, "IT-99", c.RegionName("IT-99"))
}

func TestCatalog_IDsReturnsCopy(t *testing.T) {
	c := NewCatalog([]Entry{{ID: "A", Name: "a"}, {ID: "B", Name: "b"}})
	ids := c.IDs()
	ids[0] = "Z"

	assert.Equal(t, []string{"A", "B"}, c.IDs())
}

func TestLoadCatalog_ByLanguage(t *testing.T) {
	fsys := fixtureFS()

	c, err := LoadCatalog(mustSub(t, fsys, namesDir), "de")
	require.NoError(t, err)
	assert.Equal(t, "Venetien", c.RegionName("IT-34"))

	_, err = LoadCatalog(mustSub(t, fsys, namesDir), "fr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open catalog")
}
