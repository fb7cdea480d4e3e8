package track

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed tracks.yaml
var defaultCatalogYAML []byte

// catalogFile is the on-disk YAML layout
type catalogFile struct {
	Tracks []trackEntry `yaml:"tracks"`
}

type trackEntry struct {
	ID     string       `yaml:"id"`
	Name   string       `yaml:"name"`
	Quote  string       `yaml:"quote"`
	Prices []priceEntry `yaml:"prices"`
}

type priceEntry struct {
	Date  string `yaml:"date"`
	Price string `yaml:"price"`
}

// Catalog maps track identifiers to complete price series
// Lookups never expose a partially built series
type Catalog struct {
	order  []string
	series map[string]*Series
}

// DefaultCatalog returns the built-in coin tracks
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalogYAML, DefaultBuildOptions())
}

// LoadCatalog reads a YAML catalog file from disk
func LoadCatalog(path string, opts BuildOptions) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data, opts)
}

// ParseCatalog decodes YAML catalog data and builds every series up front
// Any invalid track fails the whole catalog
func ParseCatalog(data []byte, opts BuildOptions) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("catalog parse: %w", err)
	}

	c := &Catalog{series: make(map[string]*Series, len(file.Tracks))}
	for i, entry := range file.Tracks {
		id := strings.ToUpper(strings.TrimSpace(entry.ID))
		if id == "" {
			return nil, fmt.Errorf("catalog track #%d: missing id", i)
		}
		if _, dup := c.series[id]; dup {
			return nil, fmt.Errorf("catalog track %q: duplicate id", id)
		}

		prices := make([]decimal.Decimal, len(entry.Prices))
		dates := make([]string, len(entry.Prices))
		for j, p := range entry.Prices {
			d, err := decimal.NewFromString(strings.TrimSpace(p.Price))
			if err != nil {
				return nil, fmt.Errorf("catalog track %q sample %d: %w", id, j, err)
			}
			prices[j] = d
			dates[j] = p.Date
		}

		name := entry.Name
		if name == "" {
			name = id
		}
		s, err := NewSeries(id, name, prices, dates, opts)
		if err != nil {
			return nil, err
		}
		s.Quote = entry.Quote
		if s.Quote == "" {
			s.Quote = "USD"
		}

		c.series[id] = s
		c.order = append(c.order, id)
	}

	if len(c.order) == 0 {
		return nil, fmt.Errorf("catalog: no tracks defined")
	}
	return c, nil
}

// Lookup returns the series for id (case-insensitive)
func (c *Catalog) Lookup(id string) (*Series, bool) {
	s, ok := c.series[strings.ToUpper(strings.TrimSpace(id))]
	return s, ok
}

// IDs returns track identifiers in catalog order
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// First returns the first track identifier
func (c *Catalog) First() string {
	return c.order[0]
}

// Len returns the number of tracks
func (c *Catalog) Len() int {
	return len(c.order)
}
