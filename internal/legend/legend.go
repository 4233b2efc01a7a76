// Package legend reads the QGIS style sidecar that ships with the
// land-cover raster, mapping integer category codes to display colors and
// human-readable labels.
package legend

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"os"
	"strconv"
)

type Category struct {
	Value int
	Label string
	Color color.RGBA
}

// Legend is the ordered category list of one style file.
type Legend struct {
	Categories []Category
}

type qmlItem struct {
	Value string `xml:"value,attr"`
	Label string `xml:"label,attr"`
	Color string `xml:"color,attr"`
}

type qmlDocument struct {
	Items []qmlItem `xml:"pipe>rasterrenderer>rastershader>colorrampshader>item"`
}

// Load parses a QGIS .qml style file.
func Load(path string) (*Legend, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read style file %s: %w", path, err)
	}

	var doc qmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse style file %s: %w", path, err)
	}
	if len(doc.Items) == 0 {
		return nil, fmt.Errorf("style file %s has no color ramp items", path)
	}

	legend := &Legend{}
	for _, item := range doc.Items {
		value, err := strconv.ParseFloat(item.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid category value %q in %s: %w", item.Value, path, err)
		}
		rgba, err := parseHexColor(item.Color)
		if err != nil {
			return nil, fmt.Errorf("invalid color %q in %s: %w", item.Color, path, err)
		}
		label := item.Label
		if label == "" {
			label = item.Value
		}
		legend.Categories = append(legend.Categories, Category{
			Value: int(value),
			Label: label,
			Color: rgba,
		})
	}

	return legend, nil
}

// Lookup returns the category for a code.
func (l *Legend) Lookup(value int) (Category, bool) {
	for _, c := range l.Categories {
		if c.Value == value {
			return c, true
		}
	}
	return Category{}, false
}

// Values returns the category codes in file order.
func (l *Legend) Values() []int {
	values := make([]int, 0, len(l.Categories))
	for _, c := range l.Categories {
		values = append(values, c.Value)
	}
	return values
}

func parseHexColor(s string) (color.RGBA, error) {
	if len(s) == 0 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("expected #rrggbb, got %q", s)
	}
	hex := s[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("expected #rrggbb or #rrggbbaa, got %q", s)
	}
	parsed, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return color.RGBA{}, err
	}
	c := color.RGBA{A: 255}
	if len(hex) == 8 {
		c.A = uint8(parsed & 0xff)
		parsed >>= 8
	}
	c.B = uint8(parsed & 0xff)
	c.G = uint8(parsed >> 8 & 0xff)
	c.R = uint8(parsed >> 16 & 0xff)
	return c, nil
}
