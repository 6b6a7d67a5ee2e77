package topoconv

// file artwork.go holds the drawing-layer conversion: the stage that
// partitions the annotation section of the raw legacy mapping into note,
// shape, and pixmap records and regroups them for the output document.

import (
	"strconv"
	"strings"
)

// artworkSection is the top-level raw section holding drawing-layer items.
// It carries no colon, so instance discovery never mistakes it for a host.
const artworkSection = "GNS3-DATA"

// legacy default fill for shapes that declare no color of their own
const defaultShapeColor = "#ffffff"

// An ArtworkNote is one free-text annotation of the drawing layer.
type ArtworkNote struct {
	Text  string  `json:"text" yaml:"text"`
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Color string  `json:"color,omitempty" yaml:"color,omitempty"`
}

// An ArtworkShape is one geometric annotation of the drawing layer.  Kind
// ("ellipse" or "rectangle") selects the output group the shape lands in
// and is not serialized with the shape itself.
type ArtworkShape struct {
	Kind         string  `json:"-" yaml:"-"`
	X            float64 `json:"x" yaml:"x"`
	Y            float64 `json:"y" yaml:"y"`
	Width        float64 `json:"width" yaml:"width"`
	Height       float64 `json:"height" yaml:"height"`
	BorderStyle  int     `json:"border_style,omitempty" yaml:"borderstyle,omitempty"`
	Color        string  `json:"color" yaml:"color"`
	Transparency float64 `json:"transparency" yaml:"transparency"`
	Rotation     float64 `json:"rotation,omitempty" yaml:"rotation,omitempty"`
}

// An ArtworkPixmap is one image annotation of the drawing layer.
type ArtworkPixmap struct {
	Path string  `json:"path" yaml:"path"`
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
}

// Artwork groups the drawing-layer items by kind, each keyed by the item
// number the legacy section assigned.
type Artwork struct {
	Notes   map[string]ArtworkNote
	Shapes  map[string]ArtworkShape
	Pixmaps map[string]ArtworkPixmap
}

// ProcessArtwork partitions the drawing-layer section of the raw mapping
// into artwork records.  A note bound to an interface decorates a port
// rather than the canvas and is dropped; the legacy "rotate" attribute is
// carried as the rotation angle; item kinds other than NOTE, SHAPE, and
// PIXMAP are ignored.
func ProcessArtwork(raw RawTopology) *Artwork {
	art := &Artwork{
		Notes:   make(map[string]ArtworkNote),
		Shapes:  make(map[string]ArtworkShape),
		Pixmaps: make(map[string]ArtworkPixmap),
	}

	section, present := raw[artworkSection]
	if !present {
		return art
	}

	for _, item := range sortedKeys(section) {
		attrs := section[item]
		kind, id, found := strings.Cut(item, " ")
		if !found {
			continue
		}
		switch kind {
		case "NOTE":
			if _, bound := attrs["interface"]; bound {
				continue
			}
			art.Notes[id] = ArtworkNote{
				Text:  attrs["text"],
				X:     floatAttr(attrs, "x"),
				Y:     floatAttr(attrs, "y"),
				Color: attrs["color"],
			}
		case "SHAPE":
			shape := ArtworkShape{
				Kind:         attrs["type"],
				X:            floatAttr(attrs, "x"),
				Y:            floatAttr(attrs, "y"),
				Width:        floatAttr(attrs, "width"),
				Height:       floatAttr(attrs, "height"),
				BorderStyle:  int(floatAttr(attrs, "border_style")),
				Color:        defaultShapeColor,
				Transparency: floatAttr(attrs, "transparency"),
				Rotation:     floatAttr(attrs, "rotate"),
			}
			if color, declared := attrs["color"]; declared {
				shape.Color = color
			}
			art.Shapes[id] = shape
		case "PIXMAP":
			art.Pixmaps[id] = ArtworkPixmap{
				Path: attrs["path"],
				X:    floatAttr(attrs, "x"),
				Y:    floatAttr(attrs, "y"),
			}
		}
	}
	return art
}

// GenerateNotes lists the note records in item-number order.
func GenerateNotes(art *Artwork) []ArtworkNote {
	notes := make([]ArtworkNote, 0, len(art.Notes))
	for _, id := range sortedKeys(art.Notes) {
		notes = append(notes, art.Notes[id])
	}
	return notes
}

// GenerateShapes regroups the shape records by kind, each group in
// item-number order.  The kind moves into the group key and is cleared on
// the grouped records.
func GenerateShapes(art *Artwork) map[string][]ArtworkShape {
	shapes := make(map[string][]ArtworkShape)
	for _, id := range sortedKeys(art.Shapes) {
		shape := art.Shapes[id]
		kind := shape.Kind
		shape.Kind = ""
		shapes[kind] = append(shapes[kind], shape)
	}
	return shapes
}

// GeneratePixmaps lists the pixmap records in item-number order.
func GeneratePixmaps(art *Artwork) []ArtworkPixmap {
	pixmaps := make([]ArtworkPixmap, 0, len(art.Pixmaps))
	for _, id := range sortedKeys(art.Pixmaps) {
		pixmaps = append(pixmaps, art.Pixmaps[id])
	}
	return pixmaps
}

// floatAttr parses a numeric attribute, zero when absent or malformed.
func floatAttr(attrs RawItem, key string) float64 {
	f, err := strconv.ParseFloat(attrs[key], 64)
	if err != nil {
		return 0
	}
	return f
}
