package entity

import "github.com/sangkips/gusto-pos/internal/domain/enum"

// SectionKind tags the content a document section carries
type SectionKind string

const (
	SectionHeader  SectionKind = "header"
	SectionInfo    SectionKind = "info"
	SectionItems   SectionKind = "items"
	SectionStation SectionKind = "station"
	SectionTotals  SectionKind = "totals"
	SectionCode    SectionKind = "code"
	SectionFooter  SectionKind = "footer"
	SectionNotice  SectionKind = "notice"
)

// Alignment hints for a line
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Layout carries presentation hints for the renderer. It never changes content.
type Layout struct {
	CharsPerLine int    `json:"chars_per_line"`
	PaperWidth   string `json:"paper_width"`
	FontSize     string `json:"font_size,omitempty"`
	FontWeight   string `json:"font_weight,omitempty"`
	LineHeight   string `json:"line_height,omitempty"`
}

// Line is either free text or a label/value pair
type Line struct {
	Text     string `json:"text,omitempty"`
	Label    string `json:"label,omitempty"`
	Value    string `json:"value,omitempty"`
	Emphasis bool   `json:"emphasis,omitempty"`
	Align    string `json:"align,omitempty"`
}

// ItemRow is one priced row of an item table
type ItemRow struct {
	Quantity  int     `json:"quantity"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
	Note      string  `json:"note,omitempty"`
}

// ItemTable is the tabular item list of priced documents
type ItemTable struct {
	Columns []string  `json:"columns"`
	Rows    []ItemRow `json:"rows"`
}

// ScannableCode points at a QR image for the venue website
type ScannableCode struct {
	Data string `json:"data"`
	URL  string `json:"url"`
	Size string `json:"size,omitempty"`
}

// Section is one ordered block of a document
type Section struct {
	Kind    SectionKind    `json:"kind"`
	Heading string         `json:"heading,omitempty"`
	Lines   []Line         `json:"lines,omitempty"`
	Table   *ItemTable     `json:"table,omitempty"`
	Code    *ScannableCode `json:"code,omitempty"`
}

// Document is a composed, renderable ticket
type Document struct {
	Type      enum.DocumentType `json:"type"`
	Format    enum.PaperFormat  `json:"format"`
	Layout    Layout            `json:"layout"`
	Title     string            `json:"title"`
	Reference string            `json:"reference,omitempty"`
	Sections  []Section         `json:"sections"`
}

// Section returns the first section of the given kind, or nil
func (d *Document) Section(kind SectionKind) *Section {
	for i := range d.Sections {
		if d.Sections[i].Kind == kind {
			return &d.Sections[i]
		}
	}
	return nil
}

// SectionsOf returns every section of the given kind in order
func (d *Document) SectionsOf(kind SectionKind) []Section {
	var out []Section
	for _, s := range d.Sections {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}
