package enum

// PaperFormat is the physical paper a document is laid out for
type PaperFormat string

const (
	PaperFormatThermalNarrow PaperFormat = "thermal-narrow"
	PaperFormatThermalWide   PaperFormat = "thermal-wide"
	PaperFormatFullPage      PaperFormat = "full-page"
)

func (f PaperFormat) String() string {
	return string(f)
}

// IsValid reports whether f is a known paper format
func (f PaperFormat) IsValid() bool {
	switch f {
	case PaperFormatThermalNarrow, PaperFormatThermalWide, PaperFormatFullPage:
		return true
	}
	return false
}

// IsThermal reports whether f targets a roll printer
func (f PaperFormat) IsThermal() bool {
	return f == PaperFormatThermalNarrow || f == PaperFormatThermalWide
}

// CharsPerLine returns the monospace line width for the format
// (32 for 58mm paper, 48 for 80mm paper, 80 for a full page)
func (f PaperFormat) CharsPerLine() int {
	switch f {
	case PaperFormatThermalNarrow:
		return 32
	case PaperFormatFullPage:
		return 80
	default:
		return 48
	}
}

// PaperWidth returns the physical width hint for the renderer
func (f PaperFormat) PaperWidth() string {
	switch f {
	case PaperFormatThermalNarrow:
		return "58mm"
	case PaperFormatFullPage:
		return "210mm"
	default:
		return "80mm"
	}
}
