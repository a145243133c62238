package service

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/sangkips/gusto-pos/internal/domain/entity"
	"github.com/sangkips/gusto-pos/pkg/money"
	"github.com/sangkips/gusto-pos/pkg/printer"
)

// RenderESCPOS converts a composed document into ESC/POS bytes for a thermal printer.
func RenderESCPOS(doc *entity.Document) []byte {
	out := printer.NewDocument(doc.Layout.CharsPerLine)

	for i, section := range doc.Sections {
		if i > 0 {
			out.Separator('-')
		}

		switch section.Kind {
		case entity.SectionStation:
			out.SetAlign(printer.AlignLeft).
				SetBold(true).
				SetFontSize(printer.FontWide).
				Text(section.Heading).
				SetFontSize(printer.FontNormal).
				SetBold(false)
		case entity.SectionItems:
			if section.Heading != "" && section.Table == nil {
				out.SetAlign(printer.AlignLeft).SetBold(true).Text(section.Heading).SetBold(false)
			}
		}

		if section.Table != nil {
			writeItemTable(out, section.Table)
		}
		for _, line := range section.Lines {
			writeLine(out, section.Kind, line)
		}
		if section.Code != nil {
			out.SetAlign(printer.AlignCenter).
				QRCode(section.Code.Data, qrModuleSize(section.Code.Size)).
				SetAlign(printer.AlignLeft)
		}
	}

	out.SetAlign(printer.AlignLeft).
		FeedLines(3).
		PartialCut()
	return out.Bytes()
}

func writeItemTable(out *printer.Document, table *entity.ItemTable) {
	out.SetAlign(printer.AlignLeft)
	for _, row := range table.Rows {
		out.ItemLine(row.Quantity, row.Name, money.Format(row.LineTotal))
		if row.Quantity > 1 {
			out.TextF("  @ %s each", money.Format(row.UnitPrice))
		}
		if row.Note != "" {
			out.Wrapped("  * " + row.Note)
		}
	}
}

func writeLine(out *printer.Document, kind entity.SectionKind, line entity.Line) {
	out.SetAlign(escposAlign(line.Align))
	if line.Emphasis {
		out.SetBold(true)
		if kind == entity.SectionStation || kind == entity.SectionNotice {
			out.SetFontSize(printer.FontTall)
		}
	}

	switch {
	case line.Text != "":
		out.Wrapped(line.Text)
	case line.Label != "" && line.Align != entity.AlignCenter:
		out.KeyValue(line.Label+":", line.Value)
	case line.Label != "":
		out.Wrapped(line.Label + ": " + line.Value)
	default:
		out.Wrapped(line.Value)
	}

	if line.Emphasis {
		out.SetFontSize(printer.FontNormal).SetBold(false)
	}
	out.SetAlign(printer.AlignLeft)
}

func escposAlign(a string) int {
	switch a {
	case entity.AlignCenter:
		return printer.AlignCenter
	case entity.AlignRight:
		return printer.AlignRight
	}
	return printer.AlignLeft
}

// qrModuleSize maps a pixel size such as "120x120" to a printer module size
func qrModuleSize(size string) int {
	var w, h int
	if _, err := fmt.Sscanf(size, "%dx%d", &w, &h); err != nil || w <= 0 {
		return 6
	}
	return w / 20
}

var htmlDocument = template.Must(template.New("document").Funcs(template.FuncMap{
	"money": money.Format,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}} {{.Reference}}</title>
<style>
@page { size: {{.Layout.PaperWidth}} auto; margin: 8mm; }
body { font-family: monospace; max-width: {{.Layout.CharsPerLine}}ch; margin: 0 auto;{{with .Layout.FontSize}} font-size: {{.}};{{end}}{{with .Layout.FontWeight}} font-weight: {{.}};{{end}}{{with .Layout.LineHeight}} line-height: {{.}};{{end}} }
section { border-bottom: 1px dashed #000; padding: 4px 0; }
.center { text-align: center; } .right { text-align: right; }
.em { font-weight: bold; }
.row { display: flex; justify-content: space-between; }
table { width: 100%; border-collapse: collapse; }
th, td { text-align: left; } td.num, th.num { text-align: right; }
.note { font-style: italic; }
</style>
</head>
<body>
{{range .Sections}}<section class="{{.Kind}}">
{{with .Heading}}<h3>{{.}}</h3>{{end}}
{{with .Table}}<table>
<tr><th>{{index .Columns 0}}</th><th>{{index .Columns 1}}</th><th class="num">{{index .Columns 2}}</th><th class="num">{{index .Columns 3}}</th></tr>
{{range .Rows}}<tr><td>{{.Quantity}}</td><td>{{.Name}}{{with .Note}}<div class="note">{{.}}</div>{{end}}</td><td class="num">{{money .UnitPrice}}</td><td class="num">{{money .LineTotal}}</td></tr>
{{end}}</table>{{end}}
{{range .Lines}}{{if .Text}}<p class="{{.Align}}{{if .Emphasis}} em{{end}}">{{.Text}}</p>{{else}}<div class="row{{if .Emphasis}} em{{end}}"><span>{{.Label}}</span><span>{{.Value}}</span></div>{{end}}
{{end}}{{with .Code}}<p class="center"><img src="{{.URL}}" alt="{{.Data}}"></p>{{end}}
</section>
{{end}}</body>
</html>
`))

// RenderHTML renders a composed document as a printable HTML page.
func RenderHTML(doc *entity.Document) (string, error) {
	var buf bytes.Buffer
	if err := htmlDocument.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return buf.String(), nil
}
