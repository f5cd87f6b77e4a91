// reports/pdf.go
//
// Minimal PDF 1.4 writer: per-page content streams assembled into the
// object/xref/trailer layout by hand. Only what the inventory documents
// need: rect fills, Helvetica text, multiple pages.
package reports

import (
	"bytes"
	"fmt"
	"strings"
)

// A4 portrait in PDF points.
const (
	pageW = 595.0
	pageH = 842.0

	marginX  = 48.0
	topY     = 794.0
	bottomY  = 56.0
	contentW = pageW - 2*marginX
)

const (
	fontRegular = "/F1"
	fontBold    = "/F2"
)

type pdfDoc struct {
	pages []*bytes.Buffer
	y     float64 // current baseline on the active page
}

func newPDFDoc() *pdfDoc {
	d := &pdfDoc{}
	d.addPage()
	return d
}

func (d *pdfDoc) addPage() {
	d.pages = append(d.pages, &bytes.Buffer{})
	d.y = topY
}

func (d *pdfDoc) cur() *bytes.Buffer { return d.pages[len(d.pages)-1] }

// ensure breaks to a fresh page when fewer than h points remain above the
// bottom margin. Reports whether a break happened so table headers can be
// re-drawn.
func (d *pdfDoc) ensure(h float64) bool {
	if d.y-h < bottomY {
		d.addPage()
		return true
	}
	return false
}

func (d *pdfDoc) fillRect(x, y, w, h, r, g, b float64) {
	fmt.Fprintf(d.cur(), "%.2f %.2f %.2f rg %.1f %.1f %.1f %.1f re f\n", r, g, b, x, y, w, h)
}

func (d *pdfDoc) text(x, y float64, font string, size, r, g, b float64, s string) {
	fmt.Fprintf(d.cur(), "%.2f %.2f %.2f rg BT %s %.1f Tf %.1f %.1f Td (%s) Tj ET\n",
		r, g, b, font, size, x, y, pdfEscape(s))
}

// textCentered centers s horizontally using the rough half-em average width
// of Helvetica. Exact metrics don't matter for headings.
func (d *pdfDoc) textCentered(y float64, font string, size, r, g, b float64, s string) {
	w := float64(len(s)) * size * 0.5
	x := (pageW - w) / 2
	if x < marginX {
		x = marginX
	}
	d.text(x, y, font, size, r, g, b, s)
}

// bytes assembles the final document. Object layout: catalog, page tree,
// n page objects, n content streams, then the two font objects every page
// references.
func (d *pdfDoc) bytes() []byte {
	n := len(d.pages)
	fontRegularObj := 3 + 2*n
	fontBoldObj := 4 + 2*n

	objects := make([]string, 0, 4+2*n)
	objects = append(objects, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, n)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i)
	}
	objects = append(objects, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n))

	for i := 0; i < n; i++ {
		objects = append(objects, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Contents %d 0 R /Resources << /Font << /F1 %d 0 R /F2 %d 0 R >> >> >>",
			3+n+i, fontRegularObj, fontBoldObj))
	}
	for _, p := range d.pages {
		s := p.String()
		objects = append(objects, fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", len(s), s))
	}
	objects = append(objects,
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold >>",
	)

	var body bytes.Buffer
	offsets := make([]int, len(objects)+1)
	body.WriteString("%PDF-1.4\n")
	for i, obj := range objects {
		offsets[i+1] = body.Len()
		fmt.Fprintf(&body, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefStart := body.Len()
	fmt.Fprintf(&body, "xref\n0 %d\n", len(objects)+1)
	body.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&body, "%010d 00000 n \n", offsets[i])
	}
	body.WriteString("trailer\n")
	fmt.Fprintf(&body, "<< /Size %d /Root 1 0 R >>\n", len(objects)+1)
	body.WriteString("startxref\n")
	fmt.Fprintf(&body, "%d\n", xrefStart)
	body.WriteString("%%EOF")
	return body.Bytes()
}

func pdfEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`, "\r", " ", "\n", " ")
	return r.Replace(s)
}

// truncate hard-cuts s at max characters and marks the cut with an ellipsis;
// values at or under the budget pass through untouched. Keeps the fixed
// page-width layout from overflowing.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
