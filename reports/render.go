package reports

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"radiotrack/models"
)

// Palette lifted from the UI condition colors: blue headers, whitesmoke
// zebra rows.
var (
	colHeaderBlue = [3]float64{0.10, 0.46, 0.82} // #1976D2
	colAccentBlue = [3]float64{0.13, 0.59, 0.95} // #2196F3
	colRowShade   = [3]float64{0.96, 0.96, 0.96} // #F5F5F5
	colValueBlue  = [3]float64{0.89, 0.95, 0.99} // #E3F2FD
	colHeaderGray = [3]float64{0.45, 0.45, 0.45}
	colText       = [3]float64{0.13, 0.13, 0.13}
	colMuted      = [3]float64{0.42, 0.45, 0.48}
)

var (
	flatHeaders = []string{"Item Name", "Category", "Location", "Condition", "Notes"}
	flatWidths  = []float64{130, 88, 88, 62, 131}

	groupedHeaders = []string{"Item Name", "Category", "Condition", "Notes"}
	groupedWidths  = []float64{145, 100, 70, 184}
)

// Character budgets keep cell text inside the fixed column grid.
const (
	flatNameMax     = 50
	flatCategoryMax = 30
	flatLocationMax = 30
	flatNotesMax    = 50

	groupNameMax     = 45
	groupCategoryMax = 25
	groupNotesMax    = 40
)

// RenderPDF lays the report out as a paginated PDF document. The error
// return is the render result; callers choose between surfacing it and
// serving FallbackPDF. Layout panics are recovered into the error so a bad
// record can never take the request down.
func RenderPDF(r *Report) (out []byte, err error) {
	if r == nil {
		return nil, errors.New("reports: nil report")
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("reports: render %s report: %v", r.Kind, p)
		}
	}()

	d := newPDFDoc()
	renderHeader(d, r.Title, r.GeneratedAt)

	if r.Kind == KindComplete && r.Grouped {
		renderSummary(d, r)
		renderConditionCounts(d, r.Items)
		renderLocationSections(d, r)
	} else {
		renderFlatTable(d, r.Items)
	}
	return d.bytes(), nil
}

// FallbackPDF builds the minimal single-page document served when a report
// cannot be rendered. It cannot fail.
func FallbackPDF(title string, generatedAt time.Time) []byte {
	d := newPDFDoc()
	renderHeader(d, title, generatedAt)
	d.y -= 24
	d.text(marginX, d.y, fontRegular, 11, colText[0], colText[1], colText[2],
		"The report could not be generated at this time.")
	d.y -= 16
	d.text(marginX, d.y, fontRegular, 11, colText[0], colText[1], colText[2],
		"Please try again or contact the system administrator.")
	return d.bytes()
}

func renderHeader(d *pdfDoc, title string, generatedAt time.Time) {
	d.textCentered(d.y, fontBold, 20, colText[0], colText[1], colText[2], title)
	d.y -= 20
	d.textCentered(d.y, fontRegular, 9, colMuted[0], colMuted[1], colMuted[2],
		"Generated on "+generatedAt.Format("January 2, 2006 at 15:04"))
	d.y -= 26
}

func subtitle(d *pdfDoc, s string) {
	d.ensure(48)
	d.y -= 14
	d.text(marginX, d.y, fontBold, 13, colAccentBlue[0], colAccentBlue[1], colAccentBlue[2], s)
	d.y -= 10
}

// drawTable renders a zebra-striped table, breaking pages as needed and
// re-drawing the header row after each break. Zero rows leaves just the
// header band.
func drawTable(d *pdfDoc, headers []string, widths []float64, rows [][]string, headerColor [3]float64) {
	const (
		headerH = 18.0
		rowH    = 16.0
	)
	drawHead := func() {
		d.y -= headerH
		d.fillRect(marginX, d.y, contentW, headerH, headerColor[0], headerColor[1], headerColor[2])
		x := marginX + 6
		for i, h := range headers {
			d.text(x, d.y+5.5, fontBold, 8.5, 1, 1, 1, h)
			x += widths[i]
		}
	}

	d.ensure(headerH + rowH)
	drawHead()
	for idx, row := range rows {
		if d.ensure(rowH) {
			drawHead()
		}
		d.y -= rowH
		if idx%2 == 0 {
			d.fillRect(marginX, d.y, contentW, rowH, colRowShade[0], colRowShade[1], colRowShade[2])
		}
		x := marginX + 6
		for i, cell := range row {
			d.text(x, d.y+4.5, fontRegular, 8, colText[0], colText[1], colText[2], cell)
			x += widths[i]
		}
	}
}

func renderFlatTable(d *pdfDoc, items []models.Item) {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			truncate(it.Name, flatNameMax),
			truncate(it.Category, flatCategoryMax),
			truncate(it.Location, flatLocationMax),
			it.Condition,
			truncate(it.Notes, flatNotesMax),
		})
	}
	d.y -= 4
	drawTable(d, flatHeaders, flatWidths, rows, colHeaderBlue)
}

func renderSummary(d *pdfDoc, r *Report) {
	subtitle(d, "Summary Statistics")

	categories := map[string]struct{}{}
	locations := map[string]struct{}{}
	for _, it := range r.Items {
		categories[it.Category] = struct{}{}
		locations[it.Location] = struct{}{}
	}

	const cellH = 20.0
	colW := contentW / 3
	heads := []string{"Total Items", "Total Categories", "Total Locations"}
	vals := []string{
		fmt.Sprintf("%d", r.Total),
		fmt.Sprintf("%d", len(categories)),
		fmt.Sprintf("%d", len(locations)),
	}

	d.ensure(2 * cellH)
	d.y -= cellH
	d.fillRect(marginX, d.y, contentW, cellH, colAccentBlue[0], colAccentBlue[1], colAccentBlue[2])
	for i, h := range heads {
		d.text(marginX+float64(i)*colW+8, d.y+6, fontBold, 10, 1, 1, 1, h)
	}
	d.y -= cellH
	d.fillRect(marginX, d.y, contentW, cellH, colValueBlue[0], colValueBlue[1], colValueBlue[2])
	for i, v := range vals {
		d.text(marginX+float64(i)*colW+8, d.y+6, fontRegular, 10, colText[0], colText[1], colText[2], v)
	}
	d.y -= 8
}

func renderConditionCounts(d *pdfDoc, items []models.Item) {
	subtitle(d, "Items by Condition")

	counts := map[string]int{}
	for _, it := range items {
		counts[it.Condition]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, fmt.Sprintf("%d", counts[name])})
	}
	drawTable(d, []string{"Condition", "Count"}, []float64{contentW / 2, contentW / 2}, rows, colHeaderGray)
	d.y -= 8
}

func renderLocationSections(d *pdfDoc, r *Report) {
	subtitle(d, "Inventory by Location")

	byLocation := map[string][]models.Item{}
	for _, it := range r.Items {
		byLocation[it.Location] = append(byLocation[it.Location], it)
	}

	for _, loc := range r.Locations {
		items := byLocation[loc]

		d.ensure(64)
		d.y -= 16
		d.text(marginX, d.y, fontBold, 12, colHeaderBlue[0], colHeaderBlue[1], colHeaderBlue[2],
			fmt.Sprintf("%s (%d items)", loc, len(items)))
		d.y -= 8

		if len(items) == 0 {
			d.y -= 12
			d.text(marginX, d.y, fontRegular, 9.5, colMuted[0], colMuted[1], colMuted[2],
				"No items in this location")
			d.y -= 4
			continue
		}

		rows := make([][]string, 0, len(items))
		for _, it := range items {
			rows = append(rows, []string{
				truncate(it.Name, groupNameMax),
				truncate(it.Category, groupCategoryMax),
				it.Condition,
				truncate(it.Notes, groupNotesMax),
			})
		}
		drawTable(d, groupedHeaders, groupedWidths, rows, colHeaderBlue)
		d.y -= 6
	}
}
