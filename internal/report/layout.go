package report

import (
	"time"

	"github.com/go-pdf/fpdf"
)

// Page geometry in points, measured from the top-left corner.
const (
	marginLeft     = 50.0
	textTop        = 50.0
	lineSpacing    = 20.0
	textBottom     = 100.0 // no text line starts closer than this to the bottom
	imageTop       = 50.0
	imageWidth     = 400.0
	imageHeight    = 200.0
	imagePitch     = 230.0
	imageMinRemain = 250.0 // image height plus bottom margin
	headingSize    = 18.0
	bodySize       = 12.0
)

// document tracks a vertical cursor over an fpdf A4 portrait page.
type document struct {
	pdf    *fpdf.Fpdf
	height float64
	y      float64
}

func newDocument(opts Options, created time.Time) *document {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(opts.Title, true)
	pdf.SetCreator("fueltrack", true)
	if opts.RunID != "" {
		pdf.SetKeywords("run:"+opts.RunID, true)
	}
	pdf.SetCreationDate(created)

	pdf.AddPage()
	_, height := pdf.GetPageSize()
	pdf.SetFont("Helvetica", "", bodySize)

	return &document{
		pdf:    pdf,
		height: height,
		y:      textTop,
	}
}

func (d *document) heading(text string) {
	d.pdf.SetFont("Helvetica", "B", headingSize)
	d.line(text)
	d.pdf.SetFont("Helvetica", "", bodySize)
}

// line writes text at the cursor, breaking the page first when the cursor
// has reached the bottom margin.
func (d *document) line(text string) {
	if d.y > d.height-textBottom {
		d.pdf.AddPage()
		d.y = textTop
	}
	if text != "" {
		d.pdf.Text(marginLeft, d.y, text)
	}
	d.y += lineSpacing
}

// startImages moves to a fresh page for the charts.
func (d *document) startImages() {
	d.pdf.AddPage()
	d.y = imageTop
}

func (d *document) image(path string) {
	if d.y > d.height-imageMinRemain {
		d.pdf.AddPage()
		d.y = imageTop
	}
	d.pdf.ImageOptions(path, marginLeft, d.y, imageWidth, imageHeight, false,
		fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
	d.y += imagePitch
}

func (d *document) pages() int {
	return d.pdf.PageCount()
}

func (d *document) save(path string) error {
	if err := d.pdf.Error(); err != nil {
		return err
	}
	return d.pdf.OutputFileAndClose(path)
}
