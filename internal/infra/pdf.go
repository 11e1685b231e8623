package infra

// pdf.go — Server-side remito generation using go-pdf/fpdf.
// A remito is the printable delivery receipt for a salida: two half-page
// copies on one A4 sheet — "ARCHIVO" stays filed in the pañol, "ENTREGA"
// travels with the goods.

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// RemitoLinea is one dispatched line item on the receipt.
type RemitoLinea struct {
	Producto string
	Unidad   string
	Cantidad int
}

// Remito carries everything the layout needs; the fecha shown is the
// authoritative server date returned by the salida transaction.
type Remito struct {
	Numero      uint
	Destino     string
	Responsable string
	Fecha       time.Time
	Lineas      []RemitoLinea
}

// GenerarRemitoPDF renders the two-copy receipt and returns the PDF bytes.
func GenerarRemitoPDF(r *Remito) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 10, 12)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	halfH := pageH / 2

	drawCopy(pdf, r, "ARCHIVO", 10)
	// Cut line between the two copies
	pdf.SetDashPattern([]float64{2, 2}, 0)
	pdf.Line(6, halfH, pageW-6, halfH)
	pdf.SetDashPattern([]float64{}, 0)
	drawCopy(pdf, r, "ENTREGA", halfH+6)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render remito %d: %w", r.Numero, err)
	}
	return buf.Bytes(), nil
}

func drawCopy(pdf *fpdf.Fpdf, r *Remito, leyenda string, top float64) {
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	pdf.SetY(top)

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW*0.7, 7, "Pañol — Remito de entrega", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW*0.3, 7, leyenda, "1", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW/2, 5, fmt.Sprintf("Remito N° %06d", r.Numero), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, "Fecha: "+r.Fecha.Format("02-01-2006"), "", 1, "R", false, 0, "")
	pdf.CellFormat(contentW/2, 5, "Destino: "+r.Destino, "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, "Responsable: "+r.Responsable, "", 1, "R", false, 0, "")
	pdf.Ln(2)

	// ── Item table ────────────────────────────────────────────────────────────
	col1 := contentW * 0.60 // producto
	col2 := contentW * 0.20 // unidad
	col3 := contentW * 0.20 // cantidad

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Unidad", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Cantidad", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, l := range r.Lineas {
		nombre := l.Producto
		if len(nombre) > 48 {
			nombre = nombre[:47] + "…"
		}
		pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, l.Unidad, "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, fmt.Sprintf("%d", l.Cantidad), "", 1, "R", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW/2, 5, "Firma responsable: ______________________", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, "Firma pañol: ______________________", "", 1, "R", false, 0, "")
}
