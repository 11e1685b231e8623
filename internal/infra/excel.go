package infra

// excel.go — XLSX export of the consolidated stock report using excelize.

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// StockRow is one line of the consolidated stock report.
type StockRow struct {
	ProductoID    uint
	Nombre        string
	Categoria     string
	Unidad        string
	Tipo          string
	Minimo        int
	EntradasTotal int
	SalidasTotal  int
	Stock         int
}

// GenerarStockExcel builds a one-sheet workbook from the report rows.
func GenerarStockExcel(rows []StockRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"id", "nombre", "categoria", "unidad", "tipo",
		"minimo", "entradas", "salidas", "stock",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("excel: header: %w", err)
	}

	for i, r := range rows {
		row := []interface{}{
			r.ProductoID, r.Nombre, r.Categoria, r.Unidad, r.Tipo,
			r.Minimo, r.EntradasTotal, r.SalidasTotal, r.Stock,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("excel: row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: write: %w", err)
	}
	return buf.Bytes(), nil
}
