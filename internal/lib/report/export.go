package report

import (
	"fmt"

	"github.com/deppfellow/agro-backend/internal/model"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const colheitasSheet = "Colheitas"

var colheitasHeader = []any{
	"Data", "Safra", "Lavoura", "Silo", "Produto",
	"Quantidade (kg)", "Umidade (%)", "Impureza (%)", "Placa", "Observações",
}

// ColheitasXLSX exports harvest entries as a spreadsheet with a totals row.
func ColheitasXLSX(h Header, colheitas []model.Colheita) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", colheitasSheet); err != nil {
		return nil, errors.Wrap(err, "failed to name sheet")
	}
	_ = f.SetDocProps(&excelize.DocProperties{
		Title:   "Colheitas",
		Creator: h.Empresa,
	})

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DFE8D6"}},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create header style")
	}

	dateFormat := "dd/mm/yyyy"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFormat})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create date style")
	}

	// Built-in format 4 is "#,##0.00"; the viewer's locale picks the separators.
	numberStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create number style")
	}

	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: 4})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create total style")
	}

	if err := f.SetSheetRow(colheitasSheet, "A1", &colheitasHeader); err != nil {
		return nil, errors.Wrap(err, "failed to write header")
	}
	lastCol, _ := excelize.ColumnNumberToName(len(colheitasHeader))
	if err := f.SetCellStyle(colheitasSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, errors.Wrap(err, "failed to style header")
	}

	for i, c := range colheitas {
		row := []any{
			c.Data.Time, c.SafraNome, c.LavouraNome, c.SiloNome, c.ProdutoNome,
			c.Quantidade, optional(c.Umidade), optional(c.Impureza),
			optionalString(c.PlacaVeiculo), optionalString(c.Observacoes),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(colheitasSheet, cell, &row); err != nil {
			return nil, errors.Wrapf(err, "failed to write row %d", i+2)
		}
	}

	last := len(colheitas) + 1
	if len(colheitas) > 0 {
		_ = f.SetCellStyle(colheitasSheet, "A2", fmt.Sprintf("A%d", last), dateStyle)
		_ = f.SetCellStyle(colheitasSheet, "F2", fmt.Sprintf("H%d", last), numberStyle)

		total := last + 1
		_ = f.SetCellValue(colheitasSheet, fmt.Sprintf("E%d", total), "Total")
		if err := f.SetCellFormula(colheitasSheet, fmt.Sprintf("F%d", total), fmt.Sprintf("SUM(F2:F%d)", last)); err != nil {
			return nil, errors.Wrap(err, "failed to write total")
		}
		_ = f.SetCellStyle(colheitasSheet, fmt.Sprintf("E%d", total), fmt.Sprintf("F%d", total), totalStyle)
	}

	_ = f.SetColWidth(colheitasSheet, "A", "A", 12)
	_ = f.SetColWidth(colheitasSheet, "B", "E", 22)
	_ = f.SetColWidth(colheitasSheet, "F", "H", 15)
	_ = f.SetColWidth(colheitasSheet, "I", lastCol, 18)

	if err := f.AutoFilter(colheitasSheet, fmt.Sprintf("A1:%s%d", lastCol, last), nil); err != nil {
		return nil, errors.Wrap(err, "failed to add filter")
	}
	_ = f.SetPanes(colheitasSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "failed to write workbook")
	}
	return buf.Bytes(), nil
}

func optional(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func optionalString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
