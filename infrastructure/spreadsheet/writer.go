package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/growth-dashboard-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	DefaultSheetName = "Dados Tratados"
	headerFill       = "4F81BD"
	headerFontColor  = "FFFFFF"
	widthPadding     = 2
)

var ErrFileLocked = errors.New("arquivo de saída em uso ou sem permissão de escrita")

type Writer struct {
	sheetName string
}

func NewWriter(sheetName string) *Writer {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}
	return &Writer{sheetName: sheetName}
}

func (w *Writer) SheetName() string {
	return w.sheetName
}

// WriteFile grava a planilha em path, substituindo um arquivo existente
func (w *Writer) WriteFile(table domain.Table, path string) error {
	f, err := w.build(table)
	if err != nil {
		return err
	}
	defer f.Close()

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("erro ao criar diretório %s: %w", dir, err)
		}
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return classifyFileError(path, err)
	}

	if err := f.SaveAs(path); err != nil {
		return classifyFileError(path, err)
	}

	return nil
}

// Write envia a planilha para out, usado no download pela API
func (w *Writer) Write(table domain.Table, out io.Writer) error {
	f, err := w.build(table)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("erro ao escrever planilha: %w", err)
	}
	return nil
}

func (w *Writer) build(table domain.Table) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), w.sheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("erro ao nomear aba: %w", err)
	}

	widths := make([]int, len(table.Columns))

	for col, name := range table.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue(w.sheetName, cell, name); err != nil {
			f.Close()
			return nil, err
		}
		widths[col] = utf8.RuneCountInString(name)
	}

	for r, row := range table.Rows {
		for col, value := range row {
			if col >= len(table.Columns) {
				break
			}
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				f.Close()
				return nil, err
			}
			v := cellValue(value)
			if err := f.SetCellValue(w.sheetName, cell, v); err != nil {
				f.Close()
				return nil, err
			}
			if n := utf8.RuneCountInString(displayText(v)); n > widths[col] {
				widths[col] = n
			}
		}
	}

	if len(table.Columns) > 0 {
		if err := w.styleHeader(f, len(table.Columns)); err != nil {
			f.Close()
			return nil, err
		}
	}

	for col, width := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetColWidth(w.sheetName, name, name, float64(width+widthPadding)); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

func (w *Writer) styleHeader(f *excelize.File, columns int) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: headerFontColor},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("erro ao criar estilo do cabeçalho: %w", err)
	}

	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return err
	}

	return f.SetCellStyle(w.sheetName, "A1", last, style)
}

func cellValue(value any) any {
	switch v := value.(type) {
	case decimal.Decimal:
		return v.InexactFloat64()
	case decimal.NullDecimal:
		if !v.Valid {
			return nil
		}
		return v.Decimal.InexactFloat64()
	case []byte:
		return string(v)
	default:
		return v
	}
}

func displayText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 {
			return v.Format(time.DateOnly)
		}
		return v.Format(time.DateTime)
	default:
		return fmt.Sprint(v)
	}
}

func classifyFileError(path string, err error) error {
	if errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %s", ErrFileLocked, path)
	}
	return fmt.Errorf("erro ao salvar %s: %w", path, err)
}
