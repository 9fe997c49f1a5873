// Package export genera las planillas del inventario (XLSX y CSV) y lee el catálogo en CSV.
// Excel en Windows abre mejor los CSV en Latin-1; por eso el charset es configurable.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/techstore-pos/internal/application/dto"
	"github.com/jhoicas/techstore-pos/internal/application/reporting"
)

// Charsets soportados.
const (
	CharsetUTF8   = "utf-8"
	CharsetLatin1 = "latin1"
)

const utf8BOM = "\uFEFF"

var inventoryHeader = []string{"id", "nombre", "categoria", "precio", "stock", "stock_minimo", "estado"}

var _ reporting.InventorySheetRenderer = (*InventoryCSV)(nil)

// InventoryCSV implementa reporting.InventorySheetRenderer como exportación secundaria.
type InventoryCSV struct {
	charset string
}

// NewInventoryCSV construye el exportador. charset vacío = UTF-8.
func NewInventoryCSV(charset string) (*InventoryCSV, error) {
	cs, err := normalizeCharset(charset)
	if err != nil {
		return nil, err
	}
	return &InventoryCSV{charset: cs}, nil
}

// RenderInventory escribe una fila por producto activo, con su estado de stock.
func (e *InventoryCSV) RenderInventory(report *dto.InventoryReportDTO) ([]byte, error) {
	var buf bytes.Buffer
	var out io.Writer = &buf
	var closer io.Closer
	if e.charset == CharsetLatin1 {
		tw := transform.NewWriter(&buf, charmap.ISO8859_1.NewEncoder())
		out, closer = tw, tw
	} else {
		// BOM para que Excel detecte UTF-8
		buf.WriteString(utf8BOM)
	}

	w := csv.NewWriter(out)
	if err := w.Write(inventoryHeader); err != nil {
		return nil, fmt.Errorf("export: cabecera: %w", err)
	}
	for _, p := range report.Products {
		status := "OK"
		if p.LowStock {
			status = "STOCK BAJO"
		}
		record := []string{
			p.ID,
			p.Name,
			p.Category,
			p.Price.StringFixed(2),
			strconv.Itoa(p.Stock),
			strconv.Itoa(p.LowStockThreshold),
			status,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("export: producto %s: %w", p.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: flush: %w", err)
	}
	if closer != nil {
		if err := closer.Close(); err != nil {
			return nil, fmt.Errorf("export: codificar %s: %w", e.charset, err)
		}
	}
	return buf.Bytes(), nil
}

func normalizeCharset(charset string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return CharsetUTF8, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return CharsetLatin1, nil
	default:
		return "", fmt.Errorf("export: charset no soportado %q", charset)
	}
}
