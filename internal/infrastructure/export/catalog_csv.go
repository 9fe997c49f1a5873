package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/techstore-pos/internal/application/dto"
)

// ReadCatalogCSV lee una planilla de productos con cabecera
// nombre,categoria,precio,stock[,stock_minimo[,descripcion]] y la convierte en solicitudes de alta.
// Las filas inválidas se reportan con su número de línea y se omiten.
func ReadCatalogCSV(r io.Reader, charset string) ([]dto.CreateProductRequest, []error, error) {
	cs, err := normalizeCharset(charset)
	if err != nil {
		return nil, nil, err
	}
	if cs == CharsetLatin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("catalog csv: cabecera: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, utf8BOM)))] = i
	}
	for _, required := range []string{"nombre", "categoria", "precio", "stock"} {
		if _, ok := cols[required]; !ok {
			return nil, nil, fmt.Errorf("catalog csv: falta la columna %q", required)
		}
	}

	var out []dto.CreateProductRequest
	var rowErrs []error
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, nil, fmt.Errorf("catalog csv: línea %d: %w", line, err)
		}
		req, err := parseCatalogRecord(record, cols)
		if err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("línea %d: %w", line, err))
			continue
		}
		out = append(out, req)
	}
	return out, rowErrs, nil
}

func parseCatalogRecord(record []string, cols map[string]int) (dto.CreateProductRequest, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	price, err := decimal.NewFromString(field("precio"))
	if err != nil {
		return dto.CreateProductRequest{}, fmt.Errorf("precio inválido %q", field("precio"))
	}
	stock, err := strconv.Atoi(field("stock"))
	if err != nil {
		return dto.CreateProductRequest{}, fmt.Errorf("stock inválido %q", field("stock"))
	}
	req := dto.CreateProductRequest{
		Name:        field("nombre"),
		Category:    field("categoria"),
		Description: field("descripcion"),
		Price:       price,
		Stock:       stock,
	}
	if s := field("stock_minimo"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return dto.CreateProductRequest{}, fmt.Errorf("stock_minimo inválido %q", s)
		}
		req.LowStockThreshold = &n
	}
	return req, nil
}
