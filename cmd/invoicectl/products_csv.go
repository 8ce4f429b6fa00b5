package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/guidefari/invoicing/internal/application/dto"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// parseProducts lee un CSV con cabecera name,default_price[,description].
// Las filas vacías se ignoran; los errores indican el número de fila del archivo.
func parseProducts(r io.Reader, latin1 bool) ([]dto.CreateProductRequest, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("CSV vacío")
	}
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	nameCol, ok := cols["name"]
	if !ok {
		return nil, fmt.Errorf("falta la columna name")
	}
	priceCol, ok := cols["default_price"]
	if !ok {
		return nil, fmt.Errorf("falta la columna default_price")
	}
	descCol, hasDesc := cols["description"]

	var out []dto.CreateProductRequest
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fila %d: %w", line, err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if nameCol >= len(rec) || priceCol >= len(rec) {
			return nil, fmt.Errorf("fila %d: columnas insuficientes", line)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(rec[priceCol]))
		if err != nil {
			return nil, fmt.Errorf("fila %d: precio %q inválido", line, rec[priceCol])
		}
		p := dto.CreateProductRequest{Name: strings.TrimSpace(rec[nameCol]), DefaultPrice: price}
		if hasDesc && descCol < len(rec) {
			if d := strings.TrimSpace(rec[descCol]); d != "" {
				p.Description = &d
			}
		}
		out = append(out, p)
	}
	return out, nil
}
