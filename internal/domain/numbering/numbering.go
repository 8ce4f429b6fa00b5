// Package numbering genera números de factura legibles del tipo INV-001.
// El sufijo numérico se rellena con ceros hasta MinWidth y crece sin truncarse (INV-1000).
package numbering

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	Prefix   = "INV-"
	MinWidth = 3
)

// Format devuelve el número de factura para el consecutivo n.
func Format(n int64) string {
	return fmt.Sprintf("%s%0*d", Prefix, MinWidth, n)
}

// ParseSuffix extrae el consecutivo de un número INV-NNN.
// Los valores con otro prefijo o sufijo no numérico se reportan como no válidos.
func ParseSuffix(number string) (int64, bool) {
	rest, ok := strings.CutPrefix(number, Prefix)
	if !ok || rest == "" {
		return 0, false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Next calcula el siguiente número a partir de los existentes: máximo sufijo + 1,
// o INV-001 si no hay ninguno válido. Función pura; la unicidad la garantiza el almacén.
// Un sufijo igual a math.MaxInt64 no tiene sucesor y se ignora.
func Next(existing []string) string {
	var max int64
	for _, number := range existing {
		if n, ok := ParseSuffix(number); ok && n < math.MaxInt64 && n > max {
			max = n
		}
	}
	return Format(max + 1)
}
