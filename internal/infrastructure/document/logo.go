package document

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Logo imagen del emisor embebida en el documento.
type Logo struct {
	MIMEType string
	Data     []byte
}

// DataURL codifica el logo como data URI base64.
func (l *Logo) DataURL() string {
	return "data:" + l.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(l.Data)
}

// MIMETypeFor deduce el tipo por extensión: .svg y .png explícitos, el resto se trata como JPEG.
func MIMETypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}

// FileLogoLoader lee logos desde disco, relativos a BaseDir cuando la ruta no es absoluta.
type FileLogoLoader struct {
	BaseDir string
}

// Load lee el archivo del logo.
func (l FileLogoLoader) Load(path string) (*Logo, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("ruta de logo vacía")
	}
	full := path
	if !filepath.IsAbs(full) && l.BaseDir != "" {
		full = filepath.Join(l.BaseDir, path)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("leer logo: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("leer logo: %s está vacío", full)
	}
	return &Logo{MIMEType: MIMETypeFor(full), Data: data}, nil
}
