package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestParseProducts(t *testing.T) {
	in := "name,default_price,description\n" +
		"Web Development,850.00,Por hora\n" +
		"\n" +
		"Hosting, 250,\n"

	rows, err := parseProducts(strings.NewReader(in), false)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Web Development", rows[0].Name)
	assert.Equal(t, "850", rows[0].DefaultPrice.String())
	assert.Equal(t, "Por hora", *rows[0].Description)
	assert.Equal(t, "Hosting", rows[1].Name)
	assert.Nil(t, rows[1].Description)
}

func TestParseProducts_Latin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String("name,default_price\nDiseño gráfico,1200\n")
	require.NoError(t, err)

	rows, err := parseProducts(bytes.NewReader([]byte(encoded)), true)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Diseño gráfico", rows[0].Name)
}

func TestParseProducts_Errores(t *testing.T) {
	cases := map[string]string{
		"vacío":           "",
		"sin precio":      "name\nHosting\n",
		"precio inválido": "name,default_price\nHosting,abc\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseProducts(strings.NewReader(in), false)
			assert.Error(t, err)
		})
	}
}
