package ecb

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/etnz/nummi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `Date, USD, JPY, RUB, GBP,
14 October 2026, 1.25, 160.00, N/A, 0.8,
`

func rates(cs []nummi.Currency) map[string]string {
	m := make(map[string]string)
	for _, c := range cs {
		m[string(c.Code)] = c.ToEUR.String()
	}
	return m
}

func TestParseCSV(t *testing.T) {
	currencies, err := ParseCSV(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"usd": "0.8",
		"jpy": "0.00625",
		"gbp": "1.25",
	}, rates(currencies))
}

func TestParseCSVErrors(t *testing.T) {
	for _, content := range []string{
		"",
		"Date, USD\n",
		"Date, USD\n14 October 2026, abc\n",
		"Date, USD\n14 October 2026, 0\n",
		"Date, EURO\n14 October 2026, 1.0\n",
	} {
		_, err := ParseCSV(strings.NewReader(content))
		assert.Error(t, err, "ParseCSV(%q)", content)
	}
}

func archive(t *testing.T, name, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestFetch(t *testing.T) {
	body := archive(t, csvName, sample)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer server.Close()

	f := &Fetcher{Client: server.Client(), URL: server.URL}
	currencies, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, currencies, 3)
}

func TestFetchErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	f := &Fetcher{Client: server.Client(), URL: server.URL}
	_, err := f.Fetch(context.Background())
	assert.ErrorContains(t, err, "404")

	_, err = Decode(archive(t, "other.csv", sample))
	assert.Error(t, err, "archive without eurofxref.csv")

	_, err = Decode([]byte("not a zip"))
	assert.Error(t, err)
}
