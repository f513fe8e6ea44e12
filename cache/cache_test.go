package cache

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/etnz/nummi"
	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mock counts fetches, and returns its currencies or err.
type mock struct {
	count      int
	currencies []nummi.Currency
	err        error
}

func (m *mock) Fetch(_ context.Context) ([]nummi.Currency, error) {
	m.count++
	return m.currencies, m.err
}

func cur(code, rate string) nummi.Currency {
	return nummi.Currency{Code: nummi.Code(code), ToEUR: nummi.MustParseAmount(rate)}
}

func codes(cs []nummi.Currency) []string {
	nummi.SortCurrencies(cs)
	var s []string
	for _, c := range cs {
		s = append(s, c.String())
	}
	return s
}

func TestIsStale(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	stale, err := IsStale(path, DefaultMaxAge)
	require.NoError(t, err)
	assert.True(t, stale, "missing file must be stale")

	require.NoError(t, os.WriteFile(path, []byte("usd 0.9\n"), 0o644))
	stale, err = IsStale(path, DefaultMaxAge)
	require.NoError(t, err)
	assert.False(t, stale, "fresh file must not be stale")

	old := time.Now().Add(-DefaultMaxAge - time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))
	stale, err = IsStale(path, DefaultMaxAge)
	require.NoError(t, err)
	assert.True(t, stale, "file older than max age must be stale")
}

func TestRefreshAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nummi", FileName)

	err := Refresh(path, []nummi.Currency{cur("usd", "0.9227"), cur("eur", "1"), cur("gbp", "1.1348")})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "usd 0.9227\ngbp 1.1348\n", string(content), "eur must not be persisted")

	currencies, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"eur 1", "gbp 1.1348", "usd 0.9227"}, codes(currencies))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary file must be left behind")
}

func TestDecode(t *testing.T) {
	currencies, err := Decode(strings.NewReader("aud 1.7266\nbgn 1.9558\n\nusd 1.0837\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"aud 1.7266", "bgn 1.9558", "eur 1", "usd 1.0837"}, codes(currencies))

	currencies, err = Decode(strings.NewReader("eur 1\n"))
	require.NoError(t, err)
	assert.Len(t, currencies, 1, "eur must not be duplicated")
}

func TestDecodeErrors(t *testing.T) {
	for _, content := range []string{"usd\n", "US 1.0\n", "usd one\n", "usd 1.0 2.0\n"} {
		_, err := Decode(strings.NewReader(content))
		var ferr *FormatError
		assert.True(t, errors.As(err, &ferr), "Decode(%q) error = %v want a *FormatError", content, err)
	}
}

func TestGetOrRefresh(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), FileName)
	fetcher := &mock{currencies: []nummi.Currency{cur("usd", "0.9")}}

	currencies, err := GetOrRefresh(ctx, path, false, DefaultMaxAge, fetcher)
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.count, "missing cache must be fetched")
	assert.Equal(t, []string{"eur 1", "usd 0.9"}, codes(currencies))

	_, err = GetOrRefresh(ctx, path, false, DefaultMaxAge, fetcher)
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.count, "fresh cache must not be fetched")

	fetcher.currencies = []nummi.Currency{cur("usd", "0.8")}
	currencies, err = GetOrRefresh(ctx, path, true, DefaultMaxAge, fetcher)
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.count, "forced refresh must fetch")
	assert.Equal(t, []string{"eur 1", "usd 0.8"}, codes(currencies))
}

func TestGetFetchFailureKeepsCache(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Refresh(path, []nummi.Currency{cur("usd", "0.9")}))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	fetcher := &mock{err: errors.New("network is down")}
	_, err := GetOrRefresh(ctx, path, false, DefaultMaxAge, fetcher)
	require.Error(t, err)
	assert.Equal(t, 1, fetcher.count)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "usd 0.9\n", string(content), "a failed refresh must keep the cached rates")
}

func TestCacheLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewLogfmtLogger(&buf)
	c := New(t.TempDir(), logger)
	assert.Equal(t, DefaultMaxAge, c.MaxAge)

	fetcher := NewLoggingFetcher(logger, FetcherFunc(func(context.Context) ([]nummi.Currency, error) {
		return []nummi.Currency{cur("chf", "1.05")}, nil
	}))
	currencies, err := c.Get(context.Background(), false, fetcher)
	require.NoError(t, err)
	assert.Equal(t, []string{"chf 1.05", "eur 1"}, codes(currencies))
	assert.Contains(t, buf.String(), "method=fetch")
	assert.Contains(t, buf.String(), "rate cache refreshed")
}
