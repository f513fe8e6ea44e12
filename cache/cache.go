// Package cache persists currency rates on disk, with an age based staleness policy.
//
// The cache is a single text file, one "<code> <to_eur>" line per currency.
// EUR is never stored, it is synthesized on Load with a rate of 1.
package cache

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/etnz/nummi"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// FileName is the name of the rates cache file in the cache directory.
const FileName = "currencies"

// DefaultMaxAge is the age after which the cached rates are refreshed.
const DefaultMaxAge = 24 * time.Hour

// FormatError is returned when a line of the cache file is malformed.
type FormatError struct {
	Line int
	Text string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid rate cache line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// IsStale reports whether the file at path is missing, or was last modified more than maxAge ago.
func IsStale(path string, maxAge time.Duration) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return time.Since(info.ModTime()) > maxAge, nil
}

// Encode writes currencies in the cache format. EUR is skipped.
func Encode(w io.Writer, currencies []nummi.Currency) error {
	for _, c := range currencies {
		if c.Code == nummi.EUR {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", c.Code, c.ToEUR); err != nil {
			return err
		}
	}
	return nil
}

// Refresh replaces the cache file at path with currencies, creating its directory if needed.
//
// The content is written to a temporary file in the same directory, then renamed
// over path, so that readers see either the old or the new content.
func Refresh(path string, currencies []nummi.Currency) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create cache directory %q: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("cannot create cache file: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	w := bufio.NewWriter(f)
	if err := Encode(w, currencies); err != nil {
		return fmt.Errorf("cannot write cache file %q: %w", f.Name(), err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("cannot write cache file %q: %w", f.Name(), err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("cannot sync cache file %q: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot close cache file %q: %w", f.Name(), err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("cannot replace cache file %q: %w", path, err)
	}
	return nil
}

// Decode reads currencies in the cache format, and appends EUR unless it is already there.
func Decode(r io.Reader) ([]nummi.Currency, error) {
	var currencies []nummi.Currency
	hasEUR := false
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		txt := scanner.Text()
		if strings.TrimSpace(txt) == "" {
			continue
		}
		name, rate, ok := strings.Cut(txt, " ")
		if !ok {
			return nil, &FormatError{Line: i, Text: txt, Err: errors.New("missing rate")}
		}
		code, err := nummi.ParseCode(name)
		if err != nil {
			return nil, &FormatError{Line: i, Text: txt, Err: err}
		}
		toEUR, err := nummi.ParseAmount(rate)
		if err != nil {
			return nil, &FormatError{Line: i, Text: txt, Err: err}
		}
		hasEUR = hasEUR || code == nummi.EUR
		currencies = append(currencies, nummi.Currency{Code: code, ToEUR: toEUR})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !hasEUR {
		currencies = append(currencies, nummi.Currency{Code: nummi.EUR, ToEUR: nummi.A(1)})
	}
	return currencies, nil
}

// Load reads the cache file at path.
func Load(path string) ([]nummi.Currency, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	currencies, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return currencies, nil
}

// GetOrRefresh returns the cached currencies at path, fetching fresh ones first
// if force is set, or the cache is older than maxAge.
//
// If the fetch fails the cache file is left untouched and the error is returned.
func GetOrRefresh(ctx context.Context, path string, force bool, maxAge time.Duration, fetch Fetcher) ([]nummi.Currency, error) {
	c := Cache{Path: path, MaxAge: maxAge}
	return c.Get(ctx, force, fetch)
}

// Cache is a rate cache file with its staleness policy.
type Cache struct {
	Path   string
	MaxAge time.Duration
	Logger log.Logger // optional
}

// New returns the Cache stored in dir, with the DefaultMaxAge.
func New(dir string, logger log.Logger) *Cache {
	return &Cache{
		Path:   filepath.Join(dir, FileName),
		MaxAge: DefaultMaxAge,
		Logger: logger,
	}
}

func (c *Cache) logger() log.Logger {
	if c.Logger == nil {
		return log.NewNopLogger()
	}
	return c.Logger
}

// Stale reports whether the cache must be refreshed.
func (c *Cache) Stale() (bool, error) { return IsStale(c.Path, c.MaxAge) }

// Refresh replaces the cache content with currencies.
func (c *Cache) Refresh(currencies []nummi.Currency) error { return Refresh(c.Path, currencies) }

// Load reads the cached currencies.
func (c *Cache) Load() ([]nummi.Currency, error) { return Load(c.Path) }

// Get returns the cached currencies, refreshing them with fetch first if forced or stale.
func (c *Cache) Get(ctx context.Context, force bool, fetch Fetcher) ([]nummi.Currency, error) {
	stale := force
	if !stale {
		var err error
		if stale, err = c.Stale(); err != nil {
			return nil, fmt.Errorf("cannot check rate cache: %w", err)
		}
	}
	if stale {
		level.Debug(c.logger()).Log("msg", "refreshing rate cache", "path", c.Path, "forced", force)
		currencies, err := fetch.Fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("cannot fetch currency rates: %w", err)
		}
		if err := c.Refresh(currencies); err != nil {
			return nil, err
		}
		level.Info(c.logger()).Log("msg", "rate cache refreshed", "path", c.Path, "currencies", len(currencies))
	}
	return c.Load()
}
