// Package ecb fetches the daily euro foreign exchange reference rates published by the European Central Bank.
package ecb

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/etnz/nummi"
)

// URL is the address of the latest reference rates archive.
const URL = "https://www.ecb.europa.eu/stats/eurofxref/eurofxref.zip"

// csvName is the name of the rates file in the archive.
const csvName = "eurofxref.csv"

// Precision is the number of fractional digits kept when inverting a reference rate.
const Precision = 10

// Fetcher downloads the ECB reference rates. The zero value is ready to use.
type Fetcher struct {
	Client *http.Client // defaults to http.DefaultClient
	URL    string       // defaults to URL
}

// Fetch returns the latest reference rates.
func (f *Fetcher) Fetch(ctx context.Context) ([]nummi.Currency, error) {
	client, addr := f.Client, f.URL
	if client == nil {
		client = http.DefaultClient
	}
	if addr == "" {
		addr = URL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	archive, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot read ECB archive: %w", err)
	}
	return Decode(archive)
}

// Decode reads the rates from the content of the eurofxref.zip archive.
func Decode(archive []byte) ([]nummi.Currency, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("invalid ECB archive: %w", err)
	}
	f, err := zr.Open(csvName)
	if err != nil {
		return nil, fmt.Errorf("invalid ECB archive: %w", err)
	}
	defer f.Close()
	return ParseCSV(f)
}

// ParseCSV reads the rates from the eurofxref.csv file.
//
// The file has a header line of currency codes, and a single line of rates
// expressed in units of currency per EUR; they are inverted to get the EUR
// value of one unit. Currencies without a rate ("N/A") are skipped.
func ParseCSV(r io.Reader) ([]nummi.Currency, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read ECB header: %w", err)
	}
	record, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("no rates in ECB file")
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read ECB rates: %w", err)
	}

	var currencies []nummi.Currency
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if name == "" || name == "date" || i >= len(record) {
			continue
		}
		value := strings.TrimSpace(record[i])
		if value == "" || value == "N/A" {
			continue
		}
		code, err := nummi.ParseCode(name)
		if err != nil {
			return nil, err
		}
		rate, err := nummi.ParseAmount(value)
		if err != nil {
			return nil, fmt.Errorf("invalid rate for %s: %w", code, err)
		}
		if rate.IsZero() {
			return nil, fmt.Errorf("invalid rate for %s: zero", code)
		}
		currencies = append(currencies, nummi.Currency{Code: code, ToEUR: rate.Inverse(Precision)})
	}
	return currencies, nil
}
