// Package frankfurter fetches EUR exchange rates from the Frankfurter JSON API.
package frankfurter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/nummi"
	"github.com/shopspring/decimal"
)

/*
	{
	    "amount": 1.0,
	    "base": "EUR",
	    "date": "2026-10-13",
	    "rates": {
	        "AUD": 1.7266,
	        "USD": 1.0837
	    }
	}
*/

// URL returns the latest rates with EUR as the base currency.
const URL = "https://api.frankfurter.app/latest?from=EUR"

// ratesPath locates the rates object in the response.
const ratesPath = "$.rates"

// Precision is the number of fractional digits kept when inverting a rate.
const Precision = 10

// Fetcher downloads the latest rates. The zero value is ready to use.
type Fetcher struct {
	Client *http.Client // defaults to http.DefaultClient
	URL    string       // defaults to URL
}

// Fetch returns the value in EUR of one unit of every currency published.
func (f *Fetcher) Fetch(ctx context.Context) ([]nummi.Currency, error) {
	client, addr := f.Client, f.URL
	if client == nil {
		client = http.DefaultClient
	}
	if addr == "" {
		addr = URL
	}
	jobj, err := jwget(ctx, client, addr)
	if err != nil {
		return nil, err
	}
	return Decode(jobj)
}

// jwget performs an HTTP GET request and decodes the JSON response, keeping numbers exact.
func jwget(ctx context.Context, client *http.Client, addr string) (any, error) {
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
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, err
	}
	dec := json.NewDecoder(&buf)
	dec.UseNumber()
	var jobj any
	if err := dec.Decode(&jobj); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}
	return jobj, nil
}

// Decode extracts the rates from a decoded response.
// Rates are published in units of currency per EUR, they are inverted.
func Decode(jobj any) ([]nummi.Currency, error) {
	jval, err := jsonpath.Get(ratesPath, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", ratesPath, err)
	}
	jrates, ok := jval.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("error parsing %q: not an object: %v", ratesPath, jval)
	}

	currencies := make([]nummi.Currency, 0, len(jrates))
	for name, v := range jrates {
		code, err := nummi.ParseCode(strings.ToLower(name))
		if err != nil {
			return nil, err
		}
		n, ok := v.(json.Number)
		if !ok {
			return nil, fmt.Errorf("invalid rate for %s: not a number: %v", code, v)
		}
		rate, err := decimal.NewFromString(n.String())
		if err != nil {
			return nil, fmt.Errorf("invalid rate for %s: %w", code, err)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("invalid rate for %s: %v", code, rate)
		}
		currencies = append(currencies, nummi.Currency{Code: code, ToEUR: nummi.A(rate).Inverse(Precision)})
	}
	nummi.SortCurrencies(currencies)
	return currencies, nil
}
