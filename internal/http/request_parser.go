package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"viagens/internal/core"
)

// maxBodyBytes bounds request bodies; ledger entries and questions are short.
const maxBodyBytes = 64 << 10

var (
	errBodyTooLarge  = errors.New("request body too large")
	errMalformedBody = errors.New("malformed request body")
)

// requestFields holds the flat key/value fields of a JSON object or
// form-encoded body. Lookups fall back to the query string.
type requestFields struct {
	body  url.Values
	query url.Values
	json  bool
}

// readFields reads and decodes the body of r. A body starting with "{" is
// JSON regardless of Content-Type; the dashboard's fetch calls send forms.
func readFields(r *http.Request) (*requestFields, error) {
	f := &requestFields{body: url.Values{}, query: r.URL.Query()}
	if r.Body == nil {
		return f, nil
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(raw) > maxBodyBytes {
		return nil, errBodyTooLarge
	}

	text := strings.TrimSpace(string(raw))
	switch {
	case text == "":
	case text[0] == '{' || strings.HasPrefix(r.Header.Get("Content-Type"), "application/json"):
		var obj map[string]any
		if err := json.Unmarshal([]byte(text), &obj); err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
		}
		for k, v := range obj {
			f.body.Set(k, scalarString(v))
		}
		f.json = true
	default:
		if f.body, err = url.ParseQuery(text); err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
		}
	}
	return f, nil
}

// Get returns the sanitized body value for key, else the query value.
func (f *requestFields) Get(key string) string {
	if f.body.Has(key) {
		return sanitizeInput(f.body.Get(key))
	}
	return sanitizeInput(f.query.Get(key))
}

// scalarString renders JSON scalars as form values would carry them.
// Objects, arrays and null become "".
func scalarString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

// parseNewEntry reads a ledger entry. The amount comes from "total", or
// "amount" when total is absent.
func parseNewEntry(f *requestFields) (core.NewEntry, error) {
	category, err := core.ParseCategory(f.Get("category"))
	if err != nil {
		return core.NewEntry{}, err
	}
	amount := f.Get("total")
	if amount == "" {
		amount = f.Get("amount")
	}
	total, err := core.ParseAmount(amount)
	if err != nil {
		return core.NewEntry{}, err
	}
	return core.NewEntry{
		Category:    category,
		Description: f.Get("description"),
		Date:        f.Get("date"),
		Total:       total,
		Notes:       f.Get("notes"),
	}, nil
}
