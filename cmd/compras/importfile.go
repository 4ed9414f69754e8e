package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/compras/internal/currency"
	"github.com/Veraticus/compras/internal/editor"
	"github.com/Veraticus/compras/internal/model"
)

// csvColumns are the header names understood in CSV files. They match the
// JSON field names of an item.
var csvColumns = map[string]func(*editor.Form, string){
	"itemName":  (*editor.Form).SetItemName,
	"storeName": (*editor.Form).SetStoreName,
	"category":  (*editor.Form).SetCategory,
	"city":      (*editor.Form).SetCity,
	"region":    (*editor.Form).SetRegion,
	"forWhom":   (*editor.Form).SetForWhom,
	"image":     (*editor.Form).SetImage,
}

// priceColumns are tried in order; the first non-empty one wins and the
// other two are computed from it.
var priceColumns = []struct {
	name string
	set  func(*editor.Form, string)
}{
	{"priceYen", (*editor.Form).SetYen},
	{"priceReal", (*editor.Form).SetReal},
	{"priceDollar", (*editor.Form).SetDollar},
}

// importRow is one item read from a file, with the line or index it came
// from for error messages.
type importRow struct {
	Item model.CreateItem
	Ref  string
}

// readItems loads items from a .json file holding an array of items, or a
// .csv file with a header row.
func readItems(path string) ([]importRow, error) {
	f, err := os.Open(filepath.Clean(path)) // #nosec G304 -- user supplied import file
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return decodeJSONItems(f)
	case ".csv":
		return decodeCSVItems(f)
	default:
		return nil, fmt.Errorf("unsupported import format %q (use .json or .csv)", filepath.Ext(path))
	}
}

func decodeJSONItems(r io.Reader) ([]importRow, error) {
	var items []model.CreateItem
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode JSON items: %w", err)
	}

	rows := make([]importRow, 0, len(items))
	for i, item := range items {
		rows = append(rows, importRow{Item: item, Ref: fmt.Sprintf("item %d", i+1)})
	}
	return rows, nil
}

func decodeCSVItems(r io.Reader) ([]importRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	if _, ok := index["itemName"]; !ok {
		return nil, fmt.Errorf("CSV header must include itemName")
	}

	var rows []importRow
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		get := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		form := editor.New()
		for name, set := range csvColumns {
			set(form, get(name))
		}
		for _, col := range priceColumns {
			if v := get(col.name); v != "" {
				col.set(form, v)
				break
			}
		}

		rows = append(rows, importRow{Item: formItem(form), Ref: fmt.Sprintf("line %d", line)})
	}
	return rows, nil
}

// formItem returns the request body a form would submit, without
// validating it.
func formItem(f *editor.Form) model.CreateItem {
	fields := f.Fields()
	return model.CreateItem{
		ItemName:    fields.ItemName,
		Image:       fields.Image,
		StoreName:   fields.StoreName,
		Category:    fields.Category,
		City:        fields.City,
		Region:      fields.Region,
		ForWhom:     fields.ForWhom,
		PriceReal:   currency.ParseOrZero(fields.PriceReal),
		PriceYen:    currency.ParseOrZero(fields.PriceYen),
		PriceDollar: currency.ParseOrZero(fields.PriceDollar),
	}
}
