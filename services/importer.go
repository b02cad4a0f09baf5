package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"inventorypro-server/models"
)

// ImportOptions carries the context a parsed row is resolved against.
type ImportOptions struct {
	// Locations is the registry used to recognize per-location
	// quantity columns in tabular files.
	Locations []string
	// DefaultMinStock applies when a row carries no usable threshold.
	DefaultMinStock int
}

// ParseImport turns an uploaded file into products, dispatching on the
// file extension. Parsing is lenient on purpose: a malformed field
// defaults instead of failing the row, and a bad row is skipped instead
// of failing the batch. Only an unreadable file errors.
func ParseImport(filename string, data []byte, opts ImportOptions) ([]models.Product, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return parseCSV(data, opts)
	case ".xlsx", ".xls":
		return parseXLSX(data, opts)
	case ".xml":
		return parseXML(data, opts)
	case ".json":
		return parseJSON(data, opts)
	default:
		return nil, fmt.Errorf("unsupported import format %q", filepath.Ext(filename))
	}
}

func parseCSV(data []byte, opts ImportOptions) ([]models.Product, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return parseTable(rows, opts), nil
}

func parseXLSX(data []byte, opts ImportOptions) ([]models.Product, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return parseTable(rows, opts), nil
}

// parseTable maps a header row plus data rows into products. Headers
// match case-insensitively; unknown columns are ignored; columns whose
// header equals a registered location name become ledger entries.
func parseTable(rows [][]string, opts ImportOptions) []models.Product {
	if len(rows) < 2 {
		return nil
	}

	fieldCols := map[int]string{}
	locationCols := map[int]string{}
	for i, header := range rows[0] {
		normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(header), " ", ""))
		normalized = strings.ReplaceAll(normalized, "_", "")
		switch normalized {
		case "sku", "name", "category", "price", "minstock", "description":
			fieldCols[i] = normalized
			continue
		}
		for _, location := range opts.Locations {
			if strings.EqualFold(strings.TrimSpace(header), location) {
				locationCols[i] = location
				break
			}
		}
	}

	var products []models.Product
	for _, row := range rows[1:] {
		fields := map[string]string{}
		ledger := models.Ledger{}
		for i, cell := range row {
			if name, ok := fieldCols[i]; ok {
				fields[name] = strings.TrimSpace(cell)
			}
			if location, ok := locationCols[i]; ok {
				qty := models.CoerceQuantity(cell)
				if qty < 0 {
					qty = 0
				}
				ledger[location] = qty
			}
		}

		p, ok := rowProduct(fields, ledger, opts)
		if !ok {
			continue
		}
		products = append(products, p)
	}
	return products
}

func rowProduct(fields map[string]string, ledger models.Ledger, opts ImportOptions) (models.Product, bool) {
	sku := fields["sku"]
	name := fields["name"]
	if name == "" {
		name = sku
	}
	if name == "" {
		// Nothing identifies this row; skip it rather than minting a
		// nameless record.
		return models.Product{}, false
	}

	minStock := opts.DefaultMinStock
	if raw, ok := fields["minstock"]; ok && raw != "" {
		minStock = models.CoerceQuantity(raw)
		if minStock < 0 {
			minStock = 0
		}
	}

	return models.Product{
		SKU:            sku,
		Name:           name,
		Category:       fields["category"],
		Price:          models.CoercePrice(fields["price"]),
		MinStock:       minStock,
		Description:    fields["description"],
		LocationStocks: ledger,
	}, true
}

// Flat XML product list, the same shape ExportXML writes.
type xmlStock struct {
	Location string `xml:"location,attr"`
	Quantity string `xml:",chardata"`
}

type xmlProduct struct {
	SKU         string     `xml:"sku"`
	Name        string     `xml:"name"`
	Category    string     `xml:"category"`
	Price       string     `xml:"price"`
	MinStock    string     `xml:"minStock"`
	Description string     `xml:"description,omitempty"`
	Stocks      []xmlStock `xml:"stock"`
}

type xmlCatalog struct {
	XMLName  xml.Name     `xml:"products"`
	Products []xmlProduct `xml:"product"`
}

func parseXML(data []byte, opts ImportOptions) ([]models.Product, error) {
	var catalog xmlCatalog
	if err := xml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	var products []models.Product
	for _, raw := range catalog.Products {
		fields := map[string]string{
			"sku":         strings.TrimSpace(raw.SKU),
			"name":        strings.TrimSpace(raw.Name),
			"category":    strings.TrimSpace(raw.Category),
			"price":       raw.Price,
			"description": strings.TrimSpace(raw.Description),
		}
		if strings.TrimSpace(raw.MinStock) != "" {
			fields["minstock"] = raw.MinStock
		}

		ledger := models.Ledger{}
		for _, stock := range raw.Stocks {
			location := strings.TrimSpace(stock.Location)
			if location == "" {
				continue
			}
			qty := models.CoerceQuantity(stock.Quantity)
			if qty < 0 {
				qty = 0
			}
			ledger[location] = qty
		}

		p, ok := rowProduct(fields, ledger, opts)
		if !ok {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

func parseJSON(data []byte, opts ImportOptions) ([]models.Product, error) {
	var docs []models.ProductDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	var products []models.Product
	for _, doc := range docs {
		p := doc.Product()
		if p.Name == "" {
			p.Name = p.SKU
		}
		if p.Name == "" {
			continue
		}
		if doc.MinStock == nil {
			p.MinStock = opts.DefaultMinStock
		}
		// Imported records always mint fresh ids in the store.
		p.ID = ""
		products = append(products, p)
	}
	return products, nil
}
