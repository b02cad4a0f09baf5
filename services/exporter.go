package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"inventorypro-server/models"
)

// Export renders the catalog in the requested format and returns the
// document bytes plus a content type and suggested filename.
func Export(format string, products []models.Product, locations []string) ([]byte, string, string, error) {
	switch format {
	case "csv":
		doc, err := ExportCSV(products, locations)
		return doc, "text/csv", "inventory.csv", err
	case "xlsx":
		doc, err := ExportXLSX(products, locations)
		return doc, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "inventory.xlsx", err
	case "json":
		doc, err := ExportJSON(products)
		return doc, "application/json", "inventory.json", err
	case "xml":
		doc, err := ExportXML(products)
		return doc, "application/xml", "inventory.xml", err
	case "pdf":
		doc, err := ExportPDF(products, locations)
		return doc, "application/pdf", "inventory-report.pdf", err
	default:
		return nil, "", "", fmt.Errorf("unsupported export format %q", format)
	}
}

func tableHeader(locations []string) []string {
	header := []string{"SKU", "Name", "Category", "Price", "MinStock", "Description"}
	header = append(header, locations...)
	return append(header, "Total")
}

func tableRow(p *models.Product, locations []string) []string {
	row := []string{p.SKU, p.Name, p.Category, p.Price.String(), strconv.Itoa(p.MinStock), p.Description}
	for _, location := range locations {
		row = append(row, strconv.Itoa(p.LocationStocks.Get(location)))
	}
	return append(row, strconv.Itoa(p.TotalQuantity()))
}

// ExportCSV writes one row per product with a quantity column per
// registered location.
func ExportCSV(products []models.Product, locations []string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(tableHeader(locations)); err != nil {
		return nil, err
	}
	for i := range products {
		if err := writer.Write(tableRow(&products[i], locations)); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportXLSX writes the same table as ExportCSV into a spreadsheet.
func ExportXLSX(products []models.Product, locations []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, title := range tableHeader(locations) {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for i := range products {
		for col, value := range tableRow(&products[i], locations) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON writes the catalog as a flat product array. Re-importing
// the output reproduces sku, name, category, price, and the ledger;
// ids are minted fresh on import.
func ExportJSON(products []models.Product) ([]byte, error) {
	return json.MarshalIndent(products, "", "  ")
}

// ExportXML writes the flat product list ParseImport reads back.
func ExportXML(products []models.Product) ([]byte, error) {
	catalog := xmlCatalog{Products: make([]xmlProduct, 0, len(products))}
	for i := range products {
		p := &products[i]
		entry := xmlProduct{
			SKU:         p.SKU,
			Name:        p.Name,
			Category:    p.Category,
			Price:       p.Price.String(),
			MinStock:    strconv.Itoa(p.MinStock),
			Description: p.Description,
		}
		for location, qty := range p.LocationStocks {
			entry.Stocks = append(entry.Stocks, xmlStock{
				Location: location,
				Quantity: strconv.Itoa(qty),
			})
		}
		catalog.Products = append(catalog.Products, entry)
	}

	doc, err := xml.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), doc...), nil
}

// ExportPDF renders a tabular stock report.
func ExportPDF(products []models.Product, locations []string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Inventory Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, "Inventory Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s, %d products",
		time.Now().Format("2006-01-02 15:04"), len(products)))
	pdf.Ln(10)

	widths := []float64{30, 60, 35, 25, 20, 25, 25, 20}
	header := []string{"SKU", "Name", "Category", "Price", "Min", "In Stock", "Status", "Locations"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, title := range header {
		pdf.CellFormat(widths[i], 8, title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for i := range products {
		p := &products[i]
		used := 0
		for _, location := range locations {
			if p.LocationStocks.Get(location) > 0 {
				used++
			}
		}
		cells := []string{
			p.SKU,
			p.Name,
			p.Category,
			p.Price.StringFixed(2),
			strconv.Itoa(p.MinStock),
			strconv.Itoa(p.TotalQuantity()),
			p.Status(),
			strconv.Itoa(used),
		}
		for j, value := range cells {
			pdf.CellFormat(widths[j], 7, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
