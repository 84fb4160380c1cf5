package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Table is a header row plus data rows read from an uploaded file.
type Table struct {
	Header []string
	Rows   [][]string
}

// ImportResult summarises a bulk import.
type ImportResult struct {
	Success  int      `json:"success"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings"`
}

// ReadTable parses an uploaded .csv or .xlsx file. The first row is the header.
func ReadTable(r io.Reader, fileName string) (*Table, error) {
	var rows [][]string
	var err error

	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".csv":
		rows, err = readCSV(r)
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(r)
	default:
		return nil, invalid("unsupported file type %q", ext)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, invalid("file is empty or invalid")
	}
	return &Table{Header: rows[0], Rows: rows[1:]}, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	// Spreadsheet tools prepend a UTF-8 BOM; BOMOverride drops it.
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, invalid("read csv: %v", err)
	}
	return rows, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, invalid("read excel: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, invalid("read excel: %v", err)
	}
	return rows, nil
}

// normalizeHeader lower-cases a header and folds underscores and runs of spaces into one space.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, "_", " ")
	return strings.Join(strings.Fields(h), " ")
}

type record map[string]string

var productFields = map[string]string{
	"category":                 "category",
	"name":                     "name",
	"type":                     "type",
	"range":                    "range",
	"brand":                    "brand",
	"model":                    "model",
	"body material":            "body_material",
	"ip rating":                "ip_rating",
	"sil":                      "sil",
	"protocol":                 "protocol",
	"hazardous classification": "hazardous_classification",
	"voltage":                  "voltage",
	"technical specs":          "technical_specs",
	"img":                      "img",
	"image":                    "img",
	"tag number":               "tag_number",
	"datasheet":                "datasheet",
	"inastaltions":             "installations",
	"installations":            "installations",
}

var testToolFields = map[string]string{
	"name":    "name",
	"model":   "model",
	"picture": "picture",
}

var clientFields = map[string]string{
	"name":           "name",
	"address":        "address",
	"contact number": "contact_number",
	"contactnumber":  "contact_number",
	"logo":           "logo",
}

func productFromRecord(r record) entity.Product {
	return entity.Product{
		Category:                r["category"],
		Name:                    r["name"],
		Type:                    r["type"],
		Range:                   r["range"],
		Brand:                   r["brand"],
		Model:                   r["model"],
		BodyMaterial:            r["body_material"],
		IPRating:                r["ip_rating"],
		SIL:                     r["sil"],
		Protocol:                r["protocol"],
		HazardousClassification: r["hazardous_classification"],
		Voltage:                 r["voltage"],
		TechnicalSpecs:          r["technical_specs"],
		Img:                     r["img"],
		TagNumber:               r["tag_number"],
		Datasheet:               r["datasheet"],
		Installations:           r["installations"],
	}
}

func testToolFromRecord(r record) entity.TestTool {
	return entity.TestTool{Name: r["name"], Model: r["model"], Picture: r["picture"]}
}

func clientFromRecord(r record) entity.Client {
	return entity.Client{
		Name:          r["name"],
		Address:       r["address"],
		ContactNumber: r["contact_number"],
		Logo:          r["logo"],
	}
}

// mapRows converts table rows through the header dictionary. Rows missing a required field
// are skipped with a warning; blank rows are ignored.
func mapRows[T any](table *Table, fields map[string]string, required []string, build func(record) T) ([]T, *ImportResult) {
	columns := make([]string, len(table.Header))
	for i, h := range table.Header {
		columns[i] = fields[normalizeHeader(h)]
	}

	result := &ImportResult{Warnings: []string{}}
	var out []T
	for i, row := range table.Rows {
		rec := record{}
		blank := true
		for j, cell := range row {
			if j >= len(columns) {
				break
			}
			cell = strings.TrimSpace(cell)
			if cell != "" {
				blank = false
			}
			if columns[j] != "" && rec[columns[j]] == "" {
				rec[columns[j]] = cell
			}
		}
		if blank {
			continue
		}

		var missing []string
		for _, f := range required {
			if rec[f] == "" {
				missing = append(missing, "'"+f+"'")
			}
		}
		if len(missing) > 0 {
			result.Skipped++
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("row %d: missing %s", i+2, strings.Join(missing, ", ")))
			continue
		}
		out = append(out, build(rec))
	}
	result.Success = len(out)
	return out, result
}
