package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/repository"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Export formats
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv; charset=utf-8"
)

// ExportOptions selects the output of Export.
type ExportOptions struct {
	Format         string
	IncludeDetails bool
	FileName       string
}

// ExportFile is a rendered download.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExportService renders revisions to spreadsheets.
type ExportService struct {
	projects *repository.ProjectRepository
	clients  *repository.ClientRepository
	logger   *zap.Logger
}

func NewExportService(projects *repository.ProjectRepository, clients *repository.ClientRepository, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{projects: projects, clients: clients, logger: logger}
}

func (s *ExportService) load(ctx context.Context, projectID, revNo string) (*entity.Project, *entity.Revision, error) {
	p, ok, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("find project: %w", err)
	}
	if !ok {
		return nil, nil, notFound("project", projectID)
	}
	rev, err := findRevision(p, revNo)
	if err != nil {
		return nil, nil, err
	}
	return p, rev, nil
}

// OfferWorkbook builds the technical offer workbook of one revision.
func (s *ExportService) OfferWorkbook(ctx context.Context, projectID, revNo string) (*excelize.File, string, error) {
	p, rev, err := s.load(ctx, projectID, revNo)
	if err != nil {
		return nil, "", err
	}

	rows := BuildOfferRows(p, rev)
	equipment := make([][]interface{}, len(rows))
	for i, r := range rows {
		equipment[i] = r.Values()
	}

	f, err := buildWorkbook(workbookContent{
		infoHeaders: []string{"Project Name", "Project Number", "Revision", "Date", "Prepared By", "Status"},
		info:        []interface{}{p.ProjectName, p.ProjectNo, rev.RevNo, p.Date, p.PreparedBy, p.Status},
		equipHeader: OfferHeaders,
		equipment:   equipment,
		project:     p,
	})
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s_Rev%s_Technical_Offer.xlsx", p.ProjectNo, rev.RevNo)
	return f, filename, nil
}

// Export renders the "Save As" export as xlsx or csv.
func (s *ExportService) Export(ctx context.Context, projectID, revNo string, opts ExportOptions) (*ExportFile, error) {
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = FormatXLSX
	}
	if format != FormatXLSX && format != FormatCSV {
		return nil, invalid("unsupported export format %q", opts.Format)
	}

	p, rev, err := s.load(ctx, projectID, revNo)
	if err != nil {
		return nil, err
	}

	base := strings.TrimSpace(opts.FileName)
	if base == "" {
		base = fmt.Sprintf("%s_Rev%s_Export", p.ProjectNo, rev.RevNo)
	}
	base = strings.TrimSuffix(strings.TrimSuffix(base, ".xlsx"), ".csv")

	rows := BuildExportRows(p, rev, opts.IncludeDetails)
	equipment := make([][]interface{}, len(rows))
	for i, r := range rows {
		equipment[i] = r.Values(opts.IncludeDetails)
	}
	headers := ExportHeaders(opts.IncludeDetails)

	if format == FormatCSV {
		data, err := writeCSV(headers, equipment)
		if err != nil {
			return nil, err
		}
		return &ExportFile{Name: base + ".csv", ContentType: ContentTypeCSV, Data: data}, nil
	}

	f, err := buildWorkbook(workbookContent{
		infoHeaders: []string{"Project Name", "Project Number", "Revision", "Date", "Prepared By", "Status", "Client"},
		info:        []interface{}{p.ProjectName, p.ProjectNo, rev.RevNo, p.Date, p.PreparedBy, p.Status, s.clientName(ctx, p.ClientID)},
		equipHeader: headers,
		equipment:   equipment,
		project:     p,
	})
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return &ExportFile{Name: base + ".xlsx", ContentType: ContentTypeXLSX, Data: buf.Bytes()}, nil
}

// RevisionCSV renders the equipment of one revision without accessories or deviations.
func (s *ExportService) RevisionCSV(ctx context.Context, projectID, revNo string) (*ExportFile, error) {
	p, rev, err := s.load(ctx, projectID, revNo)
	if err != nil {
		return nil, err
	}
	if len(rev.Devices) == 0 {
		return nil, invalid("no devices found in revision %s", revNo)
	}

	rows := BuildOfferRows(p, rev)
	values := make([][]interface{}, len(rows))
	for i, r := range rows {
		values[i] = r.equipmentValues()
	}
	data, err := writeCSV(equipmentHeaders, values)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		Name:        fmt.Sprintf("%s_Rev%s_Equipment.csv", p.ProjectNo, rev.RevNo),
		ContentType: ContentTypeCSV,
		Data:        data,
	}, nil
}

// clientName falls back to the id when the client is gone.
func (s *ExportService) clientName(ctx context.Context, clientID string) string {
	if clientID == "" {
		return ""
	}
	clients, err := s.clients.List(ctx)
	if err != nil {
		s.logger.Warn("Failed to resolve client for export", zap.String("client_id", clientID), zap.Error(err))
		return clientID
	}
	for _, c := range clients {
		if c.ID == clientID {
			return c.Name
		}
	}
	return clientID
}

type workbookContent struct {
	infoHeaders []string
	info        []interface{}
	equipHeader []string
	equipment   [][]interface{}
	project     *entity.Project
}

func buildWorkbook(c workbookContent) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "Project Info")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	writeSheet(f, "Project Info", headerStyle, c.infoHeaders, [][]interface{}{c.info})
	writeSheet(f, "Equipment", headerStyle, c.equipHeader, c.equipment)

	if devs := c.project.GeneralDeviations; len(devs) > 0 {
		rows := make([][]interface{}, len(devs))
		for i, d := range devs {
			rows[i] = []interface{}{d.Author, d.Date, d.Deviation}
		}
		writeSheet(f, "General Deviations", headerStyle, []string{"Author", "Date", "Deviation"}, rows)
	}

	if files := c.project.UploadedFiles; len(files) > 0 {
		rows := make([][]interface{}, len(files))
		for i, fl := range files {
			rows[i] = []interface{}{fl.Name, fl.UploadedBy, fl.Date}
		}
		writeSheet(f, "Uploaded Files", headerStyle, []string{"File Name", "Uploaded By", "Date"}, rows)
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, headerStyle int, headers []string, rows [][]interface{}) {
	if sheet != f.GetSheetName(0) {
		f.NewSheet(sheet)
	}

	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for r, values := range rows {
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	// Width from the longest header or cell, capped.
	for i, h := range headers {
		width := float64(len(h)) + 2
		for _, values := range rows {
			if i < len(values) {
				if l := float64(len(fmt.Sprint(values[i]))) + 2; l > width {
					width = l
				}
			}
		}
		if width > 50 {
			width = 50
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, width)
	}
}

func writeCSV(headers []string, rows [][]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	record := make([]string, len(headers))
	for _, values := range rows {
		for i := range record {
			record[i] = ""
			if i < len(values) {
				record[i] = cellString(values[i])
			}
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func cellString(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(x)
	}
}
