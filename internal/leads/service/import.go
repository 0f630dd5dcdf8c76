package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"backoffice_portal_backend/internal/leads/repository"
	"backoffice_portal_backend/internal/leads/transport"
	"backoffice_portal_backend/platform/apperr"
	"backoffice_portal_backend/platform/phone"
)

// ImportArchiver stores a copy of an uploaded import file.
type ImportArchiver interface {
	ArchiveImportFile(ctx context.Context, filename string, data []byte, contentType string) (string, error)
}

// importColumn maps normalized header names to lead fields.
var importColumns = map[string]string{
	"name":           "name",
	"phonenumber":    "phoneNumber",
	"phone":          "phoneNumber",
	"email":          "email",
	"address":        "address",
	"inquiry":        "inquiry",
	"inquirycountry": "inquiryCountry",
	"budget":         "budget",
	"detail":         "detail",
	"occupation":     "occupation",
	"service":        "service",
	"source":         "source",
	"advisor":        "advisor",
	"status":         "status",
}

// Import parses an uploaded .xlsx or .csv spreadsheet and inserts the valid
// rows as a batch. Rows missing any of Name, PhoneNumber, Inquiry, or status
// are skipped; when no rows survive, the import fails. The raw file is
// archived to object storage on a best-effort basis.
func (s *Service) Import(ctx context.Context, caller Caller, filename string, file io.Reader) (transport.ImportResultResponse, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return transport.ImportResultResponse{}, fmt.Errorf("read import file: %w", err)
	}

	var records [][]string
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".csv"):
		records, err = parseCSV(data)
	case strings.HasSuffix(strings.ToLower(filename), ".xlsx"):
		records, err = parseXLSX(data)
	default:
		return transport.ImportResultResponse{}, apperr.Validation("unsupported file type, expected .xlsx or .csv")
	}
	if err != nil {
		return transport.ImportResultResponse{}, apperr.BadRequest("could not parse spreadsheet: " + err.Error())
	}

	rows, skipped := extractRows(records, caller)
	if len(rows) == 0 {
		return transport.ImportResultResponse{}, apperr.BadRequest("no valid rows in spreadsheet")
	}

	inserted, rowErrors := s.repo.CreateBatch(ctx, rows)

	result := transport.ImportResultResponse{
		Imported: inserted,
		Skipped:  skipped + len(rowErrors),
	}
	for _, rowErr := range rowErrors {
		result.RowErrors = append(result.RowErrors, fmt.Sprintf("row %d: %v", rowErr.Row+1, rowErr.Err))
	}

	if s.archiver != nil {
		key, err := s.archiver.ArchiveImportFile(ctx, filename, data, contentTypeFor(filename))
		if err != nil {
			s.log.Warn("failed to archive import file", "filename", filename, "error", err)
		} else {
			result.ArchivedKey = key
		}
	}

	s.log.Info("lead import finished", "imported", result.Imported, "skipped", result.Skipped, "by", caller.UserID)
	return result, nil
}

func parseCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

func parseXLSX(data []byte) ([][]string, error) {
	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return book.GetRows(sheets[0])
}

// extractRows turns header + data records into insert params, dropping rows
// that lack any required field.
func extractRows(records [][]string, caller Caller) ([]repository.CreateLeadParams, int) {
	if len(records) < 2 {
		return nil, 0
	}

	header := make(map[int]string)
	for i, cell := range records[0] {
		normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(cell), " ", ""))
		if field, ok := importColumns[normalized]; ok {
			header[i] = field
		}
	}

	rows := make([]repository.CreateLeadParams, 0, len(records)-1)
	skipped := 0
	for _, record := range records[1:] {
		fields := make(map[string]string)
		for i, cell := range record {
			if field, ok := header[i]; ok {
				if trimmed := strings.TrimSpace(cell); trimmed != "" {
					fields[field] = trimmed
				}
			}
		}

		if fields["name"] == "" || fields["phoneNumber"] == "" || fields["inquiry"] == "" || fields["status"] == "" {
			skipped++
			continue
		}

		rows = append(rows, repository.CreateLeadParams{
			Name:           fields["name"],
			PhoneNumber:    phone.NormalizeE164(fields["phoneNumber"]),
			Email:          optional(fields, "email"),
			Address:        optional(fields, "address"),
			Inquiry:        fields["inquiry"],
			InquiryCountry: optional(fields, "inquiryCountry"),
			Budget:         optional(fields, "budget"),
			Detail:         optional(fields, "detail"),
			Occupation:     optional(fields, "occupation"),
			Service:        optional(fields, "service"),
			Source:         optional(fields, "source"),
			Advisor:        optional(fields, "advisor"),
			Status:         fields["status"],
			CreatedBy:      caller.UserID,
		})
	}
	return rows, skipped
}

func optional(fields map[string]string, key string) *string {
	if value, ok := fields[key]; ok {
		return &value
	}
	return nil
}

func contentTypeFor(filename string) string {
	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return "text/csv"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
