package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"backoffice_portal_backend/internal/auth/rbac"
	"backoffice_portal_backend/platform/apperr"
)

func buildWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()
	book := excelize.NewFile()
	defer book.Close()

	sheet := book.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := book.SetCellValue(sheet, name, cell); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := book.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestImportXLSX(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	caller := Caller{UserID: uuid.New(), Role: rbac.RoleCro}

	data := buildWorkbook(t, [][]string{
		{"Name", "PhoneNumber", "Inquiry", "Status", "Source"},
		{"Ayesha Khan", "03001234567", "student visa", "Pending", "facebook"},
		{"Bilal Ahmed", "", "work visa", "Pending", ""}, // missing phone, dropped
		{"Sara Malik", "03007654321", "visit visa", "Pending", "walk-in"},
	})

	result, err := svc.Import(context.Background(), caller, "leads.xlsx", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("imported = %d, want 2", result.Imported)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", result.Skipped)
	}

	if len(repo.leads) != 2 {
		t.Fatalf("repo holds %d leads, want 2", len(repo.leads))
	}
	for _, lead := range repo.leads {
		if lead.CreatedBy != caller.UserID {
			t.Errorf("lead %s createdBy = %s, want caller", lead.Name, lead.CreatedBy)
		}
	}
}

func TestImportCSV(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	caller := Caller{UserID: uuid.New(), Role: rbac.RoleSuperAdmin}

	csvData := "name,phonenumber,inquiry,status\nAyesha Khan,03001234567,student visa,Pending\n"

	result, err := svc.Import(context.Background(), caller, "leads.csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.Imported != 1 {
		t.Errorf("imported = %d, want 1", result.Imported)
	}
}

func TestImportNoValidRows(t *testing.T) {
	svc := newTestService(newFakeRepo())
	caller := Caller{UserID: uuid.New(), Role: rbac.RoleCro}

	data := buildWorkbook(t, [][]string{
		{"Name", "PhoneNumber", "Inquiry", "Status"},
		{"No Phone", "", "visa", "Pending"},
	})

	_, err := svc.Import(context.Background(), caller, "leads.xlsx", bytes.NewReader(data))
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Errorf("expected bad request, got %v", err)
	}
}

func TestImportUnsupportedExtension(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Import(context.Background(), Caller{UserID: uuid.New()}, "leads.pdf", strings.NewReader("junk"))
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestImportReportsRowErrors(t *testing.T) {
	repo := newFakeRepo()
	repo.failRows = map[int]bool{0: true}
	svc := newTestService(repo)
	caller := Caller{UserID: uuid.New(), Role: rbac.RoleCro}

	data := buildWorkbook(t, [][]string{
		{"Name", "PhoneNumber", "Inquiry", "Status"},
		{"Fails", "03001111111", "visa", "Pending"},
		{"Succeeds", "03002222222", "visa", "Pending"},
	})

	result, err := svc.Import(context.Background(), caller, "leads.xlsx", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.Imported != 1 || len(result.RowErrors) != 1 {
		t.Errorf("result = %+v, want 1 imported and 1 row error", result)
	}
}

func TestImportMidBatchFailureKeepsOtherRows(t *testing.T) {
	repo := newFakeRepo()
	repo.failRows = map[int]bool{1: true}
	svc := newTestService(repo)
	caller := Caller{UserID: uuid.New(), Role: rbac.RoleCro}

	data := buildWorkbook(t, [][]string{
		{"Name", "PhoneNumber", "Inquiry", "Status"},
		{"Before", "03001111111", "visa", "Pending"},
		{"Fails", "03002222222", "visa", "Pending"},
		{"After", "03003333333", "visa", "Pending"},
	})

	result, err := svc.Import(context.Background(), caller, "leads.xlsx", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	// Rows around a failed insert stay persisted, and the reported count
	// matches what was actually stored.
	if result.Imported != 2 || len(result.RowErrors) != 1 {
		t.Fatalf("result = %+v, want 2 imported and 1 row error", result)
	}
	if len(repo.leads) != result.Imported {
		t.Errorf("stored %d leads, reported %d imported", len(repo.leads), result.Imported)
	}
	names := map[string]bool{}
	for _, lead := range repo.leads {
		names[lead.Name] = true
	}
	if !names["Before"] || !names["After"] || names["Fails"] {
		t.Errorf("unexpected persisted leads: %v", names)
	}
}
