package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/luoteng/stuinfo-backend/internal/model"
	"github.com/luoteng/stuinfo-backend/internal/repository"
)

func exportRows(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(ExportSheetName)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	return rows
}

func TestExportService_EmptyStore(t *testing.T) {
	repo := repository.NewStudentRepository(openTestDB(t, "export_empty"))
	s := NewExportService(repo)

	buf, err := s.Export(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	rows := exportRows(t, buf)
	if len(rows) != 1 {
		t.Fatalf("expected header-only workbook, got %d rows", len(rows))
	}
	header := rows[0]
	if len(header) != 24 {
		t.Fatalf("expected 24 columns, got %d", len(header))
	}
	if header[0] != "序号" || header[1] != "姓名" || header[23] != "提交时间" {
		t.Fatalf("unexpected headers: %v", header)
	}
}

func TestExportService_RowsMatchRecords(t *testing.T) {
	repo := repository.NewStudentRepository(openTestDB(t, "export_rows"))
	s := NewExportService(repo)
	ctx := context.Background()

	base := time.Date(2026, 8, 28, 8, 0, 0, 0, time.UTC)
	for i := 1; i <= 2; i++ {
		rec := &model.StudentRecord{
			ID:              "rec-" + string(rune('0'+i)),
			SerialNumber:    "1",
			Name:            "王小明",
			Major:           "计算机应用",
			ClassName:       "计算机2401班",
			StudentID:       "2024000" + string(rune('0'+i)),
			Gender:          "男",
			Nationality:     "汉族",
			IDCard:          "44010120060101001" + string(rune('0'+i)),
			BirthDate:       "2006-01",
			Dormitory:       "3栋502",
			EconomicStatus:  "一般",
			HouseholdType:   "城镇",
			NativePlace:     "广东广州",
			HomeAddress:     "广州市某某区某某街道1号",
			Phone:           "13800000000",
			FatherName:      "王父",
			FatherPhone:     "13800000001",
			MotherName:      "刘母",
			MotherPhone:     "13800000002",
			QQ:              "123456789",
			PoliticalStatus: "共青团员",
			Specialty:       "绘画",
			Religion:        "无",
			SubmitTime:      base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Insert(ctx, rec); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	buf, err := s.Export(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	rows := exportRows(t, buf)
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 data rows, got %d", len(rows))
	}

	// Newest record first; column order follows the header mapping.
	first := rows[1]
	if first[1] != "王小明" || first[4] != "20240002" || first[7] != "440101200601010012" {
		t.Fatalf("unexpected first data row: %v", first)
	}
}

func TestExportService_FilenameIsDateStamped(t *testing.T) {
	s := NewExportService(nil)

	want := "学生信息汇总_" + time.Now().Format("2006-01-02") + ".xlsx"
	if got := s.Filename(); got != want {
		t.Fatalf("filename: got %q want %q", got, want)
	}
}
