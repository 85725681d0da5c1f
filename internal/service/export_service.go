package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/luoteng/stuinfo-backend/internal/model"
	"github.com/luoteng/stuinfo-backend/internal/repository"
)

// ExportSheetName is the single worksheet holding all records.
const ExportSheetName = "学生信息"

// exportHeaders is the fixed, ordered column mapping of the administrative
// summary sheet. Order must match exportRow.
var exportHeaders = []string{
	"序号", "姓名", "专业", "所在班级", "学号", "性别", "民族", "身份证号",
	"出生年月", "宿舍", "家庭经济情况", "户籍性质", "籍贯", "家庭住址",
	"手机号", "父亲名字", "父亲手机号", "母亲姓名", "母亲手机号", "QQ号",
	"政治面貌", "特长", "宗教信仰", "提交时间",
}

// ExportService serializes the full record set into an xlsx workbook.
type ExportService struct {
	repo *repository.StudentRepository
}

// NewExportService creates a new ExportService.
func NewExportService(repo *repository.StudentRepository) *ExportService {
	return &ExportService{repo: repo}
}

// Export builds a one-sheet workbook of every record, newest-first. An
// empty store yields a valid workbook containing only the header row.
func (s *ExportService) Export(ctx context.Context) (*bytes.Buffer, error) {
	records, err := s.repo.List(ctx, model.StudentFilter{})
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	return buildWorkbook(records)
}

// Filename returns the download name stamped with the current date.
func (s *ExportService) Filename() string {
	return fmt.Sprintf("学生信息汇总_%s.xlsx", time.Now().Format("2006-01-02"))
}

func buildWorkbook(records []model.StudentRecord) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheetName); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(ExportSheetName, "A1", &exportHeaders); err != nil {
		return nil, err
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := exportRow(rec)
		if err := f.SetSheetRow(ExportSheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

func exportRow(rec model.StudentRecord) []interface{} {
	return []interface{}{
		rec.SerialNumber, rec.Name, rec.Major, rec.ClassName, rec.StudentID,
		rec.Gender, rec.Nationality, rec.IDCard, rec.BirthDate, rec.Dormitory,
		rec.EconomicStatus, rec.HouseholdType, rec.NativePlace, rec.HomeAddress,
		rec.Phone, rec.FatherName, rec.FatherPhone, rec.MotherName,
		rec.MotherPhone, rec.QQ, rec.PoliticalStatus, rec.Specialty,
		rec.Religion, rec.SubmitTime.Local().Format("2006-01-02 15:04:05"),
	}
}
