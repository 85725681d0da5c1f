package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/luoteng/stuinfo-backend/internal/model"
)

// Duplicate-submission errors, one per unique column so handlers can return
// a column-specific message.
var (
	ErrDuplicateStudentID = errors.New("a record with this student ID already exists")
	ErrDuplicateIDCard    = errors.New("a record with this national ID already exists")
	ErrStudentNotFound    = errors.New("student record not found")
)

const studentColumns = `id, serial_number, name, major, class_name, student_id,
	gender, nationality, id_card, birth_date, dormitory, economic_status,
	household_type, native_place, home_address, phone, father_name,
	father_phone, mother_name, mother_phone, qq, political_status, specialty,
	religion, submit_time`

// StudentRepository handles student record data access.
type StudentRepository struct {
	db *sql.DB
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Insert stores a new record. The uniqueness check and the insert are one
// constrained statement, so concurrent duplicate submissions cannot race.
func (r *StudentRepository) Insert(ctx context.Context, rec *model.StudentRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO students (`+studentColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.SerialNumber, rec.Name, rec.Major, rec.ClassName,
		rec.StudentID, rec.Gender, rec.Nationality, rec.IDCard, rec.BirthDate,
		rec.Dormitory, rec.EconomicStatus, rec.HouseholdType, rec.NativePlace,
		rec.HomeAddress, rec.Phone, rec.FatherName, rec.FatherPhone,
		rec.MotherName, rec.MotherPhone, rec.QQ, rec.PoliticalStatus,
		rec.Specialty, rec.Religion, rec.SubmitTime.UTC().Format(time.RFC3339),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			if strings.Contains(sqliteErr.Error(), "students.id_card") {
				return ErrDuplicateIDCard
			}
			return ErrDuplicateStudentID
		}
		return err
	}
	return nil
}

// List retrieves all records ordered by submission time descending,
// optionally narrowed by a substring search and/or an exact major match.
// LIKE is case-insensitive for ASCII in SQLite; non-ASCII text matches
// byte-for-byte.
func (r *StudentRepository) List(ctx context.Context, filter model.StudentFilter) ([]model.StudentRecord, error) {
	query := `SELECT ` + studentColumns + ` FROM students`
	var clauses []string
	var args []interface{}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		clauses = append(clauses,
			`(name LIKE ? OR student_id LIKE ? OR major LIKE ? OR nationality LIKE ? OR id_card LIKE ?)`)
		args = append(args, pattern, pattern, pattern, pattern, pattern)
	}
	if filter.Major != "" {
		clauses = append(clauses, `major = ?`)
		args = append(args, filter.Major)
	}
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, ` AND `)
	}
	query += ` ORDER BY submit_time DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.StudentRecord
	for rows.Next() {
		rec, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if records == nil {
		records = []model.StudentRecord{}
	}
	return records, rows.Err()
}

// GetByID retrieves one record or ErrStudentNotFound.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*model.StudentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = ?`, id)
	rec, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Stats computes the listing aggregates: total row count, rows submitted at
// or after dayStart, and the most recent submission time (nil when empty).
func (r *StudentRepository) Stats(ctx context.Context, dayStart time.Time) (*model.StudentStats, error) {
	stats := &model.StudentStats{}

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(CASE WHEN submit_time >= ? THEN 1 END) FROM students`,
		dayStart.UTC().Format(time.RFC3339),
	).Scan(&stats.Total, &stats.TodayCount)
	if err != nil {
		return nil, err
	}

	var last sql.NullString
	err = r.db.QueryRowContext(ctx, `SELECT MAX(submit_time) FROM students`).Scan(&last)
	if err != nil {
		return nil, err
	}
	if last.Valid {
		t, err := time.Parse(time.RFC3339, last.String)
		if err != nil {
			return nil, err
		}
		stats.LastSubmit = &t
	}
	return stats, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanStudent(s scanner) (model.StudentRecord, error) {
	var rec model.StudentRecord
	var submitTime string
	err := s.Scan(
		&rec.ID, &rec.SerialNumber, &rec.Name, &rec.Major, &rec.ClassName,
		&rec.StudentID, &rec.Gender, &rec.Nationality, &rec.IDCard,
		&rec.BirthDate, &rec.Dormitory, &rec.EconomicStatus,
		&rec.HouseholdType, &rec.NativePlace, &rec.HomeAddress, &rec.Phone,
		&rec.FatherName, &rec.FatherPhone, &rec.MotherName, &rec.MotherPhone,
		&rec.QQ, &rec.PoliticalStatus, &rec.Specialty, &rec.Religion,
		&submitTime,
	)
	if err != nil {
		return rec, err
	}
	rec.SubmitTime, err = time.Parse(time.RFC3339, submitTime)
	return rec, err
}
