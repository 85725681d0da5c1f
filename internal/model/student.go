package model

import "time"

// StudentRecord is one submitted registration form. All form fields are flat
// strings because they are transcribed verbatim from the paper intake sheet.
// Records are immutable after submission: there is no update or delete path.
type StudentRecord struct {
	ID              string    `json:"id"`
	SerialNumber    string    `json:"serial_number"`
	Name            string    `json:"name"`
	Major           string    `json:"major"`
	ClassName       string    `json:"class_name"`
	StudentID       string    `json:"student_id"`
	Gender          string    `json:"gender"`
	Nationality     string    `json:"nationality"`
	IDCard          string    `json:"id_card"`
	BirthDate       string    `json:"birth_date"`
	Dormitory       string    `json:"dormitory"`
	EconomicStatus  string    `json:"economic_status"`
	HouseholdType   string    `json:"household_type"`
	NativePlace     string    `json:"native_place"`
	HomeAddress     string    `json:"home_address"`
	Phone           string    `json:"phone"`
	FatherName      string    `json:"father_name"`
	FatherPhone     string    `json:"father_phone"`
	MotherName      string    `json:"mother_name"`
	MotherPhone     string    `json:"mother_phone"`
	QQ              string    `json:"qq"`
	PoliticalStatus string    `json:"political_status"`
	Specialty       string    `json:"specialty"`
	Religion        string    `json:"religion"`
	SubmitTime      time.Time `json:"submit_time"`
}

// SubmitStudentRequest is the payload for the public submission endpoint.
// Every field of the intake schema is required; unknown JSON keys are
// rejected by the strict binding decoder.
type SubmitStudentRequest struct {
	SerialNumber    string `json:"serial_number" binding:"required,max=20"`
	Name            string `json:"name" binding:"required,max=100"`
	Major           string `json:"major" binding:"required,max=100"`
	ClassName       string `json:"class_name" binding:"required,max=100"`
	StudentID       string `json:"student_id" binding:"required,max=30"`
	Gender          string `json:"gender" binding:"required,max=10"`
	Nationality     string `json:"nationality" binding:"required,max=50"`
	IDCard          string `json:"id_card" binding:"required,max=30"`
	BirthDate       string `json:"birth_date" binding:"required,max=30"`
	Dormitory       string `json:"dormitory" binding:"required,max=50"`
	EconomicStatus  string `json:"economic_status" binding:"required,max=100"`
	HouseholdType   string `json:"household_type" binding:"required,max=50"`
	NativePlace     string `json:"native_place" binding:"required,max=100"`
	HomeAddress     string `json:"home_address" binding:"required,max=255"`
	Phone           string `json:"phone" binding:"required,max=30"`
	FatherName      string `json:"father_name" binding:"required,max=100"`
	FatherPhone     string `json:"father_phone" binding:"required,max=30"`
	MotherName      string `json:"mother_name" binding:"required,max=100"`
	MotherPhone     string `json:"mother_phone" binding:"required,max=30"`
	QQ              string `json:"qq" binding:"required,max=30"`
	PoliticalStatus string `json:"political_status" binding:"required,max=50"`
	Specialty       string `json:"specialty" binding:"required,max=255"`
	Religion        string `json:"religion" binding:"required,max=50"`
}

// Record converts the validated request into a StudentRecord.
// The caller stamps ID and SubmitTime.
func (r *SubmitStudentRequest) Record() StudentRecord {
	return StudentRecord{
		SerialNumber:    r.SerialNumber,
		Name:            r.Name,
		Major:           r.Major,
		ClassName:       r.ClassName,
		StudentID:       r.StudentID,
		Gender:          r.Gender,
		Nationality:     r.Nationality,
		IDCard:          r.IDCard,
		BirthDate:       r.BirthDate,
		Dormitory:       r.Dormitory,
		EconomicStatus:  r.EconomicStatus,
		HouseholdType:   r.HouseholdType,
		NativePlace:     r.NativePlace,
		HomeAddress:     r.HomeAddress,
		Phone:           r.Phone,
		FatherName:      r.FatherName,
		FatherPhone:     r.FatherPhone,
		MotherName:      r.MotherName,
		MotherPhone:     r.MotherPhone,
		QQ:              r.QQ,
		PoliticalStatus: r.PoliticalStatus,
		Specialty:       r.Specialty,
		Religion:        r.Religion,
	}
}

// StudentFilter narrows a listing. Search matches a substring across
// name, student_id, major, nationality and id_card (case-insensitive for
// ASCII). Major, when set, must match exactly.
type StudentFilter struct {
	Search string
	Major  string
}

// StudentStats are the aggregates returned alongside a listing.
type StudentStats struct {
	Total      int        `json:"total"`
	TodayCount int        `json:"today_count"`
	LastSubmit *time.Time `json:"last_submission_time,omitempty"`
}
