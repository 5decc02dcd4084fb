package model

// Subject 科目，对应 subjects
// 由课程表创建时按 (subject_code, student, semester) 取或建
type Subject struct {
	SubjectID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subject_id"`
	StudentID    string    `gorm:"type:uuid;not null"                             json:"student_id"`
	SemesterID   string    `gorm:"type:uuid;not null"                             json:"semester_id"`
	SubjectCode  string    `gorm:"type:varchar(20);not null"                      json:"subject_code"`
	SubjectTitle string    `gorm:"type:varchar(255);not null"                     json:"subject_title"`
	Semester     *Semester `gorm:"foreignKey:SemesterID;references:SemesterID"    json:"semester,omitempty"`
	Timestamps
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }
