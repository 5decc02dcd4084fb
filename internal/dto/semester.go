package dto

// ── 学期模块 DTO ──

// CreateSemesterRequest 创建学期请求
type CreateSemesterRequest struct {
	AcadYearStart int    `json:"acad_year_start" binding:"required,min=1900,max=2999"`
	AcadYearEnd   int    `json:"acad_year_end"   binding:"required,gtefield=AcadYearStart,max=2999"`
	YearLevel     string `json:"year_level"      binding:"required,max=20"`
	Semester      string `json:"semester"        binding:"required,max=20"` // "1st Semester" | "2nd Semester" | "Summer"
	SemStartDate  string `json:"sem_start_date"  binding:"required,date"`
	SemEndDate    string `json:"sem_end_date"    binding:"required,date"`
}

// UpdateSemesterRequest 更新学期请求
type UpdateSemesterRequest struct {
	AcadYearStart *int    `json:"acad_year_start" binding:"omitempty,min=1900,max=2999"`
	AcadYearEnd   *int    `json:"acad_year_end"   binding:"omitempty,min=1900,max=2999"`
	YearLevel     *string `json:"year_level"      binding:"omitempty,min=1,max=20"`
	Semester      *string `json:"semester"        binding:"omitempty,min=1,max=20"`
	SemStartDate  *string `json:"sem_start_date"  binding:"omitempty,date"`
	SemEndDate    *string `json:"sem_end_date"    binding:"omitempty,date"`
}

// SemesterListQuery 学期列表过滤条件
type SemesterListQuery struct {
	AcadYearStart *int   `form:"acad_year_start"`
	AcadYearEnd   *int   `form:"acad_year_end"`
	YearLevel     string `form:"year_level"`
	Semester      string `form:"semester"`
}

// SemesterResponse 学期信息响应
type SemesterResponse struct {
	SemesterID    string `json:"semester_id"`
	AcadYearStart int    `json:"acad_year_start"`
	AcadYearEnd   int    `json:"acad_year_end"`
	YearLevel     string `json:"year_level"`
	Semester      string `json:"semester"`
	SemStartDate  string `json:"sem_start_date"`
	SemEndDate    string `json:"sem_end_date"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// ── 科目 ──

// UpdateSubjectRequest 更新科目标题
type UpdateSubjectRequest struct {
	SubjectTitle string `json:"subject_title" binding:"required,max=255"`
}

// SubjectListQuery 科目列表过滤条件
type SubjectListQuery struct {
	SemesterID string `form:"semester_id" binding:"omitempty,uuid"`
}

// SubjectResponse 科目响应
type SubjectResponse struct {
	SubjectID    string `json:"subject_id"`
	SemesterID   string `json:"semester_id"`
	SubjectCode  string `json:"subject_code"`
	SubjectTitle string `json:"subject_title"`
}
