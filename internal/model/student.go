package model

// Student 学生账号，对应 students
// 账号由外部认证服务维护，本服务只读取用于 owner 校验
type Student struct {
	StudentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	Email     string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Firstname string `gorm:"type:varchar(100);not null"                     json:"firstname"`
	Lastname  string `gorm:"type:varchar(100);not null"                     json:"lastname"`
	Timestamps
}

// TableName 指定表名
func (Student) TableName() string { return "students" }
