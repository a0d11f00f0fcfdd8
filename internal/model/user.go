package model

type UserRole string

const (
	Student    UserRole = "student"
	Instructor UserRole = "instructor"
	Admin      UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Email     string   `gorm:"size:100;unique;not null" json:"email"`
	Password  string   `gorm:"size:100;not null" json:"-"`
	FirstName string   `gorm:"size:50;not null" json:"firstName"`
	LastName  string   `gorm:"size:50;not null" json:"lastName"`
	Role      UserRole `gorm:"size:20;default:'student'" json:"role"`
	Avatar    string   `gorm:"size:255" json:"avatarUrl"`
}

func (User) TableName() string {
	return "users"
}

// UserWithStats 管理端用户列表行，附带选课数
type UserWithStats struct {
	ID              uint     `json:"id"`
	Email           string   `json:"email"`
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Role            UserRole `json:"role"`
	EnrolledCourses int64    `json:"enrolledCourses"`
}
