package models

import "gorm.io/gorm"

// Role is the account role. Roles are disjoint: an admin does not
// implicitly hold student or instructor access.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// Operation is a role-gated area of the API.
type Operation string

const (
	OpStudent    Operation = "student"
	OpInstructor Operation = "instructor"
	OpAdmin      Operation = "admin"
)

// Permits reports whether the role may perform the operation.
func (r Role) Permits(op Operation) bool {
	switch op {
	case OpStudent:
		return r == RoleStudent
	case OpInstructor:
		return r == RoleInstructor
	case OpAdmin:
		return r == RoleAdmin
	}
	return false
}

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleInstructor || r == RoleAdmin
}

// DashboardPath is where a freshly logged-in user lands.
func (r Role) DashboardPath() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleInstructor:
		return "/instructor/dashboard"
	default:
		return "/student/dashboard"
	}
}

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null;index" json:"username"`
	Email        string `gorm:"unique;not null;index" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	FullName     string `gorm:"not null" json:"full_name"`
	Role         Role   `gorm:"type:varchar(20);default:'student';not null" json:"role"`
	Bio          string `json:"bio"`
	AvatarURL    string `json:"avatar_url"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`

	Enrollments []Enrollment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Results     []Result     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Courses     []Course     `gorm:"foreignKey:InstructorID" json:"-"`
}

func (u *User) IsStudent() bool    { return u.Role == RoleStudent }
func (u *User) IsInstructor() bool { return u.Role == RoleInstructor }
func (u *User) IsAdmin() bool      { return u.Role == RoleAdmin }
