package entity

// Role represents a user role in the system
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Users []User `gorm:"foreignKey:RoleID" json:"users,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants
const (
	RoleIDSuperAdmin = 1
	RoleIDAdmin      = 2
	RoleIDPatient    = 3
)

// RoleNames constants
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RolePatient    = "patient"
)

// RoleNameByID maps a role id to its name; unknown ids map to empty string.
func RoleNameByID(id int) string {
	switch id {
	case RoleIDSuperAdmin:
		return RoleSuperAdmin
	case RoleIDAdmin:
		return RoleAdmin
	case RoleIDPatient:
		return RolePatient
	}
	return ""
}
