package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username  string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email     string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	FirstName string `gorm:"size:100" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`

	// Empty when the account authenticates exclusively through Supabase.
	PasswordHash string `gorm:"size:255" json:"-"`

	// Platform-level staff flag. Admin capability is this flag OR the
	// profile role, see IsAdmin.
	IsStaff bool `gorm:"default:false" json:"is_staff"`

	Profile *Profile `json:"profile,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsAdmin computes the effective capability from the two independent
// signals: the platform staff flag and the (possibly absent) profile role.
func (u *User) IsAdmin() bool {
	if u.IsStaff {
		return true
	}
	return u.Profile != nil && u.Profile.Role == RoleAdmin
}
