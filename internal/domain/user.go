package domain

import (
	"errors"
	"time"
)

// Role is the numeric role code carried in stored users and token claims.
// The integer values are part of the wire contract and must not change.
type Role int

const (
	RoleSuperAdmin Role = 0
	RoleAdmin      Role = 1
	RoleConsumer   Role = 2
)

func (r Role) Valid() bool { return r >= RoleSuperAdmin && r <= RoleConsumer }

func (r Role) String() string {
	switch r {
	case RoleSuperAdmin:
		return "super-admin"
	case RoleAdmin:
		return "admin"
	case RoleConsumer:
		return "consumer"
	}
	return "unknown"
}

// AtLeast reports whether r has the privileges of want or higher.
// Lower codes mean more privilege.
func (r Role) AtLeast(want Role) bool { return r <= want }

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:191;index" json:"email"`
	Mobile       string    `gorm:"size:16;uniqueIndex;not null" json:"mobile"`
	Gender       string    `gorm:"size:8" json:"gender,omitempty"`
	Address      string    `gorm:"size:255" json:"address,omitempty"`
	Role         Role      `gorm:"not null;default:2" json:"role"`
	PasswordHash string    `gorm:"size:191;not null" json:"-"`
	IsActive     bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// Credential store errors. Handlers pick status codes with errors.Is,
// never by matching message text.
var (
	ErrDuplicateIdentity = errors.New("identity already in use")
	ErrEmailTaken        = fieldTaken{field: "email"}
	ErrMobileTaken       = fieldTaken{field: "mobile"}
	ErrPersistence       = errors.New("failed to retrieve created user")
	ErrUserNotFound      = errors.New("user not found")
)

type fieldTaken struct{ field string }

func (e fieldTaken) Error() string { return e.field + " already in use" }

// Is makes both field-level duplicates match ErrDuplicateIdentity.
func (e fieldTaken) Is(target error) bool { return target == ErrDuplicateIdentity }

// Field names the colliding attribute ("email" or "mobile").
func (e fieldTaken) Field() string { return e.field }

// UserRepository is the credential store contract. Lookups return
// ErrUserNotFound on a miss; Create enforces identity uniqueness.
type UserRepository interface {
	FindByEmail(email string) (*User, error)
	FindByMobile(mobile string) (*User, error)
	AssertUnique(email, mobile string) error
	Create(u *User) (*User, error)
	FindByID(id string) (*User, error)
	List(offset, limit int) ([]User, int64, error)
	Deactivate(id string) error
}
