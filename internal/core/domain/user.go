package domain

import "time"

// Account is implemented by the three table-backed account kinds. The set is
// closed: User, Admin and StoreOwner.
type Account interface {
	AccountRole() Role
	Credential() Credential
	ApplyProfile(p ProfileUpdate)
}

// Credential is the login-relevant projection of an account row.
type Credential struct {
	Email        string
	PasswordHash string
	Role         Role
}

// ProfileUpdate replaces the mutable profile fields of an account.
// An empty PasswordHash keeps the stored password. StoreName only applies
// to store owners.
type ProfileUpdate struct {
	Name         string
	Address      string
	PasswordHash string
	StoreName    string
}

// User is an end user who rates stores.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:60;not null"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Address      string    `json:"address" gorm:"size:400"`
	PasswordHash string    `json:"-" gorm:"column:password;not null"`
	Role         string    `json:"role" gorm:"size:32;not null;default:user"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) AccountRole() Role { return RoleUser }

func (u *User) Credential() Credential {
	return Credential{Email: u.Email, PasswordHash: u.PasswordHash, Role: RoleUser}
}

func (u *User) ApplyProfile(p ProfileUpdate) {
	u.Name = p.Name
	u.Address = p.Address
	if p.PasswordHash != "" {
		u.PasswordHash = p.PasswordHash
	}
}

// Admin manages users and stores. Role is a free-text title chosen by the
// system admin that created the account; it does not affect authorization.
type Admin struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:60;not null"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Address      string    `json:"address" gorm:"size:400"`
	PasswordHash string    `json:"-" gorm:"column:password;not null"`
	Role         string    `json:"role" gorm:"size:64"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Admin) TableName() string { return "admins" }

func (a *Admin) AccountRole() Role { return RoleAdmin }

func (a *Admin) Credential() Credential {
	return Credential{Email: a.Email, PasswordHash: a.PasswordHash, Role: RoleAdmin}
}

func (a *Admin) ApplyProfile(p ProfileUpdate) {
	a.Name = p.Name
	a.Address = p.Address
	if p.PasswordHash != "" {
		a.PasswordHash = p.PasswordHash
	}
}
