package domain

import (
	"math"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// StoreOwner owns exactly one store. RatingSum and RatingCount are the
// running aggregate over every Rating row that references the store.
type StoreOwner struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:60;not null"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	StoreName    string    `json:"store_name" gorm:"size:255;not null;uniqueIndex"`
	Address      string    `json:"address" gorm:"size:400"`
	PasswordHash string    `json:"-" gorm:"column:password;not null"`
	RatingSum    int64     `json:"rating" gorm:"column:rating;not null;default:0"`
	RatingCount  int64     `json:"count_rating" gorm:"column:count_rating;not null;default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (StoreOwner) TableName() string { return "store_owners" }

func (s *StoreOwner) AccountRole() Role { return RoleStoreOwner }

func (s *StoreOwner) Credential() Credential {
	return Credential{Email: s.Email, PasswordHash: s.PasswordHash, Role: RoleStoreOwner}
}

func (s *StoreOwner) ApplyProfile(p ProfileUpdate) {
	s.Name = p.Name
	s.Address = p.Address
	if p.StoreName != "" {
		s.StoreName = p.StoreName
	}
	if p.PasswordHash != "" {
		s.PasswordHash = p.PasswordHash
	}
}

// AverageRating returns the store's displayed average.
func (s *StoreOwner) AverageRating() *float64 {
	return AverageRating(s.RatingSum, s.RatingCount)
}

// Rating is one user's score for one store. (StoreID, UserEmail) is unique.
type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StoreID   uint      `json:"store_id" gorm:"not null;uniqueIndex:idx_ratings_store_user"`
	UserEmail string    `json:"user_email" gorm:"size:255;not null;uniqueIndex:idx_ratings_store_user"`
	Rating    int       `json:"rating" gorm:"not null;check:chk_ratings_range,rating >= 1 AND rating <= 5"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Store StoreOwner `json:"-" gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
}

func (Rating) TableName() string { return "ratings" }

// ValidRating reports whether v is an accepted score.
func ValidRating(v int) bool {
	return v >= MinRating && v <= MaxRating
}

// AverageRating rounds sum/count to one decimal place. It returns nil when
// the store has no ratings yet.
func AverageRating(sum, count int64) *float64 {
	if count <= 0 {
		return nil
	}
	avg := math.Round(float64(sum)/float64(count)*10) / 10
	return &avg
}

// StoreSummary is a store as listed on a user's dashboard.
type StoreSummary struct {
	ID            uint
	StoreName     string
	Address       string
	RatingSum     int64
	RatingCount   int64
	UserRating    *int
	AverageRating *float64
}

// Review is a single rating as shown to a store owner.
type Review struct {
	UserEmail string `json:"user_email"`
	Rating    int    `json:"rating"`
}
