// internal/models/user.go
package models

import (
	"time"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// Badge identifiers. Badges are additive: once earned they are never revoked.
const (
	BadgeVerifiedCreator = "verified-creator"
	BadgeBeginnerTester  = "beginner-tester"
	BadgeProTester       = "pro-tester"
	BadgeLegendaryTester = "legendary-tester"
)

type User struct {
	BaseModel
	Email        string         `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Name         string         `json:"name" gorm:"not null"`
	AvatarURL    string         `json:"avatar_url"`
	Bio          string         `json:"bio"`
	Badges       pq.StringArray `json:"badges" gorm:"type:text[];default:'{}'"`
	IsBanned     bool           `json:"is_banned" gorm:"default:false"`
	BanReason    string         `json:"-"`
	LastLoginAt  *time.Time     `json:"last_login_at,omitempty"`

	Webapps []Webapp `json:"webapps,omitempty" gorm:"foreignKey:CreatorID"`
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func (u *User) HasBadge(badge string) bool {
	for _, b := range u.Badges {
		if b == badge {
			return true
		}
	}
	return false
}

// AccountAge returns how long the account has existed.
func (u *User) AccountAge() time.Duration {
	return time.Since(u.CreatedAt)
}

// PublicProfile strips fields that must not leak to other users.
type PublicProfile struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	AvatarURL string         `json:"avatar_url"`
	Bio       string         `json:"bio"`
	Badges    pq.StringArray `json:"badges"`
	CreatedAt time.Time      `json:"created_at"`
}

func (u *User) Public() PublicProfile {
	badges := u.Badges
	if badges == nil {
		badges = pq.StringArray{}
	}
	return PublicProfile{
		ID:        u.ID.String(),
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Bio:       u.Bio,
		Badges:    badges,
		CreatedAt: u.CreatedAt,
	}
}
