package internal

import (
	"github.com/keylian15/le-garde-manger/internal/repository"
	"github.com/keylian15/le-garde-manger/internal/service"
	"github.com/keylian15/le-garde-manger/pkg/security"
	"gorm.io/gorm"
)

// Deps carries everything handlers need. Built once in the router and
// read-only afterwards.
type Deps struct {
	DB     *gorm.DB
	Users  repository.UserStore
	Foods  repository.FoodStore
	Hasher *security.PasswordHasher
	Tokens service.TokenService
	Mailer service.Mailer
}
