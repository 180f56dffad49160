package repository

import (
	"sort"
	"strings"

	"github.com/vfg2006/growth-dashboard-api/internal/config"
	"github.com/vfg2006/growth-dashboard-api/internal/domain"
)

//go:generate mockgen -source=user.go -destination=mocks/user_mock.go -package=mocks

// UserRepository lê os usuários do painel. Eles vêm do arquivo de segredos, não do banco.
type UserRepository interface {
	GetUserByEmail(email string) (*domain.User, error)
	ListUser() ([]*domain.User, error)
}

type configUserRepository struct {
	users map[string]domain.User
}

func NewConfigUserRepository(users []config.User) UserRepository {
	byEmail := make(map[string]domain.User, len(users))
	for _, u := range users {
		email := NormalizeEmail(u.Email)
		if email == "" {
			continue
		}
		byEmail[email] = domain.User{
			Name:         u.Name,
			Email:        email,
			PasswordHash: u.PasswordHash,
			Role:         u.Role,
			Active:       u.Active,
		}
	}

	return &configUserRepository{users: byEmail}
}

// GetUserByEmail devolve nil, nil quando o usuário não existe
func (r *configUserRepository) GetUserByEmail(email string) (*domain.User, error) {
	user, ok := r.users[NormalizeEmail(email)]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *configUserRepository) ListUser() ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		user := u
		user.PasswordHash = ""
		users = append(users, &user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].Email < users[j].Email
	})
	return users, nil
}

func NormalizeEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}
