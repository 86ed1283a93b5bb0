package services

import (
	"strings"

	"stockroom/internal/apperr"
	"stockroom/internal/domain"
	"stockroom/internal/repos"
	"stockroom/internal/validate"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	Users *repos.UserRepo
}

func NewUserService(users *repos.UserRepo) *UserService { return &UserService{Users: users} }

type UserInput struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
}

func (s *UserService) Create(in UserInput) (*domain.User, error) {
	var problems []string
	email, ok := validate.Email(in.Email)
	if !ok {
		problems = append(problems, "a valid email is required")
	}
	name, ok := validate.Name(in.Name)
	if !ok {
		problems = append(problems, "name is required")
	}
	if !validate.Password(in.Password) {
		problems = append(problems, "password must be 8+ characters with upper, lower and digit")
	}
	if !domain.ValidRole(in.Role) {
		problems = append(problems, "role must be super_admin, staff or employee")
	}
	if len(problems) > 0 {
		return nil, apperr.Validationf("%s", strings.Join(problems, "; "))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 12)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		ID:         uuid.NewString(),
		Email:      email,
		Name:       name,
		Hash:       string(hash),
		Role:       in.Role,
		Department: in.Department,
		Phone:      in.Phone,
	}
	if err := s.Users.Insert(u); err != nil {
		return nil, apperr.FromUnique(err)
	}
	return s.Users.ByID(u.ID)
}

func (s *UserService) List() ([]domain.User, error) {
	return s.Users.List()
}

// Deactivate disables an account; its tokens stop working on the next
// request since authentication re-checks the active flag.
func (s *UserService) Deactivate(id string) error {
	if _, err := s.Users.ByID(id); err != nil {
		return apperr.NotFoundf("user not found")
	}
	return s.Users.SetActive(id, false)
}
