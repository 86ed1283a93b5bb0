package services

import (
	"database/sql"
	"strings"

	"stockroom/internal/apperr"
	"stockroom/internal/domain"
	"stockroom/internal/repos"

	"github.com/google/uuid"
)

type CategoryService struct {
	Categories *repos.CategoryRepo
}

func NewCategoryService(cats *repos.CategoryRepo) *CategoryService {
	return &CategoryService{Categories: cats}
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

func (s *CategoryService) Create(in CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validationf("name is required")
	}
	c := &domain.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: in.Description,
		Icon:        in.Icon,
		Color:       in.Color,
	}
	if err := s.Categories.Insert(c); err != nil {
		return nil, apperr.FromUnique(err)
	}
	return s.Get(c.ID)
}

func (s *CategoryService) Get(id string) (*domain.Category, error) {
	c, err := s.Categories.Get(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFoundf("category not found")
		}
		return nil, err
	}
	return &c, nil
}

func (s *CategoryService) List() ([]domain.Category, error) {
	return s.Categories.List()
}

func (s *CategoryService) Update(id string, in CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validationf("name is required")
	}
	cur, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	cur.Name = name
	cur.Description = in.Description
	cur.Icon = in.Icon
	cur.Color = in.Color
	if err := s.Categories.Update(cur); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFoundf("category not found")
		}
		return nil, apperr.FromUnique(err)
	}
	return s.Get(id)
}

// Delete refuses to remove a category still referenced by items (the
// schema RESTRICTs it anyway; this surfaces a clearer message).
func (s *CategoryService) Delete(id string) error {
	cur, err := s.Get(id)
	if err != nil {
		return err
	}
	if cur.ItemCount > 0 {
		return apperr.Validationf("category still has %d items", cur.ItemCount)
	}
	if err := s.Categories.Delete(id); err != nil {
		if err == sql.ErrNoRows {
			return apperr.NotFoundf("category not found")
		}
		return err
	}
	return nil
}
