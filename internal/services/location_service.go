package services

import (
	"database/sql"
	"strings"

	"stockroom/internal/apperr"
	"stockroom/internal/domain"
	"stockroom/internal/repos"
	"stockroom/internal/validate"

	"github.com/google/uuid"
)

type LocationService struct {
	Locations *repos.LocationRepo
	Seq       *repos.SequenceRepo
}

func NewLocationService(locs *repos.LocationRepo, seq *repos.SequenceRepo) *LocationService {
	return &LocationService{Locations: locs, Seq: seq}
}

type LocationInput struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	ParentID    string `json:"parent_id"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Create registers a location. A missing code is generated from the
// type prefix and the per-type counter; the type is fixed at creation.
func (s *LocationService) Create(in LocationInput) (*domain.Location, error) {
	var problems []string
	name := strings.TrimSpace(in.Name)
	if name == "" {
		problems = append(problems, "name is required")
	}
	if !validate.OneOf(in.Type, domain.LocationTypes) {
		problems = append(problems, "type must be one of building, warehouse, room, rack, shelf")
	}
	if len(problems) > 0 {
		return nil, apperr.Validationf("%s", strings.Join(problems, "; "))
	}

	if in.ParentID != "" {
		ok, err := s.Locations.Exists(in.ParentID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.NotFoundf("parent location not found")
		}
	}

	code := strings.TrimSpace(in.Code)
	if code == "" {
		n, err := s.Seq.Next(locationScope(in.Type))
		if err != nil {
			return nil, err
		}
		code = formatLocationCode(in.Type, n)
	}

	l := &domain.Location{
		ID:          uuid.NewString(),
		Name:        name,
		Type:        in.Type,
		ParentID:    in.ParentID,
		Code:        code,
		Description: in.Description,
	}
	if err := s.Locations.Insert(l); err != nil {
		return nil, apperr.FromUnique(err)
	}
	return s.Get(l.ID)
}

// Get returns a location with its direct children resolved.
func (s *LocationService) Get(id string) (*domain.Location, error) {
	l, err := s.Locations.Get(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFoundf("location not found")
		}
		return nil, err
	}
	children, err := s.Locations.Children(id)
	if err != nil {
		return nil, err
	}
	l.Children = children
	return &l, nil
}

// List returns all locations as a flat list with item counts; the
// parent/child tree is resolvable client-side via parent_id.
func (s *LocationService) List() ([]domain.Location, error) {
	return s.Locations.List()
}

func (s *LocationService) Update(id string, in LocationInput) (*domain.Location, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validationf("name is required")
	}
	cur, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if in.ParentID != "" {
		if in.ParentID == id {
			return nil, apperr.Validationf("location cannot be its own parent")
		}
		ok, err := s.Locations.Exists(in.ParentID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.NotFoundf("parent location not found")
		}
	}
	cur.Name = name
	cur.ParentID = in.ParentID
	cur.Description = in.Description
	if err := s.Locations.Update(cur); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFoundf("location not found")
		}
		return nil, err
	}
	return s.Get(id)
}

func (s *LocationService) Delete(id string) error {
	cur, err := s.Get(id)
	if err != nil {
		return err
	}
	if cur.ItemCount > 0 {
		return apperr.Validationf("location still has %d items", cur.ItemCount)
	}
	if len(cur.Children) > 0 {
		return apperr.Validationf("location still has %d child locations", len(cur.Children))
	}
	if err := s.Locations.Delete(id); err != nil {
		if err == sql.ErrNoRows {
			return apperr.NotFoundf("location not found")
		}
		return err
	}
	return nil
}
