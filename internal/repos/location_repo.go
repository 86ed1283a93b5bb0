package repos

import (
	"database/sql"

	"stockroom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type LocationRepo struct{ db *sqlx.DB }

func NewLocationRepo(db *sqlx.DB) *LocationRepo { return &LocationRepo{db: db} }

const locationCols = `
  l.id, l.name, l.type, COALESCE(l.parent_id,'') AS parent_id,
  COALESCE(l.code,'') AS code, COALESCE(l.description,'') AS description,
  l.created_at, COALESCE(l.updated_at,'') AS updated_at`

// List returns all locations with explicit item-count aggregation.
// Children are resolved by the service from the flat list.
func (r *LocationRepo) List() ([]domain.Location, error) {
	var out []domain.Location
	err := r.db.Select(&out, `
	  SELECT `+locationCols+`,
	         (SELECT COUNT(*) FROM items i WHERE i.location_id = l.id) AS item_count
	  FROM locations l
	  ORDER BY l.type, l.name
	`)
	return out, err
}

func (r *LocationRepo) Get(id string) (domain.Location, error) {
	var l domain.Location
	err := r.db.Get(&l, `
	  SELECT `+locationCols+`,
	         (SELECT COUNT(*) FROM items i WHERE i.location_id = l.id) AS item_count
	  FROM locations l
	  WHERE l.id = ?
	`, id)
	return l, err
}

// Children returns the direct child locations of a parent.
func (r *LocationRepo) Children(parentID string) ([]domain.Location, error) {
	var out []domain.Location
	err := r.db.Select(&out, `
	  SELECT `+locationCols+`,
	         (SELECT COUNT(*) FROM items i WHERE i.location_id = l.id) AS item_count
	  FROM locations l
	  WHERE l.parent_id = ?
	  ORDER BY l.name
	`, parentID)
	return out, err
}

func (r *LocationRepo) Insert(l *domain.Location) error {
	var parent any
	if l.ParentID != "" {
		parent = l.ParentID
	}
	_, err := r.db.Exec(`
	  INSERT INTO locations(id, name, type, parent_id, code, description)
	  VALUES(?,?,?,?,?,?)
	`, l.ID, l.Name, l.Type, parent, l.Code, l.Description)
	return err
}

func (r *LocationRepo) Update(l *domain.Location) error {
	var parent any
	if l.ParentID != "" {
		parent = l.ParentID
	}
	res, err := r.db.Exec(`
	  UPDATE locations SET name = ?, parent_id = ?, description = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, l.Name, parent, l.Description, l.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *LocationRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM locations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *LocationRepo) Exists(id string) (bool, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM locations WHERE id = ?`, id); err != nil {
		return false, err
	}
	return n > 0, nil
}
