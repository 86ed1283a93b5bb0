package repos

import (
	"database/sql"

	"stockroom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

const categoryCols = `
  c.id, c.name, COALESCE(c.description,'') AS description,
  COALESCE(c.icon,'') AS icon, COALESCE(c.color,'') AS color,
  c.created_at, COALESCE(c.updated_at,'') AS updated_at`

// List returns all categories with an explicit item-count aggregation.
func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `
	  SELECT `+categoryCols+`,
	         (SELECT COUNT(*) FROM items i WHERE i.category_id = c.id) AS item_count
	  FROM categories c
	  ORDER BY c.name
	`)
	return out, err
}

func (r *CategoryRepo) Get(id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
	  SELECT `+categoryCols+`,
	         (SELECT COUNT(*) FROM items i WHERE i.category_id = c.id) AS item_count
	  FROM categories c
	  WHERE c.id = ?
	`, id)
	return c, err
}

func (r *CategoryRepo) Insert(c *domain.Category) error {
	_, err := r.db.Exec(`
	  INSERT INTO categories(id, name, description, icon, color)
	  VALUES(?,?,?,?,?)
	`, c.ID, c.Name, c.Description, c.Icon, c.Color)
	return err
}

func (r *CategoryRepo) Update(c *domain.Category) error {
	res, err := r.db.Exec(`
	  UPDATE categories SET name = ?, description = ?, icon = ?, color = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, c.Name, c.Description, c.Icon, c.Color, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *CategoryRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
