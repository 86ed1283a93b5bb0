package repos

import (
	"database/sql"

	"stockroom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ItemRepo struct{ db *sqlx.DB }

func NewItemRepo(db *sqlx.DB) *ItemRepo { return &ItemRepo{db: db} }

const itemCols = `
  id, sku, name, category_id, location_id, type, stock, min_stock,
  COALESCE(unit,'') AS unit, price, COALESCE(supplier,'') AS supplier,
  COALESCE(spec_json,'') AS spec_json, COALESCE(images_json,'') AS images_json,
  COALESCE(qr_payload,'') AS qr_payload,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ItemRepo) Insert(it *domain.Item) error {
	_, err := r.db.Exec(`
	  INSERT INTO items(id, sku, name, category_id, location_id, type, stock, min_stock,
	                    unit, price, supplier, spec_json, images_json, qr_payload)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, it.ID, it.SKU, it.Name, it.CategoryID, it.LocationID, it.Type, it.Stock, it.MinStock,
		it.Unit, it.Price, it.Supplier, it.SpecJSON, it.ImagesJSON, it.QRPayload)
	return err
}

func (r *ItemRepo) Get(id string) (domain.Item, error) {
	var it domain.Item
	err := r.db.Get(&it, `SELECT `+itemCols+` FROM items WHERE id = ?`, id)
	return it, err
}

// List returns items, optionally filtered by category, location or a
// name/SKU search. Stock-status filtering happens in the service since
// status is derived, not stored.
func (r *ItemRepo) List(categoryID, locationID, q string, limit, offset int) ([]domain.Item, error) {
	where := `1=1`
	args := []any{}
	if categoryID != "" {
		where += ` AND category_id = ?`
		args = append(args, categoryID)
	}
	if locationID != "" {
		where += ` AND location_id = ?`
		args = append(args, locationID)
	}
	if q != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(sku) LIKE ?)`
		pat := "%" + q + "%"
		args = append(args, pat, pat)
	}
	args = append(args, limit, offset)

	var out []domain.Item
	err := r.db.Select(&out, `
	  SELECT `+itemCols+` FROM items
	  WHERE `+where+`
	  ORDER BY created_at DESC, id
	  LIMIT ? OFFSET ?`, args...)
	return out, err
}

// Update writes the mutable catalog fields. Stock and SKU are
// deliberately excluded: stock moves only through the ledger, SKU is
// assigned once at creation.
func (r *ItemRepo) Update(it *domain.Item) error {
	res, err := r.db.Exec(`
	  UPDATE items SET
	    name = ?, category_id = ?, location_id = ?, type = ?, min_stock = ?,
	    unit = ?, price = ?, supplier = ?, spec_json = ?, images_json = ?, qr_payload = ?,
	    updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, it.Name, it.CategoryID, it.LocationID, it.Type, it.MinStock,
		it.Unit, it.Price, it.Supplier, it.SpecJSON, it.ImagesJSON, it.QRPayload, it.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ItemRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ItemRepo) Exists(id string) (bool, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM items WHERE id = ?`, id); err != nil {
		return false, err
	}
	return n > 0, nil
}
