package repos

import (
	"stockroom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `
  id, email, name, password_hash, role,
  COALESCE(department,'') AS department, COALESCE(phone,'') AS phone,
  active, COALESCE(last_login_at,'') AS last_login_at, created_at`

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) List() ([]domain.User, error) {
	var out []domain.User
	err := r.DB.Select(&out, `SELECT `+userCols+` FROM users ORDER BY name`)
	return out, err
}

func (r *UserRepo) Insert(u *domain.User) error {
	_, err := r.DB.Exec(`
	  INSERT INTO users(id, email, name, password_hash, role, department, phone)
	  VALUES(?,?,?,?,?,?,?)
	`, u.ID, u.Email, u.Name, u.Hash, u.Role, u.Department, u.Phone)
	return err
}

func (r *UserRepo) SetActive(id string, active bool) error {
	_, err := r.DB.Exec(`UPDATE users SET active=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, active, id)
	return err
}

func (r *UserRepo) TouchLastLogin(id string) error {
	_, err := r.DB.Exec(`UPDATE users SET last_login_at=CURRENT_TIMESTAMP WHERE id=?`, id)
	return err
}
