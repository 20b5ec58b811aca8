package postgres

import (
	"database/sql"

	"wordmatch/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// EnsureUser returns the user, creating an unauthorized record on first contact
func (r *UserRepo) EnsureUser(userID int64) (*domain.User, error) {
	query := `
		INSERT INTO users (user_id, authorized)
		VALUES ($1, FALSE)
		ON CONFLICT (user_id)
		DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING user_id, authorized, created_at
	`
	var u domain.User
	err := r.db.QueryRow(query, userID).Scan(&u.UserID, &u.Authorized, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// AuthorizeUser marks user as authorized
func (r *UserRepo) AuthorizeUser(userID int64) error {
	query := `
		INSERT INTO users (user_id, authorized)
		VALUES ($1, TRUE)
		ON CONFLICT (user_id)
		DO UPDATE SET authorized = TRUE
	`
	_, err := r.db.Exec(query, userID)
	return err
}
