package postgres

import (
	"database/sql"

	"wordmatch/internal/domain"
)

// ProgressRepo implements repository.ProgressRepository
type ProgressRepo struct {
	db *sql.DB
}

// NewProgressRepo creates a new progress repository
func NewProgressRepo(db *sql.DB) *ProgressRepo {
	return &ProgressRepo{db: db}
}

// GetProgress returns the win count per level
func (r *ProgressRepo) GetProgress(userID int64) (map[domain.Level]int, error) {
	query := `
		SELECT level, wins
		FROM progress
		WHERE user_id = $1
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	progress := make(map[domain.Level]int)
	for rows.Next() {
		var level string
		var wins int
		if err := rows.Scan(&level, &wins); err != nil {
			return nil, err
		}
		progress[domain.Level(level)] = wins
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return progress, nil
}

// IncrementWin adds one win to the level
func (r *ProgressRepo) IncrementWin(userID int64, level domain.Level) error {
	query := `
		INSERT INTO progress (user_id, level, wins)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, level)
		DO UPDATE SET wins = progress.wins + 1, updated_at = NOW()
	`
	_, err := r.db.Exec(query, userID, string(level))
	return err
}
