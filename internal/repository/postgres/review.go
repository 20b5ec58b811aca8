package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"wordmatch/internal/domain"

	"github.com/lib/pq"
)

// ReviewRepo implements repository.ReviewRepository
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo creates a new review repository
func NewReviewRepo(db *sql.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// ListReview returns the oldest review items first
func (r *ReviewRepo) ListReview(userID int64, limit int) ([]domain.WordPair, error) {
	query := `
		SELECT id, jp_text, segments, cn
		FROM review_items
		WHERE user_id = $1
		ORDER BY id
		LIMIT $2
	`
	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pairs []domain.WordPair
	for rows.Next() {
		var id int64
		var p domain.WordPair
		var segments []byte
		if err := rows.Scan(&id, &p.JP.Text, &segments, &p.CN); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(segments, &p.JP.Segments); err != nil {
			return nil, fmt.Errorf("decode segments of review item %d: %w", id, err)
		}
		p.ID = "review-" + strconv.FormatInt(id, 10)
		pairs = append(pairs, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return pairs, nil
}

// CountReview returns the number of pending review items
func (r *ReviewRepo) CountReview(userID int64) (int, error) {
	query := `SELECT COUNT(*) FROM review_items WHERE user_id = $1`

	var count int
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

// AddReview appends pairs, skipping any whose Japanese text is already queued
func (r *ReviewRepo) AddReview(userID int64, pairs []domain.WordPair) error {
	if len(pairs) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO review_items (user_id, jp_text, segments, cn)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, jp_text) DO NOTHING
	`
	for _, p := range pairs {
		segments, err := json.Marshal(p.JP.Segments)
		if err != nil {
			return fmt.Errorf("encode segments: %w", err)
		}
		if _, err := tx.Exec(query, userID, p.JP.Text, segments, p.CN); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RemoveReviewByText deletes the review items with the given Japanese texts
func (r *ReviewRepo) RemoveReviewByText(userID int64, jpTexts []string) error {
	if len(jpTexts) == 0 {
		return nil
	}

	query := `
		DELETE FROM review_items
		WHERE user_id = $1 AND jp_text = ANY($2)
	`
	_, err := r.db.Exec(query, userID, pq.Array(jpTexts))
	return err
}
