package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/grafbee/procurement-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReviewRepository - интерфейс для работы с отзывами о поставках.
type ReviewRepository interface {
	CreateReview(ctx context.Context, proposalId string, reviewReq models.ReviewRequest) (*models.Review, error)
	GetReviewsByProposal(ctx context.Context, proposalId string) ([]models.Review, error)
	GetAllReviews(ctx context.Context) ([]models.Review, error)
	GetVendorReviewStats(ctx context.Context, vendor string) (float64, int, error)
}

// PostgresReviewRepository - реализация ReviewRepository для базы данных.
type PostgresReviewRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresReviewRepository создаёт новый экземпляр PostgresReviewRepository.
func NewPostgresReviewRepository(db *pgxpool.Pool) *PostgresReviewRepository {
	return &PostgresReviewRepository{DB: db}
}

// CreateReview создает отзыв о поставке.
func (r *PostgresReviewRepository) CreateReview(ctx context.Context, proposalId string, reviewReq models.ReviewRequest) (*models.Review, error) {
	newReview := models.Review{
		ID:         uuid.New().String(),
		ProposalID: proposalId,
		Rating:     reviewReq.Rating,
		Comment:    reviewReq.Comment,
		ReviewedBy: reviewReq.ReviewedBy,
		CreatedAt:  time.Now().UTC(),
	}
	_, err := r.DB.Exec(ctx, `
       INSERT INTO reviews (id, proposal_id, rating, comment, reviewed_by, created_at)
       VALUES ($1, $2, $3, $4, $5, $6)
   `,
		newReview.ID,
		newReview.ProposalID,
		newReview.Rating,
		newReview.Comment,
		newReview.ReviewedBy,
		newReview.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert review: %w", err)
	}
	return &newReview, nil
}

// GetReviewsByProposal возвращает отзывы по предложению.
func (r *PostgresReviewRepository) GetReviewsByProposal(ctx context.Context, proposalId string) ([]models.Review, error) {
	query := `SELECT id, proposal_id, rating, comment, reviewed_by, created_at
              FROM reviews WHERE proposal_id = $1 ORDER BY created_at`

	rows, err := r.DB.Query(ctx, query, proposalId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(
			&review.ID,
			&review.ProposalID,
			&review.Rating,
			&review.Comment,
			&review.ReviewedBy,
			&review.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}

// GetAllReviews возвращает все отзывы для расчёта репутации поставщиков.
func (r *PostgresReviewRepository) GetAllReviews(ctx context.Context) ([]models.Review, error) {
	query := `SELECT id, proposal_id, rating, comment, reviewed_by, created_at FROM reviews`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(
			&review.ID,
			&review.ProposalID,
			&review.Rating,
			&review.Comment,
			&review.ReviewedBy,
			&review.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}

// GetVendorReviewStats возвращает средний рейтинг поставщика и число отзывов.
func (r *PostgresReviewRepository) GetVendorReviewStats(ctx context.Context, vendor string) (float64, int, error) {
	var avgRating float64
	var count int
	query := `SELECT COALESCE(AVG(r.rating), 0), COUNT(*)
              FROM reviews r
              JOIN proposals p ON r.proposal_id = p.id
              WHERE p.submitted_by = $1`
	err := r.DB.QueryRow(ctx, query, vendor).Scan(&avgRating, &count)
	if err != nil {
		return 0, 0, err
	}
	return avgRating, count, nil
}
