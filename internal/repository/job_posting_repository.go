package repository

import (
	"github.com/Prateeks16/interview-pilot/internal/model"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type JobPostingRepository struct {
	db *gorm.DB
}

func NewJobPostingRepository(db *gorm.DB) *JobPostingRepository {
	return &JobPostingRepository{db}
}

func (r *JobPostingRepository) Create(posting *model.JobPosting) error {
	return r.db.Create(posting).Error
}

func (r *JobPostingRepository) FindByID(id uuid.UUID) (*model.JobPosting, error) {
	var posting model.JobPosting
	err := r.db.First(&posting, "id = ?", id).Error
	return &posting, err
}

func (r *JobPostingRepository) List(page, pageSize int) ([]model.JobPosting, int64, error) {
	var total int64
	if err := r.db.Model(&model.JobPosting{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var postings []model.JobPosting
	err := r.db.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&postings).Error
	return postings, total, err
}

// SearchByEmbedding ranks postings by pgvector distance to the given
// embedding.
func (r *JobPostingRepository) SearchByEmbedding(embedding pgvector.Vector, topK int) ([]model.JobPosting, error) {
	var postings []model.JobPosting
	err := r.db.Raw(`
        SELECT *, embedding <-> ? AS distance
        FROM job_postings
        ORDER BY embedding <-> ?
        LIMIT ?
    `, embedding, embedding, topK).Scan(&postings).Error
	return postings, err
}
