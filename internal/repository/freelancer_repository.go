package repository

import (
	"context"

	"github.com/fadilmartias/talent-match/internal/model"
	"gorm.io/gorm"
)

type FreelancerRepository struct {
	db *gorm.DB
}

func NewFreelancerRepository(db *gorm.DB) *FreelancerRepository {
	return &FreelancerRepository{db}
}

// CreateFreelancer inserts the profile together with its skills. Profiles are
// written by the member service; here it only backs test fixtures.
func (r *FreelancerRepository) CreateFreelancer(ctx context.Context, freelancer *model.Freelancer) error {
	return r.db.WithContext(ctx).Create(freelancer).Error
}

// UpdateFreelancer saves the profile columns and replaces its skill set.
// Test-only, like CreateFreelancer.
func (r *FreelancerRepository) UpdateFreelancer(ctx context.Context, freelancer *model.Freelancer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Skills").Save(freelancer).Error; err != nil {
			return err
		}
		return tx.Model(freelancer).Association("Skills").Replace(freelancer.Skills)
	})
}

// AddReview records one review. Reviews are written by the review service;
// in this repository it only backs test fixtures.
func (r *FreelancerRepository) AddReview(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}
