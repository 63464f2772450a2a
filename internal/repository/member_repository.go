package repository

import (
	"context"

	"github.com/fadilmartias/talent-match/internal/model"
	"gorm.io/gorm"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db}
}

// CreateMember inserts a member. Canonical writes belong to the owning
// service; in this repository it only backs test fixtures.
func (r *MemberRepository) CreateMember(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// UpdateMember saves every column of member. Only tests call it, to stand in
// for the owning service when checking index refresh.
func (r *MemberRepository) UpdateMember(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *MemberRepository) FindMemberByID(ctx context.Context, id uint) (*model.Member, error) {
	var m model.Member
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	return &m, err
}
