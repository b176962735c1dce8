package postgres

import (
	"context"
	"strings"

	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
	"gorm.io/gorm"
)

type UserPostgreSQL struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &UserPostgreSQL{db: db}
}

func (u *UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	return translateError(u.db.WithContext(ctx).Create(user).Error)
}

func (u *UserPostgreSQL) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (u *UserPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (u *UserPostgreSQL) GetByIDs(ctx context.Context, ids []uint) ([]*models.User, error) {
	var users []*models.User
	if len(ids) == 0 {
		return users, nil
	}
	if err := u.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, translateError(err)
	}
	return users, nil
}

func (u *UserPostgreSQL) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := u.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, translateError(err)
}

func (u *UserPostgreSQL) Update(ctx context.Context, user *models.User) error {
	return translateError(u.db.WithContext(ctx).Save(user).Error)
}

func (u *UserPostgreSQL) Delete(ctx context.Context, id uint) error {
	return deleteByID(u.db.WithContext(ctx), &models.User{}, id)
}

func (u *UserPostgreSQL) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := u.db.WithContext(ctx).Model(&models.User{})
	query = u.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	query = applyPagination(query.Order("created_at DESC, id DESC"), filters.Limit, filters.Offset)
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, translateError(err)
	}

	return users, total, nil
}

func (u *UserPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	err := u.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, translateError(err)
}

func (u *UserPostgreSQL) applyFilters(query *gorm.DB, filters repositories.UserFilters) *gorm.DB {
	if search := strings.TrimSpace(filters.Search); search != "" {
		pattern := likePattern(strings.ToLower(search))
		query = query.Where("LOWER(email) LIKE ? OR LOWER(full_name) LIKE ?", pattern, pattern)
	}
	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}
	return query
}
