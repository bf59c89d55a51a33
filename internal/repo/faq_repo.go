// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the FAQ and
// Category models.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a record is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// List queries omit the file_data blob column; attachment bytes are only
// loaded by GetFAQFile, which serves the download endpoint.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateCategory inserts a new category with a UUID primary key.
func CreateCategory(ctx context.Context, db *gorm.DB, name string) (*domain.Category, error) {
	c := &domain.Category{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// ListCategories returns all categories ordered by name.
func ListCategories(ctx context.Context, db *gorm.DB) ([]domain.Category, error) {
	var out []domain.Category
	err := db.WithContext(ctx).Order("name asc").Find(&out).Error
	return out, err
}

// GetCategory fetches a category by ID, or ErrNotFound.
func GetCategory(ctx context.Context, db *gorm.DB, id string) (*domain.Category, error) {
	var c domain.Category
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCategoryByName fetches a category by its unique name, or ErrNotFound.
func GetCategoryByName(ctx context.Context, db *gorm.DB, name string) (*domain.Category, error) {
	var c domain.Category
	if err := db.WithContext(ctx).Where("name = ?", name).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateFAQ inserts a new FAQ row. The caller must have validated that the
// category exists; the FK constraint is the backstop.
func CreateFAQ(ctx context.Context, db *gorm.DB, f *domain.FAQ) (*domain.FAQ, error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	f.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

// ListFAQs returns all FAQ rows without the file_data blob, ordered by
// creation time ascending. An optional categoryID narrows the result.
func ListFAQs(ctx context.Context, db *gorm.DB, categoryID string) ([]domain.FAQ, error) {
	var out []domain.FAQ
	q := db.WithContext(ctx).Omit("file_data").Order("created_at asc")
	if categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}
	err := q.Find(&out).Error
	return out, err
}

// CountFAQs returns the total number of FAQ rows.
func CountFAQs(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.FAQ{}).Count(&total).Error
	return total, err
}

// GetFAQ fetches a single FAQ by ID without the file_data blob.
// Returns ErrNotFound if missing.
func GetFAQ(ctx context.Context, db *gorm.DB, id string) (*domain.FAQ, error) {
	var f domain.FAQ
	err := db.WithContext(ctx).Omit("file_data").Where("id = ?", id).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// GetFAQFile loads only the attachment metadata and bytes for a FAQ.
// Returns ErrNotFound when the FAQ does not exist or carries no file.
func GetFAQFile(ctx context.Context, db *gorm.DB, id string) (name string, data []byte, err error) {
	var f domain.FAQ
	err = db.WithContext(ctx).
		Select("file_name", "file_data").
		Where("id = ?", id).
		First(&f).Error
	if err != nil {
		return "", nil, err
	}
	if f.FileName == "" || len(f.FileData) == 0 {
		return "", nil, ErrNotFound
	}
	return f.FileName, f.FileData, nil
}

// UpdateFAQ applies the given column updates to a FAQ row.
// Returns ErrNotFound when no row matches.
func UpdateFAQ(ctx context.Context, db *gorm.DB, id string, updates map[string]any) error {
	res := db.WithContext(ctx).
		Model(&domain.FAQ{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteFAQ soft-deletes a FAQ row. Returns ErrNotFound when no row matches.
func DeleteFAQ(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.FAQ{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
