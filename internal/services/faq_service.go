// Package services – FAQService
//
// This file implements FAQ and category management: the admin CRUD surface,
// the category invariant (every FAQ must reference an existing category), and
// the cache-invalidation hook every mutation must fire so the matcher never
// serves stale results.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/domain"
	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/repo"
)

// FAQInput carries the writable fields of a FAQ.
type FAQInput struct {
	Question   string
	Answer     string
	ImageURL   string
	VideoURL   string
	FileName   string
	FileData   []byte
	CategoryID string
}

// FAQService owns FAQ and category persistence plus matcher-cache
// invalidation. Invalidate is called after every successful mutation; leave
// it nil when no cache is configured.
type FAQService struct {
	DB         *gorm.DB
	Invalidate func()
}

// NewFAQService constructs a FAQService. invalidate may be nil.
func NewFAQService(db *gorm.DB, invalidate func()) *FAQService {
	return &FAQService{DB: db, Invalidate: invalidate}
}

func (s *FAQService) invalidate() {
	if s.Invalidate != nil {
		s.Invalidate()
	}
}

// Create validates the category reference and inserts a new FAQ.
func (s *FAQService) Create(ctx context.Context, in FAQInput) (*domain.FAQ, error) {
	if strings.TrimSpace(in.Question) == "" || strings.TrimSpace(in.Answer) == "" {
		return nil, errors.New("question and answer are required")
	}
	if _, err := repo.GetCategory(ctx, s.DB, in.CategoryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	faq, err := repo.CreateFAQ(ctx, s.DB, &domain.FAQ{
		Question:   strings.TrimSpace(in.Question),
		Answer:     in.Answer,
		ImageURL:   in.ImageURL,
		VideoURL:   in.VideoURL,
		FileName:   in.FileName,
		FileData:   in.FileData,
		CategoryID: in.CategoryID,
	})
	if err != nil {
		return nil, err
	}
	s.invalidate()
	return faq, nil
}

// Update applies the non-empty fields of in to an existing FAQ.
func (s *FAQService) Update(ctx context.Context, id string, in FAQInput) error {
	updates := map[string]any{}
	if q := strings.TrimSpace(in.Question); q != "" {
		updates["question"] = q
	}
	if in.Answer != "" {
		updates["answer"] = in.Answer
	}
	if in.ImageURL != "" {
		updates["image_url"] = in.ImageURL
	}
	if in.VideoURL != "" {
		updates["video_url"] = in.VideoURL
	}
	if in.FileName != "" {
		updates["file_name"] = in.FileName
		updates["file_data"] = in.FileData
	}
	if in.CategoryID != "" {
		if _, err := repo.GetCategory(ctx, s.DB, in.CategoryID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		updates["category_id"] = in.CategoryID
	}
	if len(updates) == 0 {
		return nil
	}
	if err := repo.UpdateFAQ(ctx, s.DB, id, updates); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrFAQNotFound
		}
		return err
	}
	s.invalidate()
	return nil
}

// Delete removes a FAQ.
func (s *FAQService) Delete(ctx context.Context, id string) error {
	if err := repo.DeleteFAQ(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrFAQNotFound
		}
		return err
	}
	s.invalidate()
	return nil
}

// Get fetches one FAQ (without attachment bytes).
func (s *FAQService) Get(ctx context.Context, id string) (*domain.FAQ, error) {
	faq, err := repo.GetFAQ(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrFAQNotFound
	}
	return faq, err
}

// List returns FAQs, optionally narrowed to one category.
func (s *FAQService) List(ctx context.Context, categoryID string) ([]domain.FAQ, error) {
	return repo.ListFAQs(ctx, s.DB, categoryID)
}

// File returns the attachment name and bytes for download.
func (s *FAQService) File(ctx context.Context, id string) (string, []byte, error) {
	name, data, err := repo.GetFAQFile(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return "", nil, ErrFileNotFound
	}
	return name, data, err
}

// CreateCategory inserts a new category, rejecting duplicate names.
func (s *FAQService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("category name is required")
	}
	return repo.CreateCategory(ctx, s.DB, name)
}

// Categories lists all categories.
func (s *FAQService) Categories(ctx context.Context) ([]domain.Category, error) {
	return repo.ListCategories(ctx, s.DB)
}

// ResolveCategory finds a category by name, creating it when missing. Bulk
// import uses this so rows can name categories instead of carrying ids.
func (s *FAQService) ResolveCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNotFound
	}
	cat, err := repo.GetCategoryByName(ctx, s.DB, name)
	if err == nil {
		return cat, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	return repo.CreateCategory(ctx, s.DB, name)
}
