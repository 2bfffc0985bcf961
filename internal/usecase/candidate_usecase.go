package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-candidate-feed/internal/domain"
	"go-candidate-feed/pkg/apperror"
	"go-candidate-feed/pkg/logger"
	"go-candidate-feed/pkg/validation"

	"github.com/go-playground/validator/v10"
)

const maxCategories = 10

type candidateUsecase struct {
	repo       domain.CandidateRepository
	categories domain.CategoryUsecase
	validate   *validator.Validate
	timeout    time.Duration
}

func NewCandidateUsecase(repo domain.CandidateRepository, categories domain.CategoryUsecase, validate *validator.Validate, timeout time.Duration) domain.CandidateUsecase {
	return &candidateUsecase{
		repo:       repo,
		categories: categories,
		validate:   validate,
		timeout:    timeout,
	}
}

func (u *candidateUsecase) GetCandidate(ctx context.Context, id string) (*domain.Resume, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperror.BadRequest("Candidate ID is required")
	}

	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	resume, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if resume == nil {
		return nil, apperror.NotFound("Candidate not found")
	}
	return resume, nil
}

func (u *candidateUsecase) GetOwnResume(ctx context.Context, userID string) (*domain.Resume, error) {
	if err := requireOwner(ctx, userID); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	resume, err := u.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if resume == nil {
		return nil, apperror.NotFound("Resume not found")
	}
	return resume, nil
}

// SaveResume writes the caller's resume. The ID always comes from the signed-in user.
func (u *candidateUsecase) SaveResume(ctx context.Context, resume *domain.Resume) (*domain.Resume, error) {
	ctxUserID := domain.UserIDFrom(ctx)
	if ctxUserID == "" {
		return nil, apperror.New(http.StatusUnauthorized, "User not authenticated", domain.ErrNotSignedIn)
	}
	resume.ID = ctxUserID
	resume.Categories = dedupe(resume.Categories)

	if err := u.validate.Struct(resume); err != nil {
		return nil, apperror.BadRequest(validation.Message(err))
	}

	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := u.repo.Upsert(ctx, resume); err != nil {
		return nil, err
	}
	logger.Log.Info("resume saved", "user_id", resume.ID, "categories", len(resume.Categories))
	return resume, nil
}

func (u *candidateUsecase) SetCategories(ctx context.Context, userID string, categories []string) error {
	if err := requireOwner(ctx, userID); err != nil {
		return err
	}

	categories = dedupe(categories)
	if len(categories) > maxCategories {
		return apperror.BadRequest(fmt.Sprintf("At most %d categories can be selected", maxCategories))
	}
	for _, c := range categories {
		if !u.categories.Exists(c) {
			return apperror.BadRequest(fmt.Sprintf("Unknown category: %s", c))
		}
	}

	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := u.repo.SetCategories(ctx, userID, categories); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Resume not found. Create your resume first.")
		}
		return err
	}
	return nil
}

func requireOwner(ctx context.Context, userID string) error {
	ctxUserID := domain.UserIDFrom(ctx)
	if ctxUserID == "" {
		return apperror.New(http.StatusUnauthorized, "User not authenticated", domain.ErrNotSignedIn)
	}
	if ctxUserID != userID {
		return apperror.Forbidden("You can only access your own resume")
	}
	return nil
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
