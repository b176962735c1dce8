package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
	"github.com/SAP-F-2025/interview-coach/internal/resumeparser"
	"github.com/SAP-F-2025/interview-coach/internal/storage"
	"github.com/SAP-F-2025/interview-coach/internal/validator"
	"github.com/google/uuid"
)

// MaxResumeSize is the largest accepted upload.
const MaxResumeSize = 5 << 20

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type resumeService struct {
	repo      repositories.Repository
	store     storage.ObjectStore
	events    EventService
	logger    *ServiceLogger
	validator *validator.Validator
	clock     clock
}

func NewResumeService(repo repositories.Repository, store storage.ObjectStore, events EventService, logger *slog.Logger, validator *validator.Validator) ResumeService {
	return &resumeService{
		repo:      repo,
		store:     store,
		events:    events,
		logger:    NewServiceLogger(logger, "resumes"),
		validator: validator,
	}
}

func (s *resumeService) List(ctx context.Context, filters repositories.ResumeFilters) ([]*models.Resume, int64, error) {
	filters.Search = strings.TrimSpace(filters.Search)
	resumes, total, err := s.repo.Resumes().List(ctx, filters)
	if err != nil {
		return nil, 0, repoError(err, nil, "list resumes")
	}
	return resumes, total, nil
}

func (s *resumeService) GetByID(ctx context.Context, id uint) (*models.Resume, error) {
	resume, err := s.repo.Resumes().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ErrResumeNotFound, "get resume")
	}
	return resume, nil
}

func (s *resumeService) Create(ctx context.Context, req *CreateResumeRequest) (resume *models.Resume, err error) {
	started := time.Now()
	defer func() { s.logger.LogOperation(ctx, "create", "resume", resumeID(resume), started, err) }()

	if err := validateRequest(s.validator, req, CreateResumeCodes); err != nil {
		return nil, err
	}

	userID := uint(*req.UserID)
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	resume = &models.Resume{
		UserID:         userID,
		FileURL:        strings.TrimSpace(req.FileURL),
		FileName:       strings.TrimSpace(req.FileName),
		ParsedData:     jsonColumn(req.ParsedData),
		SuggestedRoles: jsonColumn(req.SuggestedRoles),
		UploadedAt:     s.clock.now(),
	}
	if err := s.insert(ctx, resume); err != nil {
		return nil, err
	}
	return resume, nil
}

func (s *resumeService) Update(ctx context.Context, id uint, req *UpdateResumeRequest) (resume *models.Resume, err error) {
	started := time.Now()
	defer func() { s.logger.LogOperation(ctx, "update", "resume", id, started, err) }()

	if req.FileURL == nil && req.FileName == nil && len(req.ParsedData) == 0 && len(req.SuggestedRoles) == 0 {
		return nil, ErrNoFieldsToUpdate
	}
	if err := validateRequest(s.validator, req, UpdateResumeCodes); err != nil {
		return nil, err
	}

	resume, err = s.repo.Resumes().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ErrResumeNotFound, "get resume")
	}

	if req.FileURL != nil {
		resume.FileURL = strings.TrimSpace(*req.FileURL)
	}
	if req.FileName != nil {
		resume.FileName = strings.TrimSpace(*req.FileName)
	}
	if len(req.ParsedData) > 0 {
		resume.ParsedData = jsonColumn(req.ParsedData)
	}
	if len(req.SuggestedRoles) > 0 {
		resume.SuggestedRoles = jsonColumn(req.SuggestedRoles)
	}

	if err := s.repo.Resumes().Update(ctx, resume); err != nil {
		return nil, repoError(err, ErrResumeNotFound, "update resume")
	}
	return resume, nil
}

func (s *resumeService) Delete(ctx context.Context, id uint) (resume *models.Resume, err error) {
	started := time.Now()
	defer func() { s.logger.LogOperation(ctx, "delete", "resume", id, started, err) }()

	resume, err = s.repo.Resumes().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ErrResumeNotFound, "get resume")
	}
	if err := s.repo.Resumes().Delete(ctx, id); err != nil {
		return nil, repoError(err, ErrResumeNotFound, "delete resume")
	}
	return resume, nil
}

// Upload stores the file, extracts its text and records the parsed résumé.
func (s *resumeService) Upload(ctx context.Context, req *UploadResumeRequest) (resume *models.Resume, err error) {
	started := time.Now()
	defer func() { s.logger.LogOperation(ctx, "upload", "resume", resumeID(resume), started, err) }()

	if req.Body == nil {
		return nil, ErrMissingFile
	}
	if req.UserID == 0 {
		return nil, CreateResumeCodes.FromValidation(missingField("userId"))
	}
	if req.Size > MaxResumeSize {
		return nil, ErrFileTooLarge
	}

	format, err := resumeparser.DetectFormat(req.FileName, req.ContentType)
	if err != nil {
		return nil, ErrInvalidFileType
	}

	data, err := io.ReadAll(io.LimitReader(req.Body, MaxResumeSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) > MaxResumeSize {
		return nil, ErrFileTooLarge
	}
	if len(data) == 0 {
		return nil, ErrMissingFile
	}

	if err := s.ensureUser(ctx, req.UserID); err != nil {
		return nil, err
	}

	fileName := safeFileName(req.FileName)
	key := fmt.Sprintf("resumes/%d/%s-%s", req.UserID, uuid.NewString(), fileName)
	if err := s.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), format.ContentType()); err != nil {
		return nil, fmt.Errorf("failed to store resume file: %w", err)
	}
	fileURL, err := s.store.URL(ctx, key)
	if err != nil {
		s.cleanup(ctx, key)
		return nil, fmt.Errorf("failed to resolve resume URL: %w", err)
	}

	text, err := resumeparser.ExtractText(format, data)
	if err != nil {
		// The file is kept; a résumé without parsed text is still usable
		s.logger.Warn(ctx, "Failed to extract resume text", "file_name", fileName, "error", err)
	}
	analysis := resumeparser.Analyze(text)

	resume = &models.Resume{
		UserID:         req.UserID,
		FileURL:        fileURL,
		FileName:       fileName,
		ParsedData:     models.MustJSON(analysis.Parsed),
		SuggestedRoles: models.MustJSON(analysis.SuggestedRoles),
		UploadedAt:     s.clock.now(),
	}
	if err := s.insert(ctx, resume); err != nil {
		s.cleanup(ctx, key)
		return nil, err
	}

	s.events.ResumeUploaded(ctx, resume, analysis.SuggestedRoles)
	return resume, nil
}

func (s *resumeService) insert(ctx context.Context, resume *models.Resume) error {
	if err := s.repo.Resumes().Create(ctx, resume); err != nil {
		if errors.Is(err, repositories.ErrForeignKeyViolation) {
			return ErrResumeForeignKey
		}
		return repoError(err, nil, "create resume")
	}
	return nil
}

func (s *resumeService) ensureUser(ctx context.Context, userID uint) error {
	exists, err := s.repo.Users().ExistsByID(ctx, userID)
	if err != nil {
		return repoError(err, nil, "check user")
	}
	if !exists {
		return ErrUserRefNotFound
	}
	return nil
}

func (s *resumeService) cleanup(ctx context.Context, key string) {
	if err := s.store.Delete(context.WithoutCancel(ctx), key); err != nil {
		s.logger.Warn(ctx, "Failed to remove orphaned resume file", "key", key, "error", err)
	}
}

func safeFileName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.Trim(unsafeFileChars.ReplaceAllString(base, "_"), "_.")
	if base == "" {
		return "resume"
	}
	return base
}

func resumeID(r *models.Resume) uint {
	if r == nil {
		return 0
	}
	return r.ID
}
