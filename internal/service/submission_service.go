package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/learnify-app/learnify-api/internal/dto"
	"github.com/learnify-app/learnify-api/internal/models"
	"github.com/learnify-app/learnify-api/internal/observability"
	"github.com/learnify-app/learnify-api/internal/repository"
)

var (
	// ErrSubmissionNotFound indicates a submission could not be found.
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrFileRequired indicates a screenshot submission arrived without a file.
	ErrFileRequired = errors.New("file is required for screenshot submission type")
	// ErrGithubURLRequired indicates a repo submission arrived without a URL.
	ErrGithubURLRequired = errors.New("github url is required for github_repo submission type")
	// ErrFileTooLarge indicates the upload exceeded the configured limit.
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")
	// ErrFileTypeNotAllowed indicates the MIME type is not permitted.
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	// ErrStorageFailure indicates the blob store rejected an upload.
	ErrStorageFailure = errors.New("file upload to storage failed")
)

// allowedUploadTypes lists the MIME types accepted for submission files:
// common image formats plus pdf, plain text and Word documents.
var allowedUploadTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"application/pdf",
	"text/plain",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// FileStorage abstracts the blob store used for submission files.
type FileStorage interface {
	Upload(ctx context.Context, ownerID, name string, reader io.Reader) (string, error)
	PublicURL(path string) string
	Delete(ctx context.Context, path string) error
}

// SubmissionService orchestrates the submission lifecycle.
type SubmissionService interface {
	Create(ctx context.Context, payload dto.SubmissionCreateRequest, file *multipart.FileHeader) (dto.SubmissionResponse, error)
	List(ctx context.Context, filter dto.SubmissionListFilter) (dto.SubmissionListResponse, error)
	Get(ctx context.Context, id uint) (dto.SubmissionResponse, error)
	Delete(ctx context.Context, id uint) error
}

type submissionService struct {
	submissions repository.SubmissionRepository
	students    repository.StudentRepository
	validator   *validator.Validate
	storage     FileStorage
	cache       *redis.Client
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
	maxSize     int64
	tracer      trace.Tracer
}

// NewSubmissionService constructs a SubmissionService instance. The cache
// client may be nil; it is only used to drop the cached leaderboard when a
// submission disappears.
func NewSubmissionService(subRepo repository.SubmissionRepository, studentRepo repository.StudentRepository, validate *validator.Validate, storage FileStorage, maxSizeMB int, cache *redis.Client, logger zerolog.Logger) SubmissionService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &submissionService{
		submissions: subRepo,
		students:    studentRepo,
		validator:   validate,
		storage:     storage,
		cache:       cache,
		sanitizer:   bluemonday.UGCPolicy(),
		logger:      logger.With().Str("component", "submission_service").Logger(),
		maxSize:     int64(maxSizeMB) * 1024 * 1024,
		tracer:      otel.Tracer("github.com/learnify-app/learnify-api/internal/service/submission"),
	}
}

func (s *submissionService) Create(ctx context.Context, payload dto.SubmissionCreateRequest, file *multipart.FileHeader) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	switch payload.SubmissionType {
	case models.SubmissionTypeScreenshot:
		if file == nil {
			return dto.SubmissionResponse{}, ErrFileRequired
		}
	case models.SubmissionTypeGithubRepo:
		if strings.TrimSpace(payload.GithubURL) == "" {
			return dto.SubmissionResponse{}, ErrGithubURLRequired
		}
	}

	if file != nil {
		if file.Size > s.maxSize {
			observability.UploadRejected().WithLabelValues("size").Inc()
			return dto.SubmissionResponse{}, ErrFileTooLarge
		}
		if err := s.validateFileType(file); err != nil {
			return dto.SubmissionResponse{}, err
		}
	}

	student, err := s.students.Resolve(ctx, payload.StudentID, payload.FullName)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	submission := models.Submission{
		StudentID:      student.StudentID,
		StudentRef:     student.ID,
		SubmissionType: payload.SubmissionType,
		Title:          strings.TrimSpace(payload.Title),
		Description:    s.sanitizer.Sanitize(payload.Description),
		GithubURL:      strings.TrimSpace(payload.GithubURL),
		LessonID:       strings.TrimSpace(payload.LessonID),
		Tags:           payload.Tags,
		ProjectType:    payload.ProjectType,
		IsProject:      payload.IsProject,
	}

	if submission.ProjectType == "" {
		submission.ProjectType = models.ProjectTypeRegular
	}

	// The blob goes out first so a storage failure aborts the whole create
	// without leaving an orphan submission row.
	if file != nil {
		path, err := s.uploadFile(ctx, student.StudentID, file)
		if err != nil {
			return dto.SubmissionResponse{}, err
		}
		submission.FilePath = path
		submission.FileName = file.Filename
		size := file.Size
		submission.FileSize = &size
		submission.MimeType = file.Header.Get("Content-Type")
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		if submission.FilePath != "" {
			if cleanupErr := s.storage.Delete(ctx, submission.FilePath); cleanupErr != nil {
				s.logger.Warn().Err(cleanupErr).Str("file_path", submission.FilePath).Msg("failed to clean up blob after aborted create")
			}
		}
		return dto.SubmissionResponse{}, err
	}

	created, err := s.submissions.GetByID(ctx, submission.ID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().
		Uint("submission_id", created.ID).
		Str("student_id", created.StudentID).
		Str("submission_type", created.SubmissionType).
		Msg("submission created")

	return dto.NewSubmissionResponse(created, s.storage.PublicURL(created.FilePath)), nil
}

func (s *submissionService) List(ctx context.Context, filter dto.SubmissionListFilter) (dto.SubmissionListResponse, error) {
	if err := s.validator.Struct(filter); err != nil {
		return dto.SubmissionListResponse{}, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	repoFilter := repository.SubmissionFilter{
		StudentID:      filter.StudentID,
		SubmissionType: filter.SubmissionType,
		LessonID:       filter.LessonID,
		ProjectType:    filter.ProjectType,
		IsProject:      filter.IsProject,
		Tags:           filter.Tags,
		Limit:          limit,
		Offset:         filter.Offset,
	}

	submissions, total, err := s.submissions.List(ctx, repoFilter)
	if err != nil {
		return dto.SubmissionListResponse{}, err
	}

	responses := make([]dto.SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, dto.NewSubmissionResponse(submission, s.storage.PublicURL(submission.FilePath)))
	}

	return dto.SubmissionListResponse{
		Submissions: responses,
		Total:       total,
		Showing: dto.SubmissionListShowing{
			Limit:                limit,
			Offset:               filter.Offset,
			StudentIDFilter:      filter.StudentID,
			SubmissionTypeFilter: filter.SubmissionType,
			LessonIDFilter:       filter.LessonID,
			ProjectTypeFilter:    filter.ProjectType,
		},
	}, nil
}

func (s *submissionService) Get(ctx context.Context, id uint) (dto.SubmissionResponse, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	return dto.NewSubmissionResponse(submission, s.storage.PublicURL(submission.FilePath)), nil
}

func (s *submissionService) Delete(ctx context.Context, id uint) error {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		return err
	}

	// Blob removal is best-effort; losing the asset must not block the delete.
	if submission.HasFile() {
		if err := s.storage.Delete(ctx, submission.FilePath); err != nil {
			s.logger.Warn().Err(err).Uint("submission_id", id).Str("file_path", submission.FilePath).Msg("failed to delete submission blob")
		}
	}

	if err := s.submissions.Delete(ctx, id); err != nil {
		return err
	}

	// The deleted row must not linger on the cached leaderboard.
	invalidateLeaderboardCache(ctx, s.cache, s.logger)

	s.logger.Info().Uint("submission_id", id).Msg("submission deleted")

	return nil
}

func (s *submissionService) uploadFile(ctx context.Context, ownerID string, file *multipart.FileHeader) (string, error) {
	ctx, span := s.tracer.Start(ctx, "submission.upload")
	defer span.End()

	span.SetAttributes(
		attribute.String("upload.original_name", strings.TrimSpace(file.Filename)),
		attribute.Int64("upload.request_size", file.Size),
	)

	reader, err := file.Open()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "open failed")
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	path, err := s.storage.Upload(ctx, ownerID, file.Filename, reader)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upload failed")
		s.logger.Error().Err(err).Str("student_id", ownerID).Msg("blob upload failed")
		return "", fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	return path, nil
}

func (s *submissionService) validateFileType(file *multipart.FileHeader) error {
	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	mime, err := mimetype.DetectReader(reader)
	if err != nil {
		return fmt.Errorf("failed to detect file type: %w", err)
	}

	for _, allowed := range allowedUploadTypes {
		if mime.Is(allowed) {
			return nil
		}
	}

	observability.UploadRejected().WithLabelValues("type").Inc()

	return fmt.Errorf("%w: %s", ErrFileTypeNotAllowed, mime.String())
}
