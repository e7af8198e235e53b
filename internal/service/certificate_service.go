package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campuslink/portal-api/internal/dto"
	"github.com/campuslink/portal-api/internal/models"
	"github.com/campuslink/portal-api/internal/observability"
	"github.com/campuslink/portal-api/internal/repository"
)

var (
	// ErrCertificateNotFound indicates the request id is unknown.
	ErrCertificateNotFound = errors.New("certificate request not found")
	// ErrAlreadyDecided indicates the request reached a terminal status
	// before this decision landed.
	ErrAlreadyDecided = errors.New("certificate request already decided")
	// ErrDocumentRequired indicates a submission arrived without its
	// supporting document.
	ErrDocumentRequired = errors.New("supporting document is required")
	// ErrDocumentTooLarge indicates the uploaded document exceeds the
	// configured size limit.
	ErrDocumentTooLarge = errors.New("supporting document exceeds size limit")
	// ErrUnsupportedDocument indicates the uploaded document is not one of
	// the accepted content types.
	ErrUnsupportedDocument = errors.New("unsupported document type")
)

// DocumentStore abstracts the object storage collaborator: upload bytes
// under a collision-resistant key, redeem a key for a short-lived URL.
type DocumentStore interface {
	Upload(ctx context.Context, name string, reader io.Reader, size int64) (string, error)
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// CertificateService drives the request lifecycle for one certificate
// kind: students submit, teachers decide, decided requests stay decided.
type CertificateService interface {
	List(ctx context.Context, actor Actor) ([]dto.CertificateResponse, error)
	Submit(ctx context.Context, actor Actor, payload dto.CertificateCreateRequest, file *multipart.FileHeader) (dto.CertificateResponse, error)
	Decide(ctx context.Context, actor Actor, id uint, payload dto.CertificateDecisionRequest) (dto.CertificateResponse, error)
	DocumentLink(ctx context.Context, actor Actor, id uint) (dto.DocumentLinkResponse, error)
}

// CertificateOptions tunes upload and link behaviour.
type CertificateOptions struct {
	MaxDocumentBytes int64
	LinkTTL          time.Duration
}

type certificateService struct {
	repo      repository.CertificateRepository
	kind      string
	validator *validator.Validate
	store     DocumentStore
	maxBytes  int64
	linkTTL   time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewCertificateService builds a lifecycle service for the given kind.
func NewCertificateService(repo repository.CertificateRepository, kind string, validate *validator.Validate, store DocumentStore, opts CertificateOptions, logger zerolog.Logger) CertificateService {
	maxBytes := opts.MaxDocumentBytes
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	linkTTL := opts.LinkTTL
	if linkTTL <= 0 {
		linkTTL = 60 * time.Second
	}

	return &certificateService{
		repo:      repo,
		kind:      kind,
		validator: validate,
		store:     store,
		maxBytes:  maxBytes,
		linkTTL:   linkTTL,
		logger:    logger.With().Str("component", "certificate_service").Str("kind", kind).Logger(),
		now:       time.Now,
	}
}

func (s *certificateService) List(ctx context.Context, actor Actor) ([]dto.CertificateResponse, error) {
	var (
		requests []models.CertificateRequest
		err      error
	)

	switch actor.Role {
	case models.RoleTeacher:
		requests, err = s.repo.ListAll(ctx)
	case models.RoleStudent:
		requests, err = s.repo.ListByStudent(ctx, actor.ID)
	default:
		return nil, ErrRoleNotAllowed
	}
	if err != nil {
		return nil, err
	}

	return dto.NewCertificateResponseSlice(requests), nil
}

func (s *certificateService) Submit(ctx context.Context, actor Actor, payload dto.CertificateCreateRequest, file *multipart.FileHeader) (dto.CertificateResponse, error) {
	if !actor.IsStudent() {
		return dto.CertificateResponse{}, ErrRoleNotAllowed
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.CertificateResponse{}, err
	}

	if file == nil {
		return dto.CertificateResponse{}, ErrDocumentRequired
	}
	if file.Size > s.maxBytes {
		return dto.CertificateResponse{}, ErrDocumentTooLarge
	}
	if err := validateDocumentType(file); err != nil {
		return dto.CertificateResponse{}, err
	}

	reader, err := file.Open()
	if err != nil {
		return dto.CertificateResponse{}, fmt.Errorf("failed to open document: %w", err)
	}
	defer reader.Close()

	key, err := s.store.Upload(ctx, file.Filename, reader, file.Size)
	if err != nil {
		return dto.CertificateResponse{}, fmt.Errorf("failed to store document: %w", err)
	}

	request := models.CertificateRequest{
		StudentID:    actor.ID,
		StudentName:  actor.Name,
		Purpose:      payload.Purpose,
		Status:       models.CertificateStatusPending,
		DocumentPath: key,
	}

	if err := s.repo.Create(ctx, &request); err != nil {
		return dto.CertificateResponse{}, err
	}

	// Return the authoritative row rather than the locally assembled one.
	created, err := s.repo.GetByID(ctx, request.ID)
	if err != nil {
		return dto.CertificateResponse{}, err
	}

	s.logger.Info().
		Uint("request_id", created.ID).
		Uint("student_id", actor.ID).
		Msg("certificate request submitted")

	return dto.NewCertificateResponse(created), nil
}

func (s *certificateService) Decide(ctx context.Context, actor Actor, id uint, payload dto.CertificateDecisionRequest) (dto.CertificateResponse, error) {
	if !actor.IsTeacher() {
		return dto.CertificateResponse{}, ErrRoleNotAllowed
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.CertificateResponse{}, err
	}

	affected, err := s.repo.Decide(ctx, id, payload.Status, payload.Comments, actor.ID, s.now())
	if err != nil {
		return dto.CertificateResponse{}, err
	}

	if affected == 0 {
		// The guarded update matched nothing: distinguish an unknown id
		// from a request another teacher decided first.
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.CertificateResponse{}, ErrCertificateNotFound
			}
			return dto.CertificateResponse{}, err
		}
		return dto.CertificateResponse{}, ErrAlreadyDecided
	}

	decided, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.CertificateResponse{}, err
	}

	observability.CertificateDecisions().WithLabelValues(s.kind, payload.Status).Inc()
	s.logger.Info().
		Uint("request_id", id).
		Uint("teacher_id", actor.ID).
		Str("decision", payload.Status).
		Msg("certificate request decided")

	return dto.NewCertificateResponse(decided), nil
}

func (s *certificateService) DocumentLink(ctx context.Context, actor Actor, id uint) (dto.DocumentLinkResponse, error) {
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DocumentLinkResponse{}, ErrCertificateNotFound
		}
		return dto.DocumentLinkResponse{}, err
	}

	// Students may only redeem documents on their own requests; an
	// unknown-id answer avoids confirming the request exists.
	if actor.IsStudent() && request.StudentID != actor.ID {
		return dto.DocumentLinkResponse{}, ErrCertificateNotFound
	}
	if request.DocumentPath == "" {
		return dto.DocumentLinkResponse{}, ErrCertificateNotFound
	}

	url, err := s.store.SignedURL(ctx, request.DocumentPath, s.linkTTL)
	if err != nil {
		return dto.DocumentLinkResponse{}, fmt.Errorf("failed to sign document url: %w", err)
	}

	return dto.DocumentLinkResponse{
		URL:       url,
		ExpiresAt: s.now().Add(s.linkTTL),
	}, nil
}

func validateDocumentType(file *multipart.FileHeader) error {
	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}
	defer reader.Close()

	mime, err := mimetype.DetectReader(reader)
	if err != nil {
		return fmt.Errorf("failed to detect document type: %w", err)
	}

	allowed := []string{"application/pdf", "image/png", "image/jpeg"}
	for _, a := range allowed {
		if mime.Is(a) {
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrUnsupportedDocument, mime.String())
}
