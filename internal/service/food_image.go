package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wastetracker/internal/metrics"
	"wastetracker/internal/model"
	"wastetracker/internal/recognition"
	"wastetracker/internal/repository"
	"wastetracker/internal/storage"
)

const (
	imagePrefix     = "images"
	presignExpiry   = 15 * time.Minute
	defaultMaxBytes = 5 << 20

	// Every listed image gets its own presigned URL, so pages are capped.
	defaultImageLimit = 10
	maxImageLimit     = 100
)

// FileInput is an uploaded file as received from the client.
type FileInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// Analysis is the outcome of storing and recognizing one photo.
type Analysis struct {
	Image  *model.FoodImage
	Result recognition.Result
}

// Expiry renders the shelf-life estimate, e.g. "Best before 3 days".
func (a *Analysis) Expiry() string {
	return recognition.ExpiryText(a.Image.ExpiryDays)
}

// Message is the one-line summary shown to users.
func (a *Analysis) Message() string {
	if !a.Result.Known() {
		return "I couldn't recognize the food in this photo. Try a clearer picture."
	}
	name := a.Result.FoodName
	if a.Result.Category != "" {
		name = fmt.Sprintf("%s (%s)", name, a.Result.Category)
	}
	return fmt.Sprintf("Looks like %s. %s.", name, a.Expiry())
}

// ImageView is a stored image with a temporary download link.
type ImageView struct {
	model.FoodImage
	URL string `json:"url"`
}

type ImageListResult struct {
	Items []ImageView `json:"data"`
	Total int         `json:"total"`
}

// FoodImageService runs uploaded photos through storage and recognition.
type FoodImageService interface {
	// Analyze stores the photo, recognizes the food in it and saves the record.
	// The stored object is removed again when recognition or the save fails.
	Analyze(ctx context.Context, f FileInput) (*Analysis, error)

	List(ctx context.Context, limit, offset int) (*ImageListResult, error)
	Get(ctx context.Context, id string) (*ImageView, error)
}

type foodImageService struct {
	store      storage.Storage
	repo       repository.FoodImageRepository
	recognizer recognition.Recognizer
	maxBytes   int64
	metrics    *metrics.Domain
	log        *zap.Logger
}

// NewFoodImageService constructs a FoodImageService. maxBytes <= 0 means 5 MiB.
func NewFoodImageService(store storage.Storage, repo repository.FoodImageRepository, rec recognition.Recognizer, maxBytes int64, m *metrics.Domain, log *zap.Logger) FoodImageService {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &foodImageService{
		store:      store,
		repo:       repo,
		recognizer: rec,
		maxBytes:   maxBytes,
		metrics:    m,
		log:        log.With(zap.String("component", "food_image_service")),
	}
}

func (s *foodImageService) Analyze(ctx context.Context, f FileInput) (*Analysis, error) {
	if f.Reader == nil {
		return nil, ErrReaderNil
	}
	if f.Filename == "" || f.Size == 0 {
		return nil, ErrEmptyFile
	}
	if f.Size > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(f.Reader, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	contentType := imageContentType(f.ContentType, data)
	if contentType == "" {
		return nil, ErrUnsupportedMediaType
	}

	ext := strings.ToLower(filepath.Ext(f.Filename))
	genName := uuid.New().String() + ext
	key := filepath.ToSlash(filepath.Join(imagePrefix, genName))

	objInfo, err := s.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": f.Filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	provider := s.recognizer.Name()
	res, err := s.recognizer.Recognize(ctx, data)
	if err != nil {
		s.metrics.ImageAnalyzed(provider, "error")
		s.log.Warn("recognition failed", zap.String("provider", provider), zap.String("key", key), zap.Error(err))
		return nil, s.rollback(ctx, key, fmt.Errorf("%w: %v", ErrRecognitionFailed, err))
	}
	outcome := "recognized"
	if !res.Known() {
		outcome = "unknown"
	}
	s.metrics.ImageAnalyzed(provider, outcome)

	img := &model.FoodImage{
		ID:          uuid.New().String(),
		Filename:    genName,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: contentType,
		FoodName:    res.FoodName,
		Category:    res.Category,
		ExpiryDays:  res.ExpiryDays(),
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, img)
	if err != nil {
		return nil, s.rollback(ctx, key, fmt.Errorf("db save failed: %w", err))
	}
	return &Analysis{Image: stored, Result: res}, nil
}

// rollback deletes an object whose record will never exist and returns cause.
func (s *foodImageService) rollback(ctx context.Context, key string, cause error) error {
	if delErr := s.store.Delete(ctx, key); delErr != nil {
		return fmt.Errorf("%w; rollback delete failed: %v", cause, delErr)
	}
	return cause
}

// imageContentType returns the image media type of the upload, or "" when it
// is not an image. The declared type wins unless it is missing or generic.
func imageContentType(declared string, data []byte) string {
	ct := strings.ToLower(strings.TrimSpace(declared))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(data)
	}
	if !strings.HasPrefix(ct, "image/") {
		return ""
	}
	return ct
}

func (s *foodImageService) List(ctx context.Context, limit, offset int) (*ImageListResult, error) {
	switch {
	case limit <= 0:
		limit = defaultImageLimit
	case limit > maxImageLimit:
		limit = maxImageLimit
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	items := make([]ImageView, 0, len(res.Items))
	for _, img := range res.Items {
		v, err := s.view(ctx, img)
		if err != nil {
			return nil, err
		}
		items = append(items, *v)
	}
	return &ImageListResult{Items: items, Total: res.Total}, nil
}

func (s *foodImageService) Get(ctx context.Context, id string) (*ImageView, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	img, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.view(ctx, *img)
}

func (s *foodImageService) view(ctx context.Context, img model.FoodImage) (*ImageView, error) {
	url, err := s.store.PresignGet(ctx, img.StoragePath, presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign %s: %w", img.StoragePath, err)
	}
	return &ImageView{FoodImage: img, URL: url}, nil
}
