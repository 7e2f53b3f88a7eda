package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wastetracker/internal/model"
	"wastetracker/internal/recognition"
	recMocks "wastetracker/internal/recognition/mocks"
	"wastetracker/internal/repository"
	repoMocks "wastetracker/internal/repository/mocks"
	"wastetracker/internal/storage"
	storeMocks "wastetracker/internal/storage/mocks"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestFoodImageService_Analyze(t *testing.T) {
	ctx := context.Background()
	apple := recognition.Result{FoodName: "Apple", Category: "Fruit", Labels: []string{"Apple", "Fruit"}, Confidence: 97}

	tests := []struct {
		name       string
		file       func() FileInput
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockFoodImageRepository, mRec *recMocks.MockRecognizer)
		wantErr    error
		wantErrMsg string
		check      func(t *testing.T, a *Analysis)
	}{
		{
			name: "happy path",
			file: func() FileInput {
				return FileInput{Reader: bytes.NewReader(pngHeader), Filename: "Apple.PNG", ContentType: "image/png", Size: int64(len(pngHeader))}
			},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockFoodImageRepository, mRec *recMocks.MockRecognizer) {
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "images/") && strings.HasSuffix(key, ".png")
				}), mock.Anything, storage.PutObjectOptions{
					Size:        int64(len(pngHeader)),
					ContentType: "image/png",
					Metadata:    map[string]string{"original-filename": "Apple.PNG"},
				}).Return(nil, nil)
				mRec.On("Name").Return("rekognition")
				mRec.On("Recognize", ctx, pngHeader).Return(apple, nil)
				mRepo.On("Create", ctx, mock.MatchedBy(func(img *model.FoodImage) bool {
					return img.FoodName == "Apple" &&
						img.Category == "Fruit" &&
						img.ExpiryDays == 3 &&
						strings.HasPrefix(img.StoragePath, "images/") &&
						img.ContentType == "image/png"
				})).Return(func(_ context.Context, img *model.FoodImage) *model.FoodImage { return img }, nil)
			},
			check: func(t *testing.T, a *Analysis) {
				assert.Equal(t, "Best before 3 days", a.Expiry())
				assert.Equal(t, "Looks like Apple (Fruit). Best before 3 days.", a.Message())
			},
		},
		{
			name: "generic content type is sniffed",
			file: func() FileInput {
				return FileInput{Reader: bytes.NewReader(pngHeader), Filename: "photo", ContentType: "application/octet-stream", Size: int64(len(pngHeader))}
			},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockFoodImageRepository, mRec *recMocks.MockRecognizer) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
					return opt.ContentType == "image/png"
				})).Return(nil, nil)
				mRec.On("Name").Return("none")
				mRec.On("Recognize", ctx, mock.Anything).Return(recognition.Result{FoodName: recognition.UnknownFood}, nil)
				mRepo.On("Create", ctx, mock.Anything).Return(func(_ context.Context, img *model.FoodImage) *model.FoodImage { return img }, nil)
			},
			check: func(t *testing.T, a *Analysis) {
				assert.Equal(t, 5, a.Image.ExpiryDays)
				assert.Equal(t, "I couldn't recognize the food in this photo. Try a clearer picture.", a.Message())
			},
		},
		{
			name:       "nil reader",
			file:       func() FileInput { return FileInput{Filename: "a.png", Size: 1} },
			setupMocks: func(*storeMocks.MockStorage, *repoMocks.MockFoodImageRepository, *recMocks.MockRecognizer) {},
			wantErr:    ErrReaderNil,
		},
		{
			name: "empty filename",
			file: func() FileInput {
				return FileInput{Reader: bytes.NewReader(pngHeader), ContentType: "image/png", Size: 5}
			},
			setupMocks: func(*storeMocks.MockStorage, *repoMocks.MockFoodImageRepository, *recMocks.MockRecognizer) {},
			wantErr:    ErrEmptyFile,
		},
		{
			name: "zero size",
			file: func() FileInput {
				return FileInput{Reader: bytes.NewReader(nil), Filename: "a.png", ContentType: "image/png"}
			},
			setupMocks: func(*storeMocks.MockStorage, *repoMocks.MockFoodImageRepository, *recMocks.MockRecognizer) {},
			wantErr:    ErrEmptyFile,
		},
		{
			name: "declared size too large",
			file: func() FileInput {
				return FileInput{Reader: bytes.NewReader(pngHeader), Filename: "a.png", ContentType: "image/png", Size: 1 << 30}
			},
			setupMocks: func(*storeMocks.MockStorage, *repoMocks.MockFoodImageRepository, *recMocks.MockRecognizer) {},
			wantErr:    ErrFileTooLarge,
		},
		{
			name: "body larger than declared size",
			file: func() FileInput {
				return FileInput{Reader: bytes.NewReader(make([]byte, 2048)), Filename: "a.png", ContentType: "image/png", Size: 10}
			},
			setupMocks: func(*storeMocks.MockStorage, *repoMocks.MockFoodImageRepository, *recMocks.MockRecognizer) {},
			wantErr:    ErrFileTooLarge,
		},
		{
			name: "not an image",
			file: func() FileInput {
				return FileInput{Reader: strings.NewReader("hello world"), Filename: "notes.txt", ContentType: "text/plain", Size: 11}
			},
			setupMocks: func(*storeMocks.MockStorage, *repoMocks.MockFoodImageRepository, *recMocks.MockRecognizer) {},
			wantErr:    ErrUnsupportedMediaType,
		},
		{
			name: "storage error",
			file: func() FileInput {
				return FileInput{Reader: bytes.NewReader(pngHeader), Filename: "a.png", ContentType: "image/png", Size: int64(len(pngHeader))}
			},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockFoodImageRepository, mRec *recMocks.MockRecognizer) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, errors.New("storage fail"))
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name: "recognition error rolls back",
			file: func() FileInput {
				return FileInput{Reader: bytes.NewReader(pngHeader), Filename: "a.png", ContentType: "image/png", Size: int64(len(pngHeader))}
			},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockFoodImageRepository, mRec *recMocks.MockRecognizer) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
				mRec.On("Name").Return("rekognition")
				mRec.On("Recognize", ctx, mock.Anything).Return(recognition.Result{}, errors.New("throttled"))
				mStore.On("Delete", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "images/")
				})).Return(nil)
			},
			wantErr: ErrRecognitionFailed,
		},
		{
			name: "repository error with successful rollback",
			file: func() FileInput {
				return FileInput{Reader: bytes.NewReader(pngHeader), Filename: "a.png", ContentType: "image/png", Size: int64(len(pngHeader))}
			},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockFoodImageRepository, mRec *recMocks.MockRecognizer) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
				mRec.On("Name").Return("none")
				mRec.On("Recognize", ctx, mock.Anything).Return(recognition.Result{FoodName: recognition.UnknownFood}, nil)
				mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(nil)
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name: "repository error with failed rollback",
			file: func() FileInput {
				return FileInput{Reader: bytes.NewReader(pngHeader), Filename: "a.png", ContentType: "image/png", Size: int64(len(pngHeader))}
			},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockFoodImageRepository, mRec *recMocks.MockRecognizer) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
				mRec.On("Name").Return("none")
				mRec.On("Recognize", ctx, mock.Anything).Return(recognition.Result{FoodName: recognition.UnknownFood}, nil)
				mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockFoodImageRepository)
			mRec := new(recMocks.MockRecognizer)
			svc := NewFoodImageService(mStore, mRepo, mRec, 1024, nil, nil)

			tt.setupMocks(mStore, mRepo, mRec)

			a, err := svc.Analyze(ctx, tt.file())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, a)
			} else if tt.wantErrMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, a)
				tt.check(t, a)
			}

			// Only a failed rollback may leave an object behind after an error.
			if a == nil && !strings.Contains(tt.wantErrMsg, "rollback delete failed") {
				assert.Zero(t, mStore.Len())
			}
			if a != nil {
				data, ok := mStore.Object(a.Image.StoragePath)
				require.True(t, ok)
				assert.Equal(t, pngHeader, data)
				assert.Equal(t, int64(len(pngHeader)), a.Image.Size)
			}

			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
			mRec.AssertExpectations(t)
		})
	}
}

func TestAnalysisMessageWithoutCategory(t *testing.T) {
	a := &Analysis{
		Image:  &model.FoodImage{ExpiryDays: 5},
		Result: recognition.Result{FoodName: "Bread"},
	}
	assert.Equal(t, "Looks like Bread. Best before 5 days.", a.Message())
}

func TestImageContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", imageContentType("image/JPEG; charset=binary", nil))
	assert.Equal(t, "image/png", imageContentType("", pngHeader))
	assert.Equal(t, "", imageContentType("", []byte("plain text")))
	assert.Equal(t, "", imageContentType("application/pdf", pngHeader))
}

func TestFoodImageService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("adds presigned urls", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockFoodImageRepository)
		mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).Return(&repository.PageResult[model.FoodImage]{
			Items: []model.FoodImage{{ID: "1", StoragePath: "images/1.png"}, {ID: "2", StoragePath: "images/2.jpg"}},
			Total: 2,
		}, nil)
		mStore.On("PresignGet", ctx, "images/1.png", 15*time.Minute).Return("https://minio/1", nil)
		mStore.On("PresignGet", ctx, "images/2.jpg", 15*time.Minute).Return("https://minio/2", nil)
		svc := NewFoodImageService(mStore, mRepo, nil, 0, nil, nil)

		res, err := svc.List(ctx, 0, -1)

		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		require.Len(t, res.Items, 2)
		assert.Equal(t, "https://minio/1", res.Items[0].URL)
		assert.Equal(t, "2", res.Items[1].ID)
		mStore.AssertExpectations(t)
		mRepo.AssertExpectations(t)
	})

	t.Run("limit is capped", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockFoodImageRepository)
		mRepo.On("List", ctx, repository.PageQuery{Limit: 100, Offset: 20}).Return(&repository.PageResult[model.FoodImage]{Total: 20}, nil).Once()
		svc := NewFoodImageService(mStore, mRepo, nil, 0, nil, nil)

		res, err := svc.List(ctx, 5000, 20)

		require.NoError(t, err)
		assert.Empty(t, res.Items)
		mRepo.AssertExpectations(t)
		mStore.AssertNotCalled(t, "PresignGet", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("presign error", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockFoodImageRepository)
		mRepo.On("List", ctx, mock.Anything).Return(&repository.PageResult[model.FoodImage]{
			Items: []model.FoodImage{{ID: "1", StoragePath: "images/1.png"}},
			Total: 1,
		}, nil)
		mStore.On("PresignGet", ctx, "images/1.png", mock.Anything).Return("", errors.New("no creds"))
		svc := NewFoodImageService(mStore, mRepo, nil, 0, nil, nil)

		_, err := svc.List(ctx, 5, 0)

		assert.EqualError(t, err, "presign images/1.png: no creds")
	})

	t.Run("repository error", func(t *testing.T) {
		mRepo := new(repoMocks.MockFoodImageRepository)
		mRepo.On("List", ctx, mock.Anything).Return(nil, errors.New("db fail"))
		svc := NewFoodImageService(nil, mRepo, nil, 0, nil, nil)

		_, err := svc.List(ctx, 5, 0)

		assert.Error(t, err)
	})
}

func TestFoodImageService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockFoodImageRepository)
		wantErr    error
	}{
		{
			name: "happy path",
			id:   validID,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockFoodImageRepository) {
				mRepo.On("FindByID", ctx, validID).Return(&model.FoodImage{ID: validID, StoragePath: "images/x.png"}, nil)
				mStore.On("PresignGet", ctx, "images/x.png", 15*time.Minute).Return("https://minio/x", nil)
			},
		},
		{
			name:       "malformed id",
			id:         "abc",
			setupMocks: func(*storeMocks.MockStorage, *repoMocks.MockFoodImageRepository) {},
			wantErr:    ErrInvalidID,
		},
		{
			name: "not found",
			id:   validID,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockFoodImageRepository) {
				mRepo.On("FindByID", ctx, validID).Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockFoodImageRepository)
			tt.setupMocks(mStore, mRepo)
			svc := NewFoodImageService(mStore, mRepo, nil, 0, nil, nil)

			v, err := svc.Get(ctx, tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, v)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "https://minio/x", v.URL)
				assert.Equal(t, validID, v.ID)
			}
			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}
