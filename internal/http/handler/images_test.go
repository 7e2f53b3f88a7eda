package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wastetracker/internal/model"
	"wastetracker/internal/recognition"
	"wastetracker/internal/service"
	serviceMocks "wastetracker/internal/service/mocks"
)

func imageRequest(t *testing.T, target, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, _ = part.Write(data)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func fileNamed(name string) any {
	return mock.MatchedBy(func(f service.FileInput) bool {
		return f.Filename == name && f.Reader != nil
	})
}

func appleAnalysis() *service.Analysis {
	return &service.Analysis{
		Image:  &model.FoodImage{ID: uuid.New().String(), FoodName: "Apple", Category: "Fruit", ExpiryDays: 3},
		Result: recognition.Result{FoodName: "Apple", Category: "Fruit"},
	}
}

func TestAnalyze(t *testing.T) {
	mockSvc := new(serviceMocks.MockFoodImageService)
	app := fiber.New()
	app.Post("/analyze", Analyze(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Analyze", mock.Anything, mock.MatchedBy(func(f service.FileInput) bool {
			return f.Filename == "apple.jpg" && f.ContentType == "image/jpeg" && f.Size == 4
		})).Return(appleAnalysis(), nil).Once()

		resp, _ := app.Test(imageRequest(t, "/analyze", "apple.jpg", "image/jpeg", []byte("\xff\xd8\xff\xe0")))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Looks like Apple (Fruit). Best before 3 days.", body["message"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/analyze", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "FILE_REQUIRED", decodeError(t, resp).Error.Code)
	})

	t.Run("empty file", func(t *testing.T) {
		resp, _ := app.Test(imageRequest(t, "/analyze", "empty.jpg", "image/jpeg", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "FILE_EMPTY", decodeError(t, resp).Error.Code)
	})

	tests := []struct {
		name     string
		err      error
		status   int
		wantCode string
	}{
		{"too large", service.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{"not an image", service.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE"},
		{"recognition failed", fmt.Errorf("%w: throttled", service.ErrRecognitionFailed), http.StatusBadGateway, "RECOGNITION_FAILED"},
		{"storage down", errors.New("upload to storage: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc.On("Analyze", mock.Anything, fileNamed(tt.name+".png")).Return(nil, tt.err).Once()

			resp, _ := app.Test(imageRequest(t, "/analyze", tt.name+".png", "image/png", []byte("data")))

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.wantCode, decodeError(t, resp).Error.Code)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestUpload(t *testing.T) {
	mockSvc := new(serviceMocks.MockFoodImageService)
	app := fiber.New()
	app.Post("/upload", Upload(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Analyze", mock.Anything, fileNamed("apple.png")).Return(appleAnalysis(), nil).Once()

		resp, _ := app.Test(imageRequest(t, "/upload", "apple.png", "image/png", []byte("data")))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Apple", body["foodName"])
		assert.Equal(t, "Best before 3 days", body["expiry"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown food", func(t *testing.T) {
		mockSvc.On("Analyze", mock.Anything, fileNamed("blur.png")).Return(&service.Analysis{
			Image:  &model.FoodImage{ExpiryDays: 5},
			Result: recognition.Result{FoodName: recognition.UnknownFood},
		}, nil).Once()

		resp, _ := app.Test(imageRequest(t, "/upload", "blur.png", "image/png", []byte("data")))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Unknown Food", body["foodName"])
		assert.Equal(t, "Best before 5 days", body["expiry"])
	})
}

func TestListImages(t *testing.T) {
	mockSvc := new(serviceMocks.MockFoodImageService)
	app := fiber.New()
	app.Get("/images", ListImages(mockSvc))

	mockSvc.On("List", mock.Anything, 10, 0).Return(&service.ImageListResult{
		Items: []service.ImageView{{FoodImage: model.FoodImage{ID: "1"}, URL: "https://minio/1"}},
		Total: 1,
	}, nil).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/images", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(1), body["total"])
	items := body["data"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "https://minio/1", items[0].(map[string]any)["url"])
	mockSvc.AssertExpectations(t)
}

func TestGetImage(t *testing.T) {
	mockSvc := new(serviceMocks.MockFoodImageService)
	app := fiber.New()
	app.Get("/images/:id", GetImage(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(&service.ImageView{FoodImage: model.FoodImage{ID: id}, URL: "u"}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/images/"+id, nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(nil, service.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/images/"+id, nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/images/nope", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})
}
