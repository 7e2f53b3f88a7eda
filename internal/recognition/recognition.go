package recognition

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"wastetracker/internal/config"
)

// UnknownFood is reported when nothing edible was recognized.
const UnknownFood = "Unknown Food"

const (
	fruitExpiryDays   = 3
	defaultExpiryDays = 5
)

// Result describes what a recognizer saw in a food photo.
type Result struct {
	FoodName   string   `json:"food_name"`
	Category   string   `json:"category"`
	Labels     []string `json:"labels"`
	Confidence float64  `json:"confidence"`
}

// Known reports whether a food item was identified.
func (r Result) Known() bool {
	return r.FoodName != "" && r.FoodName != UnknownFood
}

// ExpiryDays estimates shelf life: fruit keeps 3 days, everything else 5.
func (r Result) ExpiryDays() int {
	if containsFold(r.Category, "fruit") || containsFold(r.FoodName, "fruit") {
		return fruitExpiryDays
	}
	for _, l := range r.Labels {
		if containsFold(l, "fruit") {
			return fruitExpiryDays
		}
	}
	return defaultExpiryDays
}

// ExpiryText renders an expiry estimate the way clients display it.
func ExpiryText(days int) string {
	return fmt.Sprintf("Best before %d days", days)
}

// Recognizer identifies food in an image.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (Result, error)
	// Name is the provider label used in logs and metrics.
	Name() string
}

// New builds the recognizer selected by cfg.Provider.
func New(ctx context.Context, cfg config.RecognitionConfig, httpClient *http.Client) (Recognizer, error) {
	switch strings.ToLower(cfg.Provider) {
	case "rekognition":
		r, err := NewRekognition(ctx, cfg, httpClient)
		if err != nil {
			return nil, err
		}
		return r, nil
	case "", "none":
		return Static{}, nil
	default:
		return nil, fmt.Errorf("unsupported recognition provider: %s", cfg.Provider)
	}
}

// Static recognizes nothing. It keeps uploads working when no provider is configured.
type Static struct{}

func (Static) Recognize(context.Context, []byte) (Result, error) {
	return Result{FoodName: UnknownFood}, nil
}

func (Static) Name() string { return "none" }

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), sub)
}
