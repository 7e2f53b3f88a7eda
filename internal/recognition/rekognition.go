package recognition

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"wastetracker/internal/config"
)

// Rekognition rejects inline images above this size.
const maxInlineImageBytes = 5 * 1024 * 1024

var ErrImageTooLarge = errors.New("image exceeds 5 MiB recognition limit")

// genericLabels are too broad to name a food item.
var genericLabels = map[string]bool{
	"food":    true,
	"produce": true,
	"plant":   true,
	"meal":    true,
	"dish":    true,
}

type labelDetector interface {
	DetectLabels(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

// RekognitionRecognizer labels food photos with AWS Rekognition DetectLabels.
type RekognitionRecognizer struct {
	client        labelDetector
	maxLabels     int32
	minConfidence float32
}

// NewRekognition loads the default AWS credential chain for cfg.AWSRegion.
func NewRekognition(ctx context.Context, cfg config.RecognitionConfig, httpClient *http.Client) (*RekognitionRecognizer, error) {
	if cfg.AWSRegion == "" {
		return nil, errors.New("AWS_REGION is required for rekognition")
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.AWSRegion)}
	if httpClient != nil {
		opts = append(opts, awsconfig.WithHTTPClient(httpClient))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newRekognitionWithClient(rekognition.NewFromConfig(awsCfg), cfg), nil
}

func newRekognitionWithClient(client labelDetector, cfg config.RecognitionConfig) *RekognitionRecognizer {
	maxLabels := cfg.MaxLabels
	if maxLabels <= 0 {
		maxLabels = 10
	}
	return &RekognitionRecognizer{
		client:        client,
		maxLabels:     int32(maxLabels),
		minConfidence: float32(cfg.MinConfidence),
	}
}

func (r *RekognitionRecognizer) Name() string { return "rekognition" }

// Recognize picks the most confident specific label as the food name and its
// first specific parent as the category.
func (r *RekognitionRecognizer) Recognize(ctx context.Context, image []byte) (Result, error) {
	if len(image) > maxInlineImageBytes {
		return Result{}, ErrImageTooLarge
	}
	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: image},
		MaxLabels:     aws.Int32(r.maxLabels),
		MinConfidence: aws.Float32(r.minConfidence),
	})
	if err != nil {
		return Result{}, fmt.Errorf("detect labels: %w", err)
	}
	return resultFromLabels(out.Labels), nil
}

func resultFromLabels(labels []types.Label) Result {
	if len(labels) == 0 {
		return Result{FoodName: UnknownFood}
	}
	sorted := make([]types.Label, len(labels))
	copy(sorted, labels)
	sort.SliceStable(sorted, func(i, j int) bool {
		return aws.ToFloat32(sorted[i].Confidence) > aws.ToFloat32(sorted[j].Confidence)
	})

	names := make([]string, 0, len(sorted))
	for _, l := range sorted {
		names = append(names, aws.ToString(l.Name))
	}

	chosen := sorted[0]
	for _, l := range sorted {
		if !isGeneric(aws.ToString(l.Name)) {
			chosen = l
			break
		}
	}

	name := aws.ToString(chosen.Name)
	return Result{
		FoodName:   name,
		Category:   categoryOf(chosen, name),
		Labels:     names,
		Confidence: float64(aws.ToFloat32(chosen.Confidence)),
	}
}

// categoryOf prefers the first specific parent of l, then any parent, then fallback.
func categoryOf(l types.Label, fallback string) string {
	var first string
	for _, p := range l.Parents {
		n := aws.ToString(p.Name)
		if n == "" {
			continue
		}
		if first == "" {
			first = n
		}
		if !isGeneric(n) {
			return n
		}
	}
	if first != "" {
		return first
	}
	return fallback
}

func isGeneric(name string) bool {
	return genericLabels[strings.ToLower(name)]
}
