// ABOUTME: Image label detection backed by AWS Rekognition.
// ABOUTME: Returns the top labels for an uploaded food photo.
package ai

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

const (
	defaultMaxLabels     = 5
	defaultMinConfidence = 75
)

// LabelDetector is the subset of the Rekognition client the classifier uses.
type LabelDetector interface {
	DetectLabels(ctx context.Context, in *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

// Label is one detected label with its confidence percentage.
type Label struct {
	Name       string  `json:"name"`
	Confidence float32 `json:"confidence"`
}

// Classifier labels food images.
type Classifier struct {
	client        LabelDetector
	maxLabels     int32
	minConfidence float32
}

// NewClassifier wraps an existing Rekognition client.
func NewClassifier(client LabelDetector) *Classifier {
	return &Classifier{
		client:        client,
		maxLabels:     defaultMaxLabels,
		minConfidence: defaultMinConfidence,
	}
}

// NewRekognitionClassifier loads AWS credentials from the default chain.
func NewRekognitionClassifier(ctx context.Context, region string) (*Classifier, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewClassifier(rekognition.NewFromConfig(cfg)), nil
}

// Labels returns up to five labels detected with at least 75% confidence.
func (c *Classifier) Labels(ctx context.Context, image []byte) ([]Label, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("detect labels: empty image")
	}
	out, err := c.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: image},
		MaxLabels:     aws.Int32(c.maxLabels),
		MinConfidence: aws.Float32(c.minConfidence),
	})
	if err != nil {
		return nil, fmt.Errorf("detect labels: %w", err)
	}

	labels := make([]Label, 0, len(out.Labels))
	for _, l := range out.Labels {
		if l.Name == nil {
			continue
		}
		labels = append(labels, Label{Name: aws.ToString(l.Name), Confidence: aws.ToFloat32(l.Confidence)})
	}
	return labels, nil
}
