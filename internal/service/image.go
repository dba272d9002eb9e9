package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/kondate-ai/backend/config"
)

// ImageGenerationRequest represents a request to the images API
type ImageGenerationRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	Quality        string `json:"quality"`
	ResponseFormat string `json:"response_format"`
}

// ImageGenerationResponse represents the response from the images API
type ImageGenerationResponse struct {
	Created int64 `json:"created"`
	Data    []struct {
		URL           string `json:"url,omitempty"`
		RevisedPrompt string `json:"revised_prompt,omitempty"`
	} `json:"data"`
}

// s3Uploader is the subset of the S3 client the service needs.
type s3Uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageService generates a dish photo for a recipe and stores it in S3.
type ImageService struct {
	apiKey   string
	apiURL   string
	bucket   string
	uploader s3Uploader
	client   *http.Client
}

// NewImageService creates a new ImageService instance
func NewImageService(ctx context.Context, cfg *config.Config) (*ImageService, error) {
	if cfg.ImagesAPIKey == "" {
		return nil, fmt.Errorf("images API key must be set")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &ImageService{
		apiKey:   cfg.ImagesAPIKey,
		apiURL:   cfg.ImagesAPIURL,
		bucket:   cfg.S3Bucket,
		uploader: s3.NewFromConfig(awsCfg),
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// GenerateRecipeImage generates a photo for the given recipe and returns
// its public URL.
func (s *ImageService) GenerateRecipeImage(ctx context.Context, title, description string) (string, error) {
	prompt := buildImagePrompt(title, description)
	log.Printf("[ImageService] Generating image for recipe '%s'", title)

	const maxRetries = 3
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		imageURL, err := s.generateImageAttempt(ctx, prompt)
		if err == nil {
			return imageURL, nil
		}
		lastErr = err
		log.Printf("[ImageService] Attempt %d/%d failed: %v", attempt, maxRetries, err)
		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
	}
	return "", fmt.Errorf("failed to generate image after %d attempts: %w", maxRetries, lastErr)
}

// generateImageAttempt performs a single image generation attempt
func (s *ImageService) generateImageAttempt(ctx context.Context, prompt string) (string, error) {
	reqBody := ImageGenerationRequest{
		Model:          "dall-e-3",
		Prompt:         prompt,
		N:              1,
		Size:           "1024x1024",
		Quality:        "standard",
		ResponseFormat: "url",
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("images API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result ImageGenerationResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Data) == 0 || result.Data[0].URL == "" {
		return "", fmt.Errorf("no image URL in API response")
	}

	s3URL, err := s.downloadAndUpload(ctx, result.Data[0].URL)
	if err != nil {
		// The upstream URL still works even when our copy fails.
		log.Printf("[ImageService] Failed to upload to S3, returning original URL: %v", err)
		return result.Data[0].URL, nil
	}
	return s3URL, nil
}

// downloadAndUpload fetches the generated image and stores it under a
// fresh key in the configured bucket.
func (s *ImageService) downloadAndUpload(ctx context.Context, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download image, status: %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}

	fileName := fmt.Sprintf("recipe-images/%s.png", uuid.New().String())
	_, err = s.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, fileName)
	log.Printf("[ImageService] Uploaded image to S3: %s", publicURL)
	return publicURL, nil
}

// buildImagePrompt creates the food photography prompt for a recipe.
func buildImagePrompt(title, description string) string {
	prompt := "A professional food photography shot of " + strings.ToLower(title)
	if description != "" {
		prompt += ", " + strings.ToLower(description)
	}
	prompt += ", shot with natural lighting, shallow depth of field, restaurant quality presentation, appetizing colors"
	if len(prompt) > 900 {
		prompt = prompt[:900]
	}
	return prompt
}
