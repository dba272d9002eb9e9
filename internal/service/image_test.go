package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	keys []string
	err  error
}

func (f *fakeUploader) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.keys = append(f.keys, *params.Key)
	return &s3.PutObjectOutput{}, nil
}

func newTestImageService(apiURL string, uploader s3Uploader) *ImageService {
	return &ImageService{
		apiKey:   "test-key",
		apiURL:   apiURL,
		bucket:   "test-bucket",
		uploader: uploader,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

func TestImageService_GenerateRecipeImage(t *testing.T) {
	t.Run("should generate, download and upload the image", func(t *testing.T) {
		var mux http.ServeMux
		srv := httptest.NewServer(&mux)
		defer srv.Close()

		mux.HandleFunc("/images", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			var req ImageGenerationRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Contains(t, req.Prompt, "lasagna")
			assert.Equal(t, 1, req.N)

			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"created": time.Now().Unix(),
				"data":    []map[string]string{{"url": srv.URL + "/generated.png"}},
			})
		})
		mux.HandleFunc("/generated.png", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("png-bytes"))
		})

		uploader := &fakeUploader{}
		svc := newTestImageService(srv.URL+"/images", uploader)

		url, err := svc.GenerateRecipeImage(context.Background(), "Lasagna", "Layered and baked")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(url, "https://test-bucket.s3.amazonaws.com/recipe-images/"))
		require.Len(t, uploader.keys, 1)
		assert.True(t, strings.HasSuffix(uploader.keys[0], ".png"))
	})

	t.Run("should fall back to the upstream URL when the upload fails", func(t *testing.T) {
		var mux http.ServeMux
		srv := httptest.NewServer(&mux)
		defer srv.Close()

		mux.HandleFunc("/images", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"data": []map[string]string{{"url": srv.URL + "/generated.png"}},
			})
		})
		mux.HandleFunc("/generated.png", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("png-bytes"))
		})

		svc := newTestImageService(srv.URL+"/images", &fakeUploader{err: fmt.Errorf("access denied")})

		url, err := svc.GenerateRecipeImage(context.Background(), "Lasagna", "")

		require.NoError(t, err)
		assert.Equal(t, srv.URL+"/generated.png", url)
	})

	t.Run("should give up after repeated API failures", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		svc := newTestImageService(srv.URL, &fakeUploader{})

		_, err := svc.GenerateRecipeImage(context.Background(), "Lasagna", "")

		assert.Error(t, err)
		assert.Equal(t, 3, calls)
	})
}

func TestBuildImagePrompt(t *testing.T) {
	prompt := buildImagePrompt("Lasagna", "Layered and baked")

	assert.Contains(t, prompt, "lasagna")
	assert.Contains(t, prompt, "layered and baked")
	assert.Contains(t, prompt, "food photography")

	long := buildImagePrompt(strings.Repeat("a", 500), strings.Repeat("b", 600))
	assert.LessOrEqual(t, len(long), 900)
}
