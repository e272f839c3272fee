package infra_s3

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/humanbelnik/flickswipe/internal/config"
	"github.com/humanbelnik/flickswipe/internal/model"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type S3InfraUnitSuite struct {
	suite.Suite
}

type fakeBucket struct {
	mu       sync.Mutex
	requests []string
	missing  bool
}

func (f *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.mu.Unlock()

	if f.missing {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch r.Method {
	case http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusOK)
	}
}

func (f *fakeBucket) seen(request string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r == request {
			return true
		}
	}
	return false
}

func initStorage(t provider.T, bucket *fakeBucket) (*S3Storage, string, error) {
	server := httptest.NewServer(bucket)
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), config.S3{
		Region:      "us-east-1",
		Endpoint:    server.URL,
		AccessKeyID: "test",
		SecretKey:   "test",
	})
	require.NoError(t, err)

	storage, err := New(context.Background(), "posters", client, "poster/")
	return storage, server.URL, err
}

func (s *S3InfraUnitSuite) TestSaveAndDelete(t provider.T) {
	bucket := &fakeBucket{}
	storage, _, err := initStorage(t, bucket)
	require.NoError(t, err)

	key, err := storage.Save(context.Background(), &model.Poster{
		Filename: "fc.jpg",
		Content:  []byte("jpeg"),
		MovieID:  "6f1c",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "poster/6f1c/fc.jpg", key)
	assert.True(t, bucket.seen("PUT /posters/poster/6f1c/fc.jpg"))

	require.NoError(t, storage.Delete(context.Background(), key))
	assert.True(t, bucket.seen("DELETE /posters/poster/6f1c/fc.jpg"))
}

func (s *S3InfraUnitSuite) TestPresign(t provider.T) {
	storage, endpoint, err := initStorage(t, &fakeBucket{})
	require.NoError(t, err)

	url, err := storage.GeneratePresignedURL(context.Background(), "poster/6f1c/fc.jpg", time.Hour)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, endpoint+"/posters/poster/6f1c/fc.jpg?"))
	assert.Contains(t, url, "X-Amz-Expires=3600")
}

func (s *S3InfraUnitSuite) TestMissingBucket(t provider.T) {
	_, _, err := initStorage(t, &fakeBucket{missing: true})

	assert.ErrorIs(t, err, ErrBucketUnavailable)
}

func (s *S3InfraUnitSuite) TestBuildKey(t provider.T) {
	storage := &S3Storage{}

	assert.Equal(t, "poster/id/a.jpg", storage.buildKey("poster/", "id", "a.jpg"))
	assert.Equal(t, "id/a.jpg", storage.buildKey("", "id", `a\.jpg`))
	assert.Equal(t, "image/png", contentType("x/a.PNG"))
}

func TestS3InfraUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(S3InfraUnitSuite))
}
