package minio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scalerBody = `{"kind": "standard", "mean": [90, 4, 1500], "scale": [100, 8, 5000]}`

// fakeS3 serves one object from a path-style bucket.
func fakeS3(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/artifacts/models/rfm_scaler.json" {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Content-Length", strconv.Itoa(len(scalerBody)))
			w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
			w.Header().Set("Last-Modified", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC).Format(http.TimeFormat))
			w.WriteHeader(http.StatusOK)
			if r.Method != http.MethodHead {
				_, _ = w.Write([]byte(scalerBody))
			}
			return
		}

		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` +
			`<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`))
	}))
}

func newTestRepo(t *testing.T, srv *httptest.Server) *ArtifactRepository {
	t.Helper()
	mc, err := minio.New(strings.TrimPrefix(srv.URL, "http://"), &minio.Options{
		Creds:  credentials.NewStaticV4("access", "secret", ""),
		Secure: false,
		Region: "us-east-1",
	})
	require.NoError(t, err)
	return NewArtifactRepository(mc, "artifacts", "models/")
}

func TestFetch(t *testing.T) {
	srv := fakeS3(t)
	defer srv.Close()

	data, err := newTestRepo(t, srv).Fetch(context.Background(), "rfm_scaler.json")
	require.NoError(t, err)
	assert.JSONEq(t, scalerBody, string(data))
}

func TestFetchMissingObject(t *testing.T) {
	srv := fakeS3(t)
	defer srv.Close()

	_, err := newTestRepo(t, srv).Fetch(context.Background(), "kmeans_rfm_model.json")
	assert.ErrorContains(t, err, "not found")
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "models/rfm_scaler.json", NewArtifactRepository(nil, "b", "models/").objectKey("rfm_scaler.json"))
	assert.Equal(t, "models/rfm_scaler.json", NewArtifactRepository(nil, "b", "models").objectKey("rfm_scaler.json"))
	assert.Equal(t, "rfm_scaler.json", NewArtifactRepository(nil, "b", "").objectKey("rfm_scaler.json"))
}
