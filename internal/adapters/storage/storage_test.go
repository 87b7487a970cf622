package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/medstock-be/internal/adapters/storage"
	"github.com/ammerola/medstock-be/internal/pkg/config"
	"github.com/ammerola/medstock-be/test/helpers"
)

func TestLocalStorage_UploadAndLink(t *testing.T) {
	ctx := context.Background()
	fs, err := storage.NewLocalStorage(t.TempDir(), helpers.TestLogger())
	require.NoError(t, err)

	loc, err := fs.Upload(ctx, "reports/stock/2025-06-15.xlsx", strings.NewReader("sheet"), "")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(loc, "2025-06-15.xlsx"))

	data, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "sheet", string(data))

	// uploads overwrite
	_, err = fs.Upload(ctx, "reports/stock/2025-06-15.xlsx", bytes.NewReader([]byte("v2")), spreadsheetType)
	require.NoError(t, err)
	data, err = os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))

	url, err := fs.GetPresignedURL(ctx, "reports/stock/2025-06-15.xlsx", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "file://"+filepath.ToSlash(loc), url)
}

func TestLocalStorage_FailedCopyLeavesNoFile(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	fs, err := storage.NewLocalStorage(root, helpers.TestLogger())
	require.NoError(t, err)

	_, err = fs.Upload(ctx, "reports/broken.xlsx", iotest.ErrReader(errors.New("disk gone")), "")
	assert.ErrorContains(t, err, "disk gone")

	_, statErr := os.Stat(filepath.Join(root, "reports", "broken.xlsx"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLocalStorage_KeysStayInsideRoot(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	fs, err := storage.NewLocalStorage(root, helpers.TestLogger())
	require.NoError(t, err)

	loc, err := fs.Upload(ctx, "../../escape.txt", strings.NewReader("x"), "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(loc, root))

	_, err = fs.Upload(ctx, "", strings.NewReader("x"), "")
	assert.Error(t, err)
}

const spreadsheetType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// fakeS3 answers the path-style bucket and object requests the adapter issues
type fakeS3 struct {
	mu      sync.Mutex
	buckets map[string]bool
	objects map[string][]byte
	types   map[string]string
	created int
}

func newFakeS3(buckets ...string) *fakeS3 {
	f := &fakeS3{buckets: map[string]bool{}, objects: map[string][]byte{}, types: map[string]string{}}
	for _, b := range buckets {
		f.buckets[b] = true
	}
	return f
}

func (f *fakeS3) state() (buckets map[string]bool, objects map[string][]byte, types map[string]string, created int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	buckets = make(map[string]bool, len(f.buckets))
	for k, v := range f.buckets {
		buckets[k] = v
	}
	objects = make(map[string][]byte, len(f.objects))
	for k, v := range f.objects {
		objects[k] = v
	}
	types = make(map[string]string, len(f.types))
	for k, v := range f.types {
		types[k] = v
	}
	return buckets, objects, types, f.created
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	bucket, key, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	if key == "" {
		switch r.Method {
		case http.MethodHead:
			if !f.buckets[bucket] {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusOK)
		case http.MethodPut:
			f.buckets[bucket] = true
			f.created++
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodPut:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.objects[bucket+"/"+key] = body
		f.types[bucket+"/"+key] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newS3(t *testing.T, srv *httptest.Server) *storage.S3Storage {
	t.Helper()
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")

	s, err := storage.NewS3Storage(context.Background(), &storage.S3Config{
		Region:          "us-east-1",
		Bucket:          "medstock-reports",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		Endpoint:        srv.URL,
		UsePathStyle:    true,
	}, helpers.TestLogger())
	require.NoError(t, err)
	return s
}

func TestS3Storage_CreatesMissingBucket(t *testing.T) {
	fake := newFakeS3()
	srv := httptest.NewServer(fake)
	defer srv.Close()

	newS3(t, srv)
	buckets, _, _, created := fake.state()
	assert.True(t, buckets["medstock-reports"])
	assert.Equal(t, 1, created)

	// a second start finds the bucket
	newS3(t, srv)
	_, _, _, created = fake.state()
	assert.Equal(t, 1, created)
}

func TestS3Storage_Upload(t *testing.T) {
	fake := newFakeS3("medstock-reports")
	srv := httptest.NewServer(fake)
	defer srv.Close()

	s := newS3(t, srv)
	ctx := context.Background()

	loc, err := s.Upload(ctx, "reports/stock/a.xlsx", strings.NewReader("sheet"), spreadsheetType)
	require.NoError(t, err)
	assert.Contains(t, loc, "/medstock-reports/reports/stock/a.xlsx")

	// content type from the extension
	_, err = s.Upload(ctx, "reports/stock/b.pdf", strings.NewReader("pdf"), "")
	require.NoError(t, err)

	_, objects, types, created := fake.state()
	assert.Equal(t, "sheet", string(objects["medstock-reports/reports/stock/a.xlsx"]))
	assert.Equal(t, spreadsheetType, types["medstock-reports/reports/stock/a.xlsx"])
	assert.Equal(t, "application/pdf", types["medstock-reports/reports/stock/b.pdf"])
	assert.Zero(t, created)
}

func TestS3Storage_PresignedURL(t *testing.T) {
	srv := httptest.NewServer(newFakeS3("medstock-reports"))
	defer srv.Close()

	s := newS3(t, srv)

	url, err := s.GetPresignedURL(context.Background(), "reports/stock/a.xlsx", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "/medstock-reports/reports/stock/a.xlsx")
	assert.Contains(t, url, "X-Amz-Expires=900")
}

func TestNew_SelectsLocal(t *testing.T) {
	dir := t.TempDir()
	fs, err := storage.New(context.Background(), config.AWSConfig{StorageDriver: "local", LocalDir: dir}, helpers.TestLogger())
	require.NoError(t, err)
	assert.IsType(t, &storage.LocalStorage{}, fs)
}
