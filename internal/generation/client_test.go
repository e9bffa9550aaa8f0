package generation

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/zhubert/sketchlab/internal/errors"
)

var pngSketch = Upload{
	Name:      "cat.png",
	MediaType: "image/png",
	Data:      []byte("\x89PNG\r\n\x1a\nfake-sketch"),
}

func TestGenerate_Success(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/generate_json", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Len(t, r.MultipartForm.File, 1, "exactly one file field")
		assert.Empty(t, r.MultipartForm.Value, "no other form fields")

		file, header, err := r.FormFile(FileField)
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "cat.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))

		body, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, pngSketch.Data, body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"generated_image": "https://x/y.png", "seed": 42}`))
	}))
	defer server.Close()

	client := NewClient(server.URL + "/generate_json")
	resp, err := client.Generate(context.Background(), pngSketch)
	require.NoError(t, err)

	assert.Equal(t, "https://x/y.png", resp.GeneratedImage)
	assert.Contains(t, string(resp.Raw), `"seed": 42`)
	assert.EqualValues(t, 1, atomic.LoadInt32(&requests), "exactly one request per submission")
}

func TestGenerate_Failures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind pkgerrors.Kind
		wantMsg  string
	}{
		{"server error", http.StatusInternalServerError, "model crashed", pkgerrors.KindStatus, "status 500: model crashed"},
		{"not found", http.StatusNotFound, "", pkgerrors.KindStatus, "status 404"},
		{"invalid json", http.StatusOK, "<html>oops</html>", pkgerrors.KindMalformed, "not a JSON object"},
		{"json array", http.StatusOK, `["https://x/y.png"]`, pkgerrors.KindMalformed, "not a JSON object"},
		{"missing field", http.StatusOK, `{"image": "https://x/y.png"}`, pkgerrors.KindMalformed, "no generated_image"},
		{"wrong type", http.StatusOK, `{"generated_image": 12}`, pkgerrors.KindMalformed, "not a string"},
		{"empty string", http.StatusOK, `{"generated_image": ""}`, pkgerrors.KindMalformed, "empty"},
		{"null", http.StatusOK, `{"generated_image": null}`, pkgerrors.KindMalformed, "empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			resp, err := NewClient(server.URL).Generate(context.Background(), pngSketch)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, pkgerrors.Is(err, tt.wantKind), "kind = %v, want %v", pkgerrors.GetKind(err), tt.wantKind)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestGenerate_AcceptsAny2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"generated_image": "data:image/png;base64,AAAA"}`))
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Generate(context.Background(), pngSketch)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", resp.GeneratedImage)
}

func TestGenerate_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	_, err := NewClient(endpoint).Generate(context.Background(), pngSketch)
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.KindNetwork))
	assert.Contains(t, err.Error(), endpoint)
}

func TestGenerate_Canceled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := NewClient(server.URL).Generate(ctx, pngSketch)
		errCh <- err
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		require.Error(t, err)
		assert.True(t, pkgerrors.Is(err, pkgerrors.KindCanceled), "kind = %v", pkgerrors.GetKind(err))
	case <-time.After(5 * time.Second):
		t.Fatal("Generate did not return after cancel")
	}
}

func TestGenerate_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, WithTimeout(50*time.Millisecond))
	_, err := client.Generate(context.Background(), pngSketch)
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.KindNetwork), "a timeout is a transport failure")
}

func TestGenerate_DefaultsForUnnamedUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, header, err := r.FormFile(FileField)
		require.NoError(t, err)
		assert.Equal(t, "sketch", header.Filename)
		assert.Equal(t, "application/octet-stream", header.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"generated_image": "https://x/z.png"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Generate(context.Background(), Upload{Data: []byte("raw")})
	require.NoError(t, err)
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("png-bytes"))
		case "/sniff":
			w.Header()["Content-Type"] = nil
			_, _ = w.Write([]byte("\x89PNG\r\n\x1a\n0000"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)

	data, ct, err := client.Fetch(context.Background(), server.URL+"/ok.png")
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "image/png", ct)

	_, ct, err = client.Fetch(context.Background(), server.URL+"/sniff")
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)

	_, _, err = client.Fetch(context.Background(), server.URL+"/missing.png")
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.KindStatus))
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "short", snippet([]byte("  short \n")))

	long := strings.Repeat("a", 1000)
	got := snippet([]byte(long))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Len(t, got, statusSnippetBytes+3)
}

func TestEndpoint(t *testing.T) {
	c := NewClient("http://localhost:8000/generate_json")
	assert.Equal(t, "http://localhost:8000/generate_json", c.Endpoint())
}
