package wistia

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const uploadReply = `{"id":7,"hashed_id":"up123","name":"clip","type":"Video","description":"","progress":0}`

type capturedUpload struct {
	method      string
	query       url.Values
	contentType string
	form        url.Values
	fileName    string
	fileType    string
	fileBody    string
}

type uploadServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []capturedUpload
}

func newUploadServer(t *testing.T) *uploadServer {
	t.Helper()
	us := &uploadServer{}
	us.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := capturedUpload{
			method:      r.Method,
			query:       r.URL.Query(),
			contentType: r.Header.Get("Content-Type"),
		}
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			got.form = r.MultipartForm.Value
			if file, header, err := r.FormFile("file"); err == nil {
				body, _ := io.ReadAll(file)
				got.fileName = header.Filename
				got.fileType = header.Header.Get("Content-Type")
				got.fileBody = string(body)
				_ = file.Close()
			}
		} else if err := r.ParseForm(); err == nil {
			got.form = r.PostForm
		}
		us.mu.Lock()
		us.requests = append(us.requests, got)
		us.mu.Unlock()
		_, _ = w.Write([]byte(uploadReply))
	}))
	t.Cleanup(us.Close)
	return us
}

func (us *uploadServer) last(t *testing.T) capturedUpload {
	t.Helper()
	us.mu.Lock()
	defer us.mu.Unlock()
	require.NotEmpty(t, us.requests, "no upload request received")
	return us.requests[len(us.requests)-1]
}

func (us *uploadServer) count() int {
	us.mu.Lock()
	defer us.mu.Unlock()
	return len(us.requests)
}

func TestFileUploader_SendsMultipart(t *testing.T) {
	server := newUploadServer(t)
	path := filepath.Join(t.TempDir(), "intro.mp4")
	require.NoError(t, os.WriteFile(path, []byte("fake video"), 0o600))

	client := NewUploadClient("tok", WithUploadURL(server.URL))
	res, err := client.File(path).
		ProjectID("proj").
		Name("Intro").
		Description("My <i>test</i>").
		ContactID("42").
		Send(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "up123", res.HashedID)
	assert.Nil(t, res.Description)

	got := server.last(t)
	assert.Equal(t, http.MethodPost, got.method)
	assert.Contains(t, got.contentType, "multipart/form-data")
	assert.Equal(t, "tok", got.query.Get("access_token"))
	assert.Equal(t, "proj", got.query.Get("project_id"))
	assert.Equal(t, "Intro", got.query.Get("name"))
	assert.Equal(t, "42", got.query.Get("contact_id"))
	assert.False(t, got.query.Has("description"), "description must not be in the query")
	assert.Equal(t, []string{"My <i>test</i>"}, got.form["description"])
	assert.Equal(t, "intro.mp4", got.fileName)
	assert.Equal(t, "fake video", got.fileBody)
}

func TestFileUploader_MissingFile(t *testing.T) {
	server := newUploadServer(t)
	missing := filepath.Join(t.TempDir(), "nope.mp4")

	_, err := NewUploadClient("tok", WithUploadURL(server.URL)).File(missing).Send(context.Background())

	var notFound *FileNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, missing, notFound.Path)
	assert.Zero(t, server.count(), "no request should be sent")
}

func TestFileUploader_OtherOpenErrorsPassThrough(t *testing.T) {
	server := newUploadServer(t)
	dir := t.TempDir()

	_, err := NewUploadClient("tok", WithUploadURL(server.URL)).File(dir + string(os.PathSeparator) + "\x00").Send(context.Background())
	require.Error(t, err)

	var notFound *FileNotFoundError
	assert.NotErrorAs(t, err, &notFound)
	assert.Zero(t, server.count())
}

func TestFileUploader_SettersReturnCopies(t *testing.T) {
	base := NewUploadClient("tok").File("a.mp4")
	named := base.Name("named")

	assert.Nil(t, base.fields.name)
	require.NotNil(t, named.fields.name)
	assert.Equal(t, "named", *named.fields.name)
}

func TestStreamUploader_SendsReader(t *testing.T) {
	server := newUploadServer(t)
	client := NewUploadClient("tok", WithUploadURL(server.URL))

	_, err := client.Stream(bytes.NewReader([]byte("stream bytes")), "").
		Name("From stream").
		Description("desc").
		Send(context.Background())
	require.NoError(t, err)

	got := server.last(t)
	assert.Equal(t, DefaultFilename, got.fileName)
	assert.Equal(t, "stream bytes", got.fileBody)
	assert.Equal(t, "From stream", got.query.Get("name"))
	assert.False(t, got.query.Has("description"))
	assert.Equal(t, []string{"desc"}, got.form["description"])
}

func TestStreamUploader_FilenameSetter(t *testing.T) {
	server := newUploadServer(t)
	client := NewUploadClient("tok", WithUploadURL(server.URL))

	_, err := client.Stream(nil, "").
		Stream(bytes.NewBufferString("png")).
		Filename("thumb.png").
		Send(context.Background())
	require.NoError(t, err)

	got := server.last(t)
	assert.Equal(t, "thumb.png", got.fileName)
	assert.Equal(t, "image/png", got.fileType)
}

func TestStreamUploader_RequiresStream(t *testing.T) {
	server := newUploadServer(t)
	_, err := NewUploadClient("tok", WithUploadURL(server.URL)).Stream(nil, "x.mp4").Send(context.Background())

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Reader", verrs[0].Field())
	assert.Zero(t, server.count())
}

func TestStreamFromURL(t *testing.T) {
	var (
		mu       sync.Mutex
		uploaded capturedUpload
	)
	mux := http.NewServeMux()
	mux.HandleFunc("/media/clip.mov", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("remote bytes"))
	})
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		body, _ := io.ReadAll(file)
		mu.Lock()
		uploaded = capturedUpload{fileName: header.Filename, fileBody: string(body), query: r.URL.Query()}
		mu.Unlock()
		_, _ = w.Write([]byte(uploadReply))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewUploadClient("tok", WithUploadURL(server.URL+"/upload"))
	uploader, err := client.StreamFromURL(context.Background(), server.URL+"/media/clip.mov")
	require.NoError(t, err)

	_, err = uploader.Name("remote").Send(context.Background())
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "clip.mov", uploaded.fileName)
	assert.Equal(t, "remote bytes", uploaded.fileBody)
	assert.Equal(t, "remote", uploaded.query.Get("name"))
}

func TestFetchStream_ClassifiesErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	t.Cleanup(server.Close)

	_, err := FetchStream(context.Background(), nil, server.URL+"/x.mp4")
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusGone, reqErr.StatusCode)
	assert.Equal(t, "gone", reqErr.Err.Message)
}

func TestFilenameFromURL(t *testing.T) {
	assert.Equal(t, "a.mp4", filenameFromURL("https://cdn.example.com/v/a.mp4?sig=1"))
	assert.Equal(t, DefaultFilename, filenameFromURL("https://cdn.example.com/v/stream"))
	assert.Equal(t, DefaultFilename, filenameFromURL("https://cdn.example.com"))
}

func TestURLUploader_SendsForm(t *testing.T) {
	server := newUploadServer(t)
	client := NewUploadClient("tok", WithUploadURL(server.URL))

	_, err := client.URL("https://example.com/video.mp4").
		Name("Imported").
		Description("from <b>url</b>").
		ProjectID("p9").
		Send(context.Background())
	require.NoError(t, err)

	got := server.last(t)
	assert.Equal(t, "application/x-www-form-urlencoded", got.contentType)
	assert.Empty(t, got.query, "url uploads carry no query string")
	assert.Equal(t, "tok", got.form.Get("access_token"))
	assert.Equal(t, "https://example.com/video.mp4", got.form.Get("url"))
	assert.Equal(t, "Imported", got.form.Get("name"))
	assert.Equal(t, "from <b>url</b>", got.form.Get("description"))
	assert.Equal(t, "p9", got.form.Get("project_id"))
	assert.False(t, got.form.Has("contact_id"))
}

func TestURLUploader_Validation(t *testing.T) {
	server := newUploadServer(t)

	_, err := NewUploadClient("tok", WithUploadURL(server.URL)).URL("").Send(context.Background())
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	_, err = NewUploadClient("", WithUploadURL(server.URL)).URL("https://example.com/a.mp4").Send(context.Background())
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "AccessToken", verrs[0].Field())
	assert.Zero(t, server.count())
}

func TestUploadClient_ErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"bad token"}`))
	}))
	t.Cleanup(server.Close)

	_, err := NewUploadClient("tok", WithUploadURL(server.URL)).URL("https://example.com/a.mp4").Send(context.Background())
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusUnauthorized, reqErr.StatusCode)
	assert.Equal(t, "bad token", reqErr.Err.Message)
	assert.False(t, IsNotFound(err))
}

func TestNewUploadersFromEnv(t *testing.T) {
	t.Setenv(EnvVarName, "env-tok")

	fu, err := NewFileUploader("a.mp4")
	require.NoError(t, err)
	assert.Equal(t, "env-tok", fu.client.accessToken)

	su, err := NewStreamUploader(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Equal(t, DefaultFilename, su.stream.Filename)

	uu, err := NewURLUploader("https://example.com/a.mp4")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.mp4", uu.link.URL)
}

type failingDoer struct{}

func (failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("dial refused")
}

type trackedReader struct {
	io.Reader
	closed atomic.Bool
}

func (r *trackedReader) Close() error {
	r.closed.Store(true)
	return nil
}

func TestStreamUploader_FailedDoReleasesBody(t *testing.T) {
	client := NewUploadClient("tok", WithHTTPClient(failingDoer{}))

	var sources []*trackedReader
	for range 20 {
		src := &trackedReader{Reader: strings.NewReader("never read")}
		sources = append(sources, src)
		_, err := client.Stream(src, "a.mp4").Send(context.Background())
		require.ErrorContains(t, err, "dial refused")
	}

	require.Eventually(t, func() bool {
		for _, src := range sources {
			if !src.closed.Load() {
				return false
			}
		}
		return true
	}, 2*time.Second, 10*time.Millisecond, "multipart writers should exit and close their sources")
}

func TestFileUploader_FailedDoDoesNotLeakWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(path, []byte("clip"), 0o600))
	client := NewUploadClient("tok", WithHTTPClient(failingDoer{}))

	before := runtime.NumGoroutine()
	for range 20 {
		_, err := client.File(path).Send(context.Background())
		require.Error(t, err)
	}

	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before+2
	}, 2*time.Second, 10*time.Millisecond, "goroutines before=%d", before)
}
