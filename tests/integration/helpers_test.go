package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/theplug/theplug/internal/api"
	"github.com/theplug/theplug/internal/database"
	"github.com/theplug/theplug/internal/session"
	"github.com/theplug/theplug/internal/storage"
	"github.com/theplug/theplug/internal/video"
)

type TestServer struct {
	Server       *httptest.Server
	App          *api.App
	DB           *database.DB
	VideoRepo    *database.VideoRepository
	QuestionRepo *database.QuestionRepository
	Storage      storage.Storage
	Analyzer     *stubAnalyzer
	Runner       *stubRunner
	TempDir      string
	OriginalDir  string
}

// stubAnalyzer records questions and returns a canned answer, so chat tests
// run without a remote model.
type stubAnalyzer struct {
	mu        sync.Mutex
	Answer    string
	Err       error
	Paths     []string
	Questions []string
}

func (s *stubAnalyzer) AskVideo(ctx context.Context, videoPath, question string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Paths = append(s.Paths, videoPath)
	s.Questions = append(s.Questions, question)
	if s.Err != nil {
		return "", s.Err
	}
	return s.Answer, nil
}

// stubRunner stands in for yt-dlp. Fetch writes Payload to the destination
// path, or fails with Err.
type stubRunner struct {
	mu      sync.Mutex
	Payload []byte
	Err     error
	Info    map[string]any
	Fetched []string
}

func (s *stubRunner) Fetch(ctx context.Context, fetchURL, dest string, strategy video.Strategy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fetched = append(s.Fetched, fetchURL)
	if s.Err != nil {
		return s.Err
	}
	return os.WriteFile(dest, s.Payload, 0644)
}

func (s *stubRunner) Probe(ctx context.Context, probeURL string) ([]byte, error) {
	info := s.Info
	if info == nil {
		info = map[string]any{"title": "Test Clip", "duration": 42, "uploader": "tester"}
	}
	return json.Marshal(info)
}

func setupTestServer(t *testing.T) *TestServer {
	t.Helper()

	// Templates are resolved relative to the project root.
	originalDir, _ := os.Getwd()
	projectRoot := filepath.Join(originalDir, "../..")
	if err := os.Chdir(projectRoot); err != nil {
		t.Fatalf("Failed to change to project root: %v", err)
	}

	tempDir, err := os.MkdirTemp("", "theplug_test_*")
	if err != nil {
		os.Chdir(originalDir)
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	localStorage, err := storage.NewLocalStorage(filepath.Join(tempDir, "videos"))
	if err != nil {
		os.Chdir(originalDir)
		t.Fatalf("Failed to create storage: %v", err)
	}

	db, err := database.NewDB(filepath.Join(tempDir, "test.db"))
	if err != nil {
		os.Chdir(originalDir)
		t.Fatalf("Failed to create database: %v", err)
	}

	videoRepo := database.NewVideoRepository(db)
	questionRepo := database.NewQuestionRepository(db)

	analyzer := &stubAnalyzer{Answer: "The video shows a test pattern."}
	runner := &stubRunner{Payload: []byte("fake mp4 content")}

	app := &api.App{
		Storage:       localStorage,
		Sessions:      session.NewManager(localStorage),
		Downloader:    video.NewDownloaderWithRunner(localStorage, runner, 50*1024*1024, false),
		Analyzer:      analyzer,
		VideoRepo:     videoRepo,
		QuestionRepo:  questionRepo,
		MaxUploadSize: 10 * 1024 * 1024,
	}

	server := httptest.NewServer(api.NewRouter(app))

	return &TestServer{
		Server:       server,
		App:          app,
		DB:           db,
		VideoRepo:    videoRepo,
		QuestionRepo: questionRepo,
		Storage:      localStorage,
		Analyzer:     analyzer,
		Runner:       runner,
		TempDir:      tempDir,
		OriginalDir:  originalDir,
	}
}

func (ts *TestServer) Cleanup() {
	ts.Server.Close()
	ts.DB.Close()
	os.RemoveAll(ts.TempDir)
	os.Chdir(ts.OriginalDir)
}

// newClient returns an HTTP client with a cookie jar, so the session cookie
// persists across requests like a browser.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Failed to create cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func createMultipartUpload(filename string, content []byte) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("video", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, bytes.NewReader(content)); err != nil {
		return nil, "", err
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return body, writer.FormDataContentType(), nil
}

func uploadTestVideo(t *testing.T, client *http.Client, server, filename string, content []byte) *http.Response {
	t.Helper()

	body, contentType, err := createMultipartUpload(filename, content)
	if err != nil {
		t.Fatalf("Failed to create multipart upload: %v", err)
	}

	req, err := http.NewRequest("POST", server+"/upload", body)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Failed to upload video: %v", err)
	}
	return resp
}

func postForm(t *testing.T, client *http.Client, target string, values url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(target, values)
	if err != nil {
		t.Fatalf("Failed to POST %s: %v", target, err)
	}
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	return string(data)
}
