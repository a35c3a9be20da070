package api

import (
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/theplug/theplug/internal/ai"
	"github.com/theplug/theplug/internal/database"
	"github.com/theplug/theplug/internal/models"
	"github.com/theplug/theplug/internal/session"
	"github.com/theplug/theplug/internal/storage"
	"github.com/theplug/theplug/internal/video"
)

type App struct {
	Storage       storage.Storage
	Sessions      *session.Manager
	Downloader    *video.Downloader
	Analyzer      ai.Analyzer // nil when no API key is configured
	VideoRepo     *database.VideoRepository
	QuestionRepo  *database.QuestionRepository
	MaxUploadSize int64
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

type uploadPageData struct {
	Title     string
	Method    models.InputMethod
	URL       string
	Staged    bool
	Source    string
	SizeLabel string
	Info      *models.VideoInfo
	Error     string
}

func (app *App) HomeHandler(w http.ResponseWriter, r *http.Request) {
	sess := app.session(r)

	if sess.Page == models.PageChat && sess.Artifact != "" {
		http.Redirect(w, r, "/chat", http.StatusSeeOther)
		return
	}

	app.renderUpload(w, sess, "", http.StatusOK)
}

// MethodHandler handles the input-method selector. Switching methods
// invalidates the cached artifact before anything new is staged.
func (app *App) MethodHandler(w http.ResponseWriter, r *http.Request) {
	sess := app.session(r)

	method := models.InputMethod(r.FormValue("method"))
	if method != models.MethodUpload && method != models.MethodURL {
		method = models.MethodUpload
	}

	if sess.InputMethod != method {
		if sess.InputMethod != "" {
			if err := app.Sessions.Release(sess); err != nil {
				log.Printf("Error releasing session %s: %v", sess.ID, err)
			}
		}
		sess.InputMethod = method
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *App) UploadHandler(w http.ResponseWriter, r *http.Request) {
	sess := app.session(r)

	r.Body = http.MaxBytesReader(w, r.Body, app.MaxUploadSize)
	if err := r.ParseMultipartForm(app.MaxUploadSize); err != nil {
		app.renderUpload(w, sess, "File too large", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("video")
	if err != nil {
		app.renderUpload(w, sess, "Failed to get file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".mp4" && ext != ".mov" && ext != ".avi" {
		app.renderUpload(w, sess, "Only MP4, MOV and AVI video files are allowed", http.StatusBadRequest)
		return
	}
	if header.Size == 0 {
		app.renderUpload(w, sess, "Uploaded file is empty", http.StatusBadRequest)
		return
	}

	// Switching from the URL source invalidates the old state first.
	if sess.InputMethod != "" && sess.InputMethod != models.MethodUpload {
		if err := app.Sessions.Release(sess); err != nil {
			log.Printf("Error releasing session %s: %v", sess.ID, err)
		}
	}
	sess.InputMethod = models.MethodUpload

	filename, err := app.Storage.SaveFile(file, storage.FileInfo{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	})
	if err != nil {
		app.renderUpload(w, sess, "Failed to save file", http.StatusInternalServerError)
		return
	}

	if err := app.Sessions.Stage(sess, filename); err != nil {
		app.Storage.DeleteFile(filename)
		app.renderUpload(w, sess, "Failed to cache video", http.StatusInternalServerError)
		return
	}
	sess.SourceFile = header.Filename
	sess.SourceURL = ""
	sess.Info = nil
	sess.History = nil

	if app.VideoRepo != nil {
		record := models.NewVideo(sess.ID, "upload", header.Filename, filename, header.Size)
		if err := app.VideoRepo.InsertVideo(record); err != nil {
			log.Printf("Error recording upload: %v", err)
		}
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *App) URLHandler(w http.ResponseWriter, r *http.Request) {
	sess := app.session(r)

	url := strings.TrimSpace(r.FormValue("url"))
	if url == "" {
		app.renderUpload(w, sess, "Please enter a video URL", http.StatusBadRequest)
		return
	}
	if !video.IsValidSource(url) {
		app.renderUpload(w, sess, "Please enter a valid YouTube, Instagram, TikTok, or X video URL", http.StatusBadRequest)
		return
	}

	if sess.InputMethod != "" && sess.InputMethod != models.MethodURL {
		if err := app.Sessions.Release(sess); err != nil {
			log.Printf("Error releasing session %s: %v", sess.ID, err)
		}
	}
	sess.InputMethod = models.MethodURL

	// Same URL already cached: nothing to do.
	if sess.SourceURL == url && sess.Artifact != "" {
		if size, err := app.Storage.Size(sess.Artifact); err == nil && size > 0 {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}

	info, err := app.Downloader.Probe(r.Context(), url)
	if err != nil {
		log.Printf("Warning: could not extract video info for %s: %v", url, err)
	}

	name, err := app.Downloader.Download(r.Context(), url)
	if err != nil {
		app.renderUpload(w, sess, downloadErrorMessage(err), downloadErrorStatus(err))
		return
	}

	if err := app.Sessions.Stage(sess, name); err != nil {
		app.Storage.DeleteFile(name)
		app.renderUpload(w, sess, "Failed to cache video", http.StatusInternalServerError)
		return
	}
	sess.SourceURL = url
	sess.SourceFile = ""
	sess.Info = info
	sess.History = nil

	if app.VideoRepo != nil {
		size, _ := app.Storage.Size(name)
		record := models.NewVideo(sess.ID, "url", url, name, size)
		if err := app.VideoRepo.InsertVideo(record); err != nil {
			log.Printf("Error recording download: %v", err)
		}
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *App) StartChatHandler(w http.ResponseWriter, r *http.Request) {
	sess := app.session(r)

	if sess.Artifact == "" {
		app.renderUpload(w, sess, "Please provide a video first", http.StatusBadRequest)
		return
	}
	if size, err := app.Storage.Size(sess.Artifact); err != nil || size == 0 {
		app.Sessions.Release(sess)
		app.renderUpload(w, sess, "Video not found. Please upload a video first.", http.StatusBadRequest)
		return
	}

	sess.Page = models.PageChat
	http.Redirect(w, r, "/chat", http.StatusSeeOther)
}

func (app *App) ResetHandler(w http.ResponseWriter, r *http.Request) {
	sess := app.session(r)

	if err := app.Sessions.Release(sess); err != nil {
		log.Printf("Error releasing session %s: %v", sess.ID, err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *App) VideoStreamHandler(w http.ResponseWriter, r *http.Request) {
	sess := app.session(r)

	if sess.Artifact == "" {
		http.NotFound(w, r)
		return
	}

	file, err := app.Storage.OpenFile(sess.Artifact)
	if err != nil {
		http.Error(w, "Video file not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	stat, err := file.(interface{ Stat() (os.FileInfo, error) }).Stat()
	if err != nil {
		http.Error(w, "Error accessing video file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "video/mp4")

	// ServeContent handles Range requests automatically.
	http.ServeContent(w, r, sess.Artifact, stat.ModTime(), file)
}

func (app *App) renderUpload(w http.ResponseWriter, sess *models.Session, errMsg string, status int) {
	data := uploadPageData{
		Title:  "The Plug",
		Method: sess.InputMethod,
		URL:    sess.SourceURL,
		Info:   sess.Info,
		Error:  errMsg,
	}
	if data.Method == "" {
		data.Method = models.MethodUpload
	}

	if sess.Artifact != "" {
		if size, err := app.Storage.Size(sess.Artifact); err == nil && size > 0 {
			data.Staged = true
			data.SizeLabel = formatFileSize(size)
			data.Source = sess.SourceFile
			if data.Source == "" {
				data.Source = sess.SourceURL
			}
		}
	}

	app.renderTemplate(w, "upload.html", status, data)
}

func (app *App) renderTemplate(w http.ResponseWriter, name string, status int, data any) {
	tmplPath := filepath.Join("web", "templates", name)
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		http.Error(w, "Error loading template", http.StatusInternalServerError)
		return
	}

	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	if err := tmpl.Execute(w, data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}

func downloadErrorMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidSource):
		return "Please enter a valid YouTube, Instagram, TikTok, or X video URL"
	case errors.Is(err, models.ErrTooLarge):
		return "Video too large. Please use a smaller video or upload the file directly."
	case errors.Is(err, models.ErrDownloadFailed):
		return "Download failed. The platform may be blocking automated downloads; try uploading the file instead."
	default:
		return fmt.Sprintf("Download failed: %v", err)
	}
}

func downloadErrorStatus(err error) int {
	if errors.Is(err, models.ErrInvalidSource) || errors.Is(err, models.ErrTooLarge) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func formatFileSize(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case size >= GB:
		return fmt.Sprintf("%.2f GB", float64(size)/float64(GB))
	case size >= MB:
		return fmt.Sprintf("%.2f MB", float64(size)/float64(MB))
	case size >= KB:
		return fmt.Sprintf("%.2f KB", float64(size)/float64(KB))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
