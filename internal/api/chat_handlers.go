package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/theplug/theplug/internal/models"
)

type chatPageData struct {
	Title   string
	Source  string
	Info    *models.VideoInfo
	History []models.QA
	Enabled bool
	Error   string
}

func (app *App) ChatPageHandler(w http.ResponseWriter, r *http.Request) {
	sess := app.session(r)

	if sess.Artifact == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	sess.Page = models.PageChat

	app.renderChat(w, sess, "", http.StatusOK)
}

// AskHandler runs one blocking question turn against the cached artifact.
// A failed turn leaves the chat history unchanged; a processing timeout
// keeps the artifact so the user can retry.
func (app *App) AskHandler(w http.ResponseWriter, r *http.Request) {
	sess := app.session(r)

	if sess.Artifact == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	question := strings.TrimSpace(r.FormValue("question"))
	if question == "" {
		app.renderChat(w, sess, "Please enter a question about the video.", http.StatusBadRequest)
		return
	}

	if app.Analyzer == nil {
		app.renderChat(w, sess, "Video analysis is not configured. Set GOOGLE_API_KEY to enable chat.", http.StatusServiceUnavailable)
		return
	}

	answer, err := app.Analyzer.AskVideo(r.Context(), app.Storage.FullPath(sess.Artifact), question)
	if err != nil {
		if errors.Is(err, models.ErrProcessingTimeout) {
			app.renderChat(w, sess, "The video is still processing on the remote side. Please try again in a moment.", http.StatusGatewayTimeout)
			return
		}
		log.Printf("Analysis error for session %s: %v", sess.ID, err)
		app.renderChat(w, sess, fmt.Sprintf("An error occurred during analysis: %v", err), http.StatusBadGateway)
		return
	}

	qa := models.QA{Question: question, Answer: answer, AskedAt: time.Now()}
	sess.History = append(sess.History, qa)

	if app.QuestionRepo != nil {
		if err := app.QuestionRepo.Insert(sess.ID, qa); err != nil {
			log.Printf("Error recording question: %v", err)
		}
	}

	app.renderChat(w, sess, "", http.StatusOK)
}

func (app *App) renderChat(w http.ResponseWriter, sess *models.Session, errMsg string, status int) {
	source := sess.SourceFile
	if source == "" {
		source = sess.SourceURL
	}

	data := chatPageData{
		Title:   "The Plug",
		Source:  source,
		Info:    sess.Info,
		History: sess.History,
		Enabled: app.Analyzer != nil,
		Error:   errMsg,
	}

	app.renderTemplate(w, "chat.html", status, data)
}
