package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.SessionMiddleware)

	r.Get("/", app.HomeHandler)
	r.Get("/ping", PingHandler)

	r.Post("/method", app.MethodHandler)
	r.Post("/upload", app.UploadHandler)
	r.Post("/url", app.URLHandler)
	r.Post("/start", app.StartChatHandler)
	r.Post("/reset", app.ResetHandler)

	r.Get("/chat", app.ChatPageHandler)
	r.Post("/chat", app.AskHandler)
	r.Get("/video", app.VideoStreamHandler)

	fileServer := http.FileServer(http.Dir("./web/static"))
	r.Handle("/static/*", http.StripPrefix("/static", fileServer))

	return r
}
