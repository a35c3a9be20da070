package api

import (
	"context"
	"net/http"

	"github.com/theplug/theplug/internal/models"
)

const sessionCookie = "plug_session"

type sessionKey struct{}

// SessionMiddleware attaches the browser's session to the request,
// creating one (and setting the cookie) on first contact.
func (app *App) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sess *models.Session
		if cookie, err := r.Cookie(sessionCookie); err == nil {
			sess, _ = app.Sessions.Get(cookie.Value)
		}
		if sess == nil {
			sess = app.Sessions.Create()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *App) session(r *http.Request) *models.Session {
	sess, _ := r.Context().Value(sessionKey{}).(*models.Session)
	return sess
}
