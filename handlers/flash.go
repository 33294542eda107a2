package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/Dosada05/bowling-tracker/web"
)

const flashCookieName = "bowling_flash"

const (
	flashSuccess = "success"
	flashError   = "error"
)

// setFlash queues a message for the next rendered page.
func setFlash(w http.ResponseWriter, r *http.Request, kind, message string) {
	flashes := append(readFlashes(r), web.Flash{Kind: kind, Message: message})
	raw, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeFlashes returns pending flashes and clears the cookie.
func takeFlashes(w http.ResponseWriter, r *http.Request) []web.Flash {
	flashes := readFlashes(r)
	if flashes != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     flashCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return flashes
}

func readFlashes(r *http.Request) []web.Flash {
	c, err := r.Cookie(flashCookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var flashes []web.Flash
	if err := json.Unmarshal(raw, &flashes); err != nil {
		return nil
	}
	return flashes
}
