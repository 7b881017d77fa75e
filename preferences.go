package folio

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/views"
)

const prefsSession = "folio_prefs"

// Default preferences for readers without a cookie.
const (
	DefaultTheme = "system"
	DefaultSound = "on"
)

var (
	themes = map[string]bool{"light": true, "dark": true, "system": true}
	sounds = map[string]bool{"on": true, "off": true}
)

// Preferences reads the reader's saved theme and sound choice.
func Preferences(c echo.Context) views.Preferences {
	p := views.Preferences{Theme: DefaultTheme, Sound: DefaultSound}
	sess, err := session.Get(prefsSession, c)
	if err != nil {
		return p
	}
	if v, ok := sess.Values["theme"].(string); ok && themes[v] {
		p.Theme = v
	}
	if v, ok := sess.Values["sound"].(string); ok && sounds[v] {
		p.Sound = v
	}
	return p
}

func (a *App) handleTheme(c echo.Context) error {
	return a.savePreference(c, "theme", themes)
}

func (a *App) handleSound(c echo.Context) error {
	return a.savePreference(c, "sound", sounds)
}

func (a *App) savePreference(c echo.Context, key string, allowed map[string]bool) error {
	if !a.limiter.Allow(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many preference changes")
	}
	value := c.FormValue(key)
	if !allowed[value] {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid "+key)
	}
	sess, err := session.Get(prefsSession, c)
	if err != nil {
		return err
	}
	sess.Values[key] = value
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, returnPath(c.FormValue("next")))
}

// returnPath accepts only local absolute paths.
func returnPath(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return "/"
	}
	return next
}
