package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RefreshCookieName is the cookie carrying the refresh token. The token
// travels only here, never in a JSON body.
const RefreshCookieName = "refreshToken"

// CookieConfig controls the attributes of the refresh-token cookie.
type CookieConfig struct {
	// MaxAge matches the refresh token TTL.
	MaxAge int
	// Secure is set in production so the cookie only travels over HTTPS.
	Secure bool
}

func setRefreshCookie(c *gin.Context, cfg CookieConfig, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RefreshCookieName, token, cfg.MaxAge, "/", "", cfg.Secure, true)
}

// clearRefreshCookie expires the cookie with the same attributes it was set
// with, so the browser actually drops it.
func clearRefreshCookie(c *gin.Context, cfg CookieConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RefreshCookieName, "", -1, "/", "", cfg.Secure, true)
}

func refreshTokenFromCookie(c *gin.Context) string {
	token, err := c.Cookie(RefreshCookieName)
	if err != nil {
		return ""
	}
	return token
}
