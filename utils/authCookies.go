package utils

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	accessCookieName  = "accessToken"
	refreshCookieName = "refreshToken"
)

// SetAuthCookies stores both session tokens as HTTP-only cookies.
func SetAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	setCookie(c, accessCookieName, accessToken, AccessTokenExpiry)
	setCookie(c, refreshCookieName, refreshToken, RefreshTokenExpiry)
}

// ClearAuthCookies removes both session cookies on logoff.
func ClearAuthCookies(c *gin.Context) {
	clearCookie(c, accessCookieName)
	clearCookie(c, refreshCookieName)
}

func setCookie(c *gin.Context, name, value string, expiry time.Duration) {
	c.SetCookie(name, value, int(expiry.Seconds()), "/", "", secureCookies(), true)
}

func clearCookie(c *gin.Context, name string) {
	c.SetCookie(name, "", -1, "/", "", secureCookies(), true)
}

// secureCookies is false only in debug mode so local dev works over http.
func secureCookies() bool {
	return gin.Mode() != gin.DebugMode
}
