// Package controller provides the HTTP request handlers of the microblog:
// the public pages, login/logout and registration.
package controller

import (
	"net/http"

	"microblog/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides common functionality for all controllers,
// including the login gate.
type BaseController struct{}

// checkLogin is a middleware that sends anonymous visitors to the login
// page. AJAX callers get a JSON rejection instead of a redirect.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		if isAjax(c) {
			pureJsonMsg(c, http.StatusUnauthorized, false, "Please log in first.")
		} else {
			session.Flash(c, "Please log in first.")
			c.Redirect(http.StatusTemporaryRedirect, "/login")
		}
		c.Abort()
		return
	}
	c.Next()
}
