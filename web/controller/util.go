package controller

import (
	"net"
	"net/http"

	"microblog/web/entity"
	"microblog/web/locale"
	"microblog/web/session"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real IP address from the request headers or the
// remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// pureJsonMsg sends a JSON message response with a custom status code.
func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	c.JSON(statusCode, entity.Msg{
		Success: success,
		Msg:     msg,
	})
}

// jsonMsg sends a successful JSON response carrying msg and obj.
func jsonMsg(c *gin.Context, msg string, obj any) {
	c.JSON(http.StatusOK, entity.Msg{
		Success: true,
		Msg:     msg,
		Obj:     obj,
	})
}

// html renders a template with the session state, queued flash messages and
// the localized page title merged into data.
func html(c *gin.Context, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = locale.I18n(title)
	data["flashes"] = session.Flashes(c)
	data["loggedIn"] = session.IsLogin(c)
	data["username"] = session.GetUsername(c)
	c.HTML(http.StatusOK, name, data)
}

// isAjax checks if the request is an AJAX request.
func isAjax(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}
