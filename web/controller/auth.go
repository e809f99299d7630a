package controller

import (
	"net/http"

	"microblog/logger"
	"microblog/web/service"
	"microblog/web/session"

	"github.com/gin-gonic/gin"
)

// LoginForm represents the login request structure.
type LoginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// AuthController handles login and logout.
type AuthController struct {
	BaseController

	userService *service.UserService
}

// NewAuthController creates a new AuthController and initializes its routes.
func NewAuthController(g *gin.RouterGroup, userService *service.UserService) *AuthController {
	a := &AuthController{userService: userService}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g.GET("/login", a.loginForm)
	g.POST("/login", a.login)
	g.GET("/logout", a.logout)
}

// loginForm shows the login page, or the index when already logged in.
func (a *AuthController) loginForm(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusTemporaryRedirect, "/")
		return
	}
	html(c, "login.html", "pages.login.title", nil)
}

// login authenticates the credentials and establishes the session.
func (a *AuthController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		a.reject(c, "Invalid form data.")
		return
	}

	user, err := a.userService.Authenticate(form.Username, form.Password)
	if err != nil {
		logger.Warningf("failed login for %q from %s: %v", form.Username, getRemoteIp(c), err)
		a.reject(c, err.Error())
		return
	}

	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("unable to save session:", err)
		a.reject(c, "Unable to save the session.")
		return
	}

	logger.Infof("%s logged in from %s", user.Username, getRemoteIp(c))
	if isAjax(c) {
		jsonMsg(c, "Logged in.", nil)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// logout clears the login fields and returns to the index. Idempotent.
func (a *AuthController) logout(c *gin.Context) {
	if name := session.GetUsername(c); name != "" {
		logger.Infof("%s logged out", name)
	}
	if err := session.ClearLogin(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	c.Redirect(http.StatusTemporaryRedirect, "/")
}

func (a *AuthController) reject(c *gin.Context, msg string) {
	if isAjax(c) {
		pureJsonMsg(c, http.StatusOK, false, msg)
		return
	}
	session.Flash(c, msg)
	c.Redirect(http.StatusFound, "/login")
}
