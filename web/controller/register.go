package controller

import (
	"net/http"

	"microblog/logger"
	"microblog/util/common"
	"microblog/web/service"
	"microblog/web/session"

	"github.com/gin-gonic/gin"
)

// RegisterForm represents the registration request structure.
type RegisterForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Email    string `json:"email" form:"email"`
}

// RegisterController handles account registration and confirmation.
type RegisterController struct {
	BaseController

	registrationService *service.RegistrationService
	mailer              service.Mailer
}

// NewRegisterController creates a new RegisterController and initializes its
// routes.
func NewRegisterController(g *gin.RouterGroup, registrationService *service.RegistrationService, mailer service.Mailer) *RegisterController {
	a := &RegisterController{registrationService: registrationService, mailer: mailer}
	a.initRouter(g)
	return a
}

func (a *RegisterController) initRouter(g *gin.RouterGroup) {
	g.GET("/register", a.registerForm)
	g.POST("/register", a.register)
	g.GET("/confirm/:regkey", a.confirm)
}

// registerForm shows the registration page.
func (a *RegisterController) registerForm(c *gin.Context) {
	html(c, "register.html", "pages.register.title", nil)
}

// register creates a pending registration and hands the confirmation token
// to the mailer. Validation failures flash every collected message.
func (a *RegisterController) register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		session.Flash(c, "Invalid form data.")
		c.Redirect(http.StatusFound, "/register")
		return
	}

	account, err := a.registrationService.Register(form.Username, form.Password, form.Email, true, "")
	if err != nil {
		if verr, ok := common.AsValidationError(err); ok {
			for _, msg := range verr.Messages {
				session.Flash(c, msg)
			}
			c.Redirect(http.StatusFound, "/register")
			return
		}
		logger.Error("register:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	pending := account.Pending
	if err := a.mailer.SendConfirmation(pending.Email, pending.Username, pending.Regkey); err != nil {
		logger.Warning("send confirmation:", err)
	}
	session.Flash(c, "Almost done! Check your email for the confirmation link.")
	c.Redirect(http.StatusFound, "/")
}

// confirm promotes the pending registration holding the key. An unknown key
// changes nothing and lands on the index, matching the historical behavior.
func (a *RegisterController) confirm(c *gin.Context) {
	user, err := a.registrationService.Confirm(c.Param("regkey"))
	if err != nil {
		logger.Error("confirm:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if user != nil {
		session.Flash(c, "Your account is confirmed. You can log in now.")
	}
	c.Redirect(http.StatusFound, "/")
}
