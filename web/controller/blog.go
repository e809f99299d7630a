package controller

import (
	"net/http"
	"strconv"

	"microblog/database"
	"microblog/logger"
	"microblog/util/common"
	"microblog/web/service"
	"microblog/web/session"

	"github.com/gin-gonic/gin"
)

// PostForm represents the add-post request structure.
type PostForm struct {
	Title string `json:"title" form:"title"`
	Body  string `json:"body" form:"body"`
}

// BlogController handles the public post pages and the add-post form.
type BlogController struct {
	BaseController

	postService *service.PostService
}

// NewBlogController creates a new BlogController and initializes its routes.
func NewBlogController(g *gin.RouterGroup, postService *service.PostService) *BlogController {
	a := &BlogController{postService: postService}
	a.initRouter(g)
	return a
}

func (a *BlogController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/posts/:id", a.show)

	add := g.Group("/add")
	add.Use(a.checkLogin)
	add.GET("", a.addForm)
	add.POST("", a.add)
}

// index lists every post, newest first.
func (a *BlogController) index(c *gin.Context) {
	posts, err := a.postService.ListPosts()
	if err != nil {
		logger.Error("list posts:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	html(c, "index.html", "pages.index.title", gin.H{"posts": posts})
}

// show renders a single post. A missing id flashes a message and sends the
// visitor back to the index.
func (a *BlogController) show(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		session.Flash(c, "No such post.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	post, err := a.postService.GetPost(id)
	if err != nil {
		if common.IsNotFoundError(err) {
			session.Flash(c, "No such post.")
			c.Redirect(http.StatusFound, "/")
			return
		}
		logger.Error("get post:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	html(c, "post.html", "pages.post.title", gin.H{"post": post})
}

// addForm renders the new-post form.
func (a *BlogController) addForm(c *gin.Context) {
	html(c, "add.html", "pages.add.title", nil)
}

// add creates a post authored by the logged-in user. Every storage
// constraint violation surfaces as the same message; the storage layer is
// the sole validator here.
func (a *BlogController) add(c *gin.Context) {
	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		session.Flash(c, "Invalid form data.")
		c.Redirect(http.StatusFound, "/add")
		return
	}

	post, err := a.postService.CreatePost(form.Title, form.Body, session.GetUserId(c))
	if err != nil {
		if database.IsConstraintViolation(err) {
			// Historical behavior: every violated constraint collapses
			// into the same message.
			session.Flash(c, "Posts must have a title and a body.")
			c.Redirect(http.StatusFound, "/add")
			return
		}
		logger.Error("create post:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	logger.Infof("%s published post %d", session.GetUsername(c), post.Id)
	c.Redirect(http.StatusFound, "/")
}
