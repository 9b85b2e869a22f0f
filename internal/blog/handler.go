package blog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/blogr/internal/auth"
	"github.com/yourusername/blogr/internal/store"
	"github.com/yourusername/blogr/internal/web"
)

// Handler はブログ記事のハンドラー群です。
type Handler struct {
	posts *store.PostStore
}

// NewHandler はHandlerを作成します。
func NewHandler(posts *store.PostStore) *Handler {
	return &Handler{posts: posts}
}

// Index は GET / のハンドラーです。全記事を新しい順に表示します。
// 一覧は誰でも閲覧できる唯一の読み取り経路で、所有権の検証は行いません。
func (h *Handler) Index(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	user, _ := auth.CurrentUser(c)
	web.Render(c, http.StatusOK, "index.html", gin.H{
		"User":  user,
		"Posts": posts,
	})
}

// CreateForm は GET /create のハンドラーです。
func (h *Handler) CreateForm(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	web.Render(c, http.StatusOK, "create.html", gin.H{
		"User":  user,
		"Title": "",
		"Body":  "",
	})
}

// Create は POST /create のハンドラーです。タイトルは必須、本文は空でも構いません。
func (h *Handler) Create(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	title := c.PostForm("title")
	body := c.PostForm("body")

	if title == "" {
		web.Flash(c, "Title is required.")
		web.Render(c, http.StatusOK, "create.html", gin.H{
			"User":  user,
			"Title": title,
			"Body":  body,
		})
		return
	}

	post := &store.Post{
		Title:    title,
		Body:     body,
		AuthorID: user.ID,
	}
	if err := h.posts.Create(c.Request.Context(), post); err != nil {
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// UpdateForm は GET /:id/update のハンドラーです。
func (h *Handler) UpdateForm(c *gin.Context) {
	user, _ := auth.CurrentUser(c)

	post, ok := h.ownedPost(c, user)
	if !ok {
		return
	}

	web.Render(c, http.StatusOK, "update.html", gin.H{
		"User":  user,
		"Post":  post,
		"Title": post.Title,
		"Body":  post.Body,
	})
}

// Update は POST /:id/update のハンドラーです。
func (h *Handler) Update(c *gin.Context) {
	user, _ := auth.CurrentUser(c)

	post, ok := h.ownedPost(c, user)
	if !ok {
		return
	}

	title := c.PostForm("title")
	body := c.PostForm("body")

	if title == "" {
		// 入力済みの値を失わないよう、保存済みの記事ではなく送信値で再描画する
		web.Flash(c, "Title is required.")
		web.Render(c, http.StatusOK, "update.html", gin.H{
			"User":  user,
			"Post":  post,
			"Title": title,
			"Body":  body,
		})
		return
	}

	if err := h.posts.Update(c.Request.Context(), post.ID, title, body); err != nil {
		h.renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// Delete は POST /:id/delete のハンドラーです。
func (h *Handler) Delete(c *gin.Context) {
	user, _ := auth.CurrentUser(c)

	post, ok := h.ownedPost(c, user)
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), post.ID); err != nil {
		h.renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// ownedPost はパスパラメータの記事IDを解決し、所有権を検証します。
// 失敗した場合はエラーページを描画済みの状態で ok=false を返します。
func (h *Handler) ownedPost(c *gin.Context, user *store.User) (*store.Post, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.renderError(c, store.ErrNotFound)
		return nil, false
	}

	post, err := h.fetchOwned(c.Request.Context(), id, user, true)
	if err != nil {
		h.renderError(c, err)
		return nil, false
	}

	return post, true
}

func (h *Handler) renderError(c *gin.Context, err error) {
	user, _ := auth.CurrentUser(c)

	status := http.StatusInternalServerError
	message := "internal server error"
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	}

	web.Render(c, status, "error.html", gin.H{
		"User":    user,
		"Status":  status,
		"Message": message,
	})
	c.Abort()
}
