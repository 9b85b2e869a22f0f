package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/blogr/internal/store"
	"github.com/yourusername/blogr/internal/web"
)

// Handler は登録・ログイン・ログアウトのハンドラー群です。
type Handler struct {
	users  *store.UserStore
	hasher *Hasher
}

// NewHandler はHandlerを作成します。
func NewHandler(users *store.UserStore, hasher *Hasher) *Handler {
	return &Handler{
		users:  users,
		hasher: hasher,
	}
}

// RegisterForm は GET /auth/register のハンドラーです。
func (h *Handler) RegisterForm(c *gin.Context) {
	user, _ := CurrentUser(c)
	web.Render(c, http.StatusOK, "register.html", gin.H{"User": user})
}

// Register は POST /auth/register のハンドラーです。
// バリデーションは「ユーザー名が空 → パスワードが空 → ユーザー名が使用済み」の順で行い、
// 最初に失敗した項目のエラーだけを表示します。
func (h *Handler) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	var message string
	switch {
	case username == "":
		message = "Username is required."
	case password == "":
		message = "Password is required."
	}

	if message == "" {
		digest, err := h.hasher.HashPassword(password)
		if err != nil {
			c.String(http.StatusInternalServerError, "internal server error")
			return
		}

		_, err = h.users.Create(c.Request.Context(), username, digest)
		switch {
		case err == nil:
			c.Redirect(http.StatusSeeOther, "/auth/login")
			return
		case errors.Is(err, store.ErrUsernameTaken):
			message = fmt.Sprintf("User %s is already registered.", username)
		default:
			c.String(http.StatusInternalServerError, "internal server error")
			return
		}
	}

	user, _ := CurrentUser(c)
	web.Flash(c, message)
	web.Render(c, http.StatusOK, "register.html", gin.H{"User": user})
}

// LoginForm は GET /auth/login のハンドラーです。
func (h *Handler) LoginForm(c *gin.Context) {
	user, _ := CurrentUser(c)
	web.Render(c, http.StatusOK, "login.html", gin.H{"User": user})
}

// Login は POST /auth/login のハンドラーです。
// ユーザー名不明とパスワード不一致は別のメッセージを返します。ユーザー名の列挙が
// 可能になりますが、元の挙動を変えない設計判断として受け入れています。
func (h *Handler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	var message string
	user, err := h.users.GetByUsername(c.Request.Context(), username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		message = "Incorrect username."
	case err != nil:
		c.String(http.StatusInternalServerError, "internal server error")
		return
	case !h.hasher.VerifyPassword(user.PasswordHash, password):
		message = "Incorrect password."
	}

	if message == "" {
		if err := SignIn(c, user.ID); err != nil {
			c.String(http.StatusInternalServerError, "internal server error")
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	current, _ := CurrentUser(c)
	web.Flash(c, message)
	web.Render(c, http.StatusOK, "login.html", gin.H{"User": current})
}

// Logout は GET /auth/logout のハンドラーです。既に匿名でも同じ結果になります。
func (h *Handler) Logout(c *gin.Context) {
	if err := SignOut(c); err != nil {
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}
