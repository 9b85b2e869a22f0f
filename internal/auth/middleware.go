package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/blogr/internal/store"
)

// ContextUserKey は、ハンドラー間でログイン済みユーザーを共有するためのキーです。
const ContextUserKey = "auth.user"

// LoadUser はリクエストごとにセッションを解決するミドルウェアを返します。
// セッションが有効なユーザーを指していればコンテキストに載せ、
// ユーザーが存在しない・セッションが壊れている場合は匿名として続行します。
// ストア自体の障害は匿名と区別し、500で打ち切ります。
func LoadUser(users *store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := ReadUserID(c)
		if !ok {
			c.Next()
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			// 削除済み・存在しないユーザーを指すセッションは匿名扱い
			// それ以外のストア障害は匿名に偽装せずリクエストを打ち切る
			if errors.Is(err, store.ErrNotFound) {
				c.Next()
				return
			}
			c.String(http.StatusInternalServerError, "internal server error")
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser はLoadUserが解決したログイン済みユーザーを返します。
// 匿名の場合は ok=false を返します。
func CurrentUser(c *gin.Context) (*store.User, bool) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*store.User)
	return user, ok
}

// RequireLogin はログイン済みでなければログイン画面へリダイレクトするミドルウェアを返します。
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusSeeOther, "/auth/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
