// Package auth は認証・認可機能を提供します。
package auth

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// SessionCookieName はセッションCookieの名前です。
	SessionCookieName = "blogr_session"

	sessionKeyUserID   = "user_id"
	sessionKeyIssuedAt = "issued_at"
)

var maxSessionLifetime = 12 * time.Hour

// SetSessionLifetime はセッションの有効期間を設定します。起動時に一度だけ呼びます。
func SetSessionLifetime(d time.Duration) {
	if d > 0 {
		maxSessionLifetime = d
	}
}

// SessionMaxAgeSeconds はクッキーの MaxAge に利用する秒数を返します。
func SessionMaxAgeSeconds() int {
	return int(maxSessionLifetime.Seconds())
}

// セッションはサーバー側に状態を持たず、署名付きCookieそのものが状態となります。
// そのためログアウトはクライアント側のCookieを消すだけであり、ログアウト前に
// 複製されたCookieは有効期限まで技術的には使用可能です。これはステートレス
// セッションの既知の制約として受け入れています。

// SignIn は既存のセッションを破棄したうえで、userID に紐付く新しいセッションを発行します。
func SignIn(c *gin.Context, userID int64) error {
	session := sessions.Default(c)
	session.Clear()
	session.Set(sessionKeyUserID, userID)
	session.Set(sessionKeyIssuedAt, time.Now().Unix())
	return session.Save()
}

// ReadUserID はセッションからユーザーIDを読み取ります。
// 署名不一致・型不一致・期限切れなどはすべて「セッションなし」として扱います（fail closed）。
func ReadUserID(c *gin.Context) (int64, bool) {
	session := sessions.Default(c)

	userID, ok := session.Get(sessionKeyUserID).(int64)
	if !ok {
		return 0, false
	}

	issuedAt := readUnix(session.Get(sessionKeyIssuedAt))
	if issuedAt.IsZero() || time.Since(issuedAt) > maxSessionLifetime {
		session.Clear()
		_ = session.Save()
		return 0, false
	}

	return userID, true
}

// SignOut はセッションを無条件に破棄します。既に匿名でも安全に呼べます（冪等）。
func SignOut(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}

func readUnix(v interface{}) time.Time {
	switch t := v.(type) {
	case int64:
		return time.Unix(t, 0)
	case int:
		return time.Unix(int64(t), 0)
	case float64:
		return time.Unix(int64(t), 0)
	default:
		return time.Time{}
	}
}
