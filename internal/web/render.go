package web

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Flash は次回（または同一リクエスト内）の描画で一度だけ表示するメッセージを積みます。
func Flash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	_ = session.Save()
}

// TakeFlashes は積まれたフラッシュメッセージを取り出して消費します。
func TakeFlashes(c *gin.Context) []string {
	session := sessions.Default(c)
	flashes := session.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	_ = session.Save()

	messages := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if s, ok := f.(string); ok {
			messages = append(messages, s)
		}
	}
	return messages
}

// Render はフラッシュメッセージを詰めたうえで名前付きテンプレートを描画します。
func Render(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Flashes"] = TakeFlashes(c)
	c.HTML(code, name, data)
}
