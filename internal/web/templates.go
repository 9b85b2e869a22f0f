// Package web はHTMLレンダリングとフラッシュメッセージを提供します。
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates は埋め込みテンプレートをパースして返します。
// gin の SetHTMLTemplate に渡して使います。
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// StaticFS は埋め込み静的ファイルを返します。gin の StaticFS に渡して使います。
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
