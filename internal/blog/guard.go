// Package blog はブログ記事の一覧・作成・編集・削除を提供します。
package blog

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourusername/blogr/internal/store"
)

// ErrForbidden は記事の作者以外による変更操作を示します。
var ErrForbidden = errors.New("forbidden")

// fetchOwned は記事を取得し、必要に応じて所有権を検証します。
// 記事が存在しなければ store.ErrNotFound を、enforceAuthor が真でかつ
// user が作者でなければ ErrForbidden を（いずれも記事IDを含めて）返します。
// update と delete は必ずこの関数を通ることで、認可ロジックの分岐を防ぎます。
func (h *Handler) fetchOwned(ctx context.Context, id int64, user *store.User, enforceAuthor bool) (*store.Post, error) {
	post, err := h.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if enforceAuthor && post.AuthorID != user.ID {
		return nil, fmt.Errorf("post id %d: %w", id, ErrForbidden)
	}

	return post, nil
}
