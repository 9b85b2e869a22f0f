package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher はパスワードの一方向ハッシュ化と検証を提供します。
// bcryptは呼び出しごとにソルトを生成するため、同じ平文でもダイジェストは毎回異なります。
type Hasher struct {
	cost int
}

// NewHasher はHasherを作成します。costにはbcryptのコストパラメータを指定します。
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// HashPassword は平文パスワードからソルト付きダイジェストを生成します。
// 平文はここで消費されるだけで、永続化もログ出力もされません。
func (h *Hasher) HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword はダイジェストと平文を比較します。
// bcryptの比較は定数時間で行われるため、タイミング差から不一致位置は漏れません。
func (h *Hasher) VerifyPassword(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
