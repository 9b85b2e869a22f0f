package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// User は登録済みユーザーの1レコードです。
// PasswordHash にはbcryptダイジェストのみを保持し、平文は一切保存しません。
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}

// UserStore はuserテーブルへのアクセスを提供します。
type UserStore struct {
	db *sql.DB
}

// NewUserStore はUserStoreを作成します。
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Create はユーザーを登録します。
// ユーザー名が既に使われている場合は ErrUsernameTaken を返します。
func (s *UserStore) Create(ctx context.Context, username, passwordHash string) (*User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query, args, err := sq.Insert("user").
		Columns("username", "password_hash").
		Values(username, passwordHash).
		ToSql()
	if err != nil {
		return nil, err
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("user %q: %w", username, ErrUsernameTaken)
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &User{ID: id, Username: username, PasswordHash: passwordHash}, nil
}

// GetByID はIDでユーザーを取得します。存在しない場合は ErrNotFound を返します。
func (s *UserStore) GetByID(ctx context.Context, id int64) (*User, error) {
	query, args, err := sq.Select("id", "username", "password_hash").
		From("user").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	return s.scanOne(ctx, query, args)
}

// GetByUsername はユーザー名（大文字小文字を区別する完全一致）でユーザーを取得します。
// 存在しない場合は ErrNotFound を返します。
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	query, args, err := sq.Select("id", "username", "password_hash").
		From("user").
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, err
	}

	return s.scanOne(ctx, query, args)
}

func (s *UserStore) scanOne(ctx context.Context, query string, args []interface{}) (*User, error) {
	user := &User{}
	err := s.db.QueryRowContext(ctx, query, args...).
		Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

// isUniqueViolation はSQLiteの一意性制約違反かどうかを判定します。
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
