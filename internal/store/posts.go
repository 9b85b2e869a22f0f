package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// Post はブログ記事の1レコードです。
// AuthorName は一覧表示用にuserテーブルから結合した値で、postテーブル自体には持ちません。
type Post struct {
	ID         int64
	Title      string
	Body       string
	Created    time.Time
	AuthorID   int64
	AuthorName string
}

// PostStore はpostテーブルへのアクセスを提供します。
type PostStore struct {
	db *sql.DB
}

// NewPostStore はPostStoreを作成します。
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// Create は記事を作成し、採番されたIDと作成日時をpostに書き戻します。
func (s *PostStore) Create(ctx context.Context, post *Post) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	created := time.Now().UTC()
	query, args, err := sq.Insert("post").
		Columns("title", "body", "created", "author_id").
		Values(post.Title, post.Body, created, post.AuthorID).
		ToSql()
	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	post.ID = id
	post.Created = created
	return nil
}

// GetByID はIDで記事を取得します。
// 存在しない場合は記事IDを含むエラーで ErrNotFound をラップして返します。
func (s *PostStore) GetByID(ctx context.Context, id int64) (*Post, error) {
	query, args, err := sq.Select("p.id", "p.title", "p.body", "p.created", "p.author_id", "u.username").
		From("post p").
		Join("user u ON p.author_id = u.id").
		Where(sq.Eq{"p.id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	post := &Post{}
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&post.ID, &post.Title, &post.Body, &post.Created, &post.AuthorID, &post.AuthorName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post id %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query post: %w", err)
	}
	return post, nil
}

// List は全記事を新しい順（作成日時の降順）で返します。
func (s *PostStore) List(ctx context.Context) ([]*Post, error) {
	query, args, err := sq.Select("p.id", "p.title", "p.body", "p.created", "p.author_id", "u.username").
		From("post p").
		Join("user u ON p.author_id = u.id").
		OrderBy("p.created DESC", "p.id DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []*Post{}
	for rows.Next() {
		post := &Post{}
		if err := rows.Scan(&post.ID, &post.Title, &post.Body, &post.Created, &post.AuthorID, &post.AuthorName); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

// Update はタイトルと本文を更新します。対象が存在しない場合は ErrNotFound を返します。
func (s *PostStore) Update(ctx context.Context, id int64, title, body string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query, args, err := sq.Update("post").
		Set("title", title).
		Set("body", body).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("post id %d: %w", id, ErrNotFound)
	}

	return tx.Commit()
}

// Delete は記事を削除します。対象が存在しない場合は ErrNotFound を返します。
func (s *PostStore) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query, args, err := sq.Delete("post").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("post id %d: %w", id, ErrNotFound)
	}

	return tx.Commit()
}
