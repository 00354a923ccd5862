package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Computes like details for the caller", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		postRows := sqlmock.NewRows([]string{"id", "author_id", "content", "likes_count", "liked"}).
			AddRow(5, 2, "hello", 3, true)
		mock.ExpectQuery(`SELECT posts\.\*, \(SELECT COUNT\(\*\) FROM likes WHERE likes\.post_id = posts\.id\) as likes_count, EXISTS`).
			WillReturnRows(postRows)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow(2, "author@example.com"))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "post_hashtags" WHERE "post_hashtags"."post_id" = $1`)).
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows([]string{"post_id", "hashtag_id"}))

		post, err := repo.GetByID(ctx, 5, 9)
		require.NoError(t, err)
		assert.Equal(t, 3, post.LikesCount)
		assert.True(t, post.Liked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing post maps to not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(`SELECT posts\.\*`).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.GetByID(ctx, 99, 1)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", appErrorCode(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_Like(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`INSERT INTO likes \(user_id, post_id, created_at\)`).
		WithArgs(1, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Like(ctx, 1, 5))
	assert.NoError(t, mock.ExpectationsWereMet())

	// Second insert hits the conflict clause and affects no rows.
	mock.ExpectExec(`INSERT INTO likes \(user_id, post_id, created_at\)`).
		WithArgs(1, 5).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Like(ctx, 1, 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Unlike(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE user_id = $1 AND post_id = $2`)).
		WithArgs(1, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Unlike(ctx, 1, 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_IsLiked(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "likes" WHERE user_id = $1 AND post_id = $2`)).
		WithArgs(1, 5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	liked, err := repo.IsLiked(ctx, 1, 5)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHashtagRepository_GetOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Inserts new tag", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewHashtagRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "hashtags" .*ON CONFLICT \("name"\) DO NOTHING`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
		mock.ExpectCommit()

		tag, err := repo.GetOrCreate(ctx, "golang")
		require.NoError(t, err)
		assert.Equal(t, uint(4), tag.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Conflict falls back to reselect", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewHashtagRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "hashtags" .*ON CONFLICT \("name"\) DO NOTHING`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectCommit()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "hashtags" WHERE name = $1 ORDER BY "hashtags"."id" LIMIT $2`)).
			WithArgs("golang", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(4, "golang"))

		tag, err := repo.GetOrCreate(ctx, "golang")
		require.NoError(t, err)
		assert.Equal(t, uint(4), tag.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
