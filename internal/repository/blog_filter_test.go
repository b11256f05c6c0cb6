package repository

import (
	"Inkpost/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "inkpost:inkpost@tcp(127.0.0.1:3306)/inkpost?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func renderFilter(t *testing.T, f BlogFilter) (string, []any) {
	t.Helper()
	var posts []*model.BlogPost
	stmt := dryRunDB(t).Scopes(f.Apply).Find(&posts).Statement
	return stmt.SQL.String(), stmt.Vars
}

func TestBlogFilter(t *testing.T) {
	t.Run("anonymous sees published only", func(t *testing.T) {
		sql, vars := renderFilter(t, And(VisibleTo{UserID: 0, IncludeOwn: true}))
		assert.Contains(t, sql, "status = ?")
		assert.NotContains(t, sql, "user_id")
		assert.Equal(t, []any{"published"}, vars)
	})

	t.Run("includeOwn off ignores ownership", func(t *testing.T) {
		sql, vars := renderFilter(t, And(VisibleTo{UserID: 7}))
		assert.NotContains(t, sql, "user_id")
		assert.Equal(t, []any{"published"}, vars)
	})

	t.Run("owner plus published", func(t *testing.T) {
		sql, vars := renderFilter(t, And(VisibleTo{UserID: 7, IncludeOwn: true}))
		assert.Contains(t, sql, "user_id = ? OR status = ?")
		assert.Equal(t, []any{uint64(7), "published"}, vars)
	})

	t.Run("tags are lowercased and combined with AND", func(t *testing.T) {
		sql, vars := renderFilter(t, And(
			VisibleTo{UserID: 7, IncludeOwn: true},
			HasAnyTag{Tags: []string{" Go ", "RUST", ""}},
		))
		assert.Contains(t, sql, "SELECT blog_id FROM blog_post_tags WHERE tag IN")
		assert.Contains(t, sql, " AND ")
		assert.Equal(t, []any{uint64(7), "published", "go", "rust"}, vars)
	})

	t.Run("empty tag filter is a no-op", func(t *testing.T) {
		sql, _ := renderFilter(t, And(HasAnyTag{Tags: []string{" "}}))
		assert.NotContains(t, sql, "blog_post_tags")
	})

	t.Run("empty id set matches nothing", func(t *testing.T) {
		sql, _ := renderFilter(t, And(IDIn{}))
		assert.Contains(t, sql, "1 = 0")
	})

	t.Run("like keyword is escaped", func(t *testing.T) {
		_, vars := renderFilter(t, And(TextContains{Keyword: "100%_done"}))
		require.Len(t, vars, 3)
		assert.Equal(t, `%100\%\_done%`, vars[0])
	})

	t.Run("With does not mutate the receiver", func(t *testing.T) {
		base := And(StatusIs{Status: "published"})
		_ = base.With(OwnedBy{UserID: 1})
		sql, _ := renderFilter(t, base)
		assert.NotContains(t, sql, "user_id")
	})
}
