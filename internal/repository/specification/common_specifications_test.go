package specification

import (
	"testing"

	"blog-publishing-be/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func dryRunSQL(t *testing.T, specs ...Specification) string {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)

	query := db.Model(&model.Post{})
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	var posts []model.Post
	return query.Find(&posts).Statement.SQL.String()
}

func TestPagination(t *testing.T) {
	cases := []struct {
		name        string
		spec        Pagination
		contains    []string
		notContains []string
	}{
		{
			name:        "zero limit leaves the query unbounded",
			spec:        Pagination{},
			notContains: []string{"LIMIT", "OFFSET"},
		},
		{
			name:        "limit without offset",
			spec:        Pagination{Limit: 6},
			contains:    []string{"LIMIT 6"},
			notContains: []string{"OFFSET"},
		},
		{
			name:     "second page",
			spec:     Pagination{Limit: 10, Offset: 10},
			contains: []string{"LIMIT 10 OFFSET 10"},
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			sql := dryRunSQL(t, tt.spec)
			for _, want := range tt.contains {
				assert.Contains(t, sql, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, sql, unwanted)
			}
		})
	}
}

func TestOrderBy(t *testing.T) {
	assert.Contains(t, dryRunSQL(t, OrderBy{Field: "created_at", Desc: true}), "ORDER BY `created_at` DESC")
	assert.NotContains(t, dryRunSQL(t, OrderBy{Field: "created_at"}), "DESC")
}
