package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrateURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{
			in:   "postgres://u:p@db:5432/shop",
			want: "pgx5://u:p@db:5432/shop?x-migrations-table=storefront_schema_migrations",
		},
		{
			in:   "postgresql://u:p@db:5432/shop?sslmode=disable",
			want: "pgx5://u:p@db:5432/shop?sslmode=disable&x-migrations-table=storefront_schema_migrations",
		},
		{
			in:   "pgx5://u:p@db:5432/shop",
			want: "pgx5://u:p@db:5432/shop",
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, migrateURL(tt.in))
	}
}
