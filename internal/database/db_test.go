package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN("app", "s3cret", "127.0.0.1", "3306", "college")
	assert.Equal(t, "app:s3cret@tcp(127.0.0.1:3306)/college?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true", dsn)
}

func TestBuildDSN_EmptyPassword(t *testing.T) {
	dsn := buildDSN("app", "", "db", "3306", "college")
	assert.Equal(t, "app@tcp(db:3306)/college?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true", dsn)
}

// Repositories map RowsAffected()==0 to not-found errors, which is only
// sound when the driver counts matched rows rather than changed rows.
// Saving a column at its current value must still count as one row.
func TestBuildDSN_ReportsFoundRows(t *testing.T) {
	assert.Contains(t, buildDSN("u", "p", "h", "3306", "d"), "clientFoundRows=true")
}
