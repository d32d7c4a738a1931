package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	gormlogger "gorm.io/gorm/logger"
)

func TestOperationFromSQL(t *testing.T) {
	cases := map[string]string{
		`SELECT * FROM "salaries"`:                               "SELECT",
		`INSERT INTO "emails" ("email") VALUES ($1) ON CONFLICT`: "INSERT",
		`WITH x AS (SELECT 1) SELECT * FROM x`:                   "SELECT",
		"":                                                       "UNKNOWN",
	}
	for sql, want := range cases {
		assert.Equal(t, want, operationFromSQL(sql), sql)
	}
}

func TestGormLoggerDropsParams(t *testing.T) {
	l := NewGormLogger(DefaultGormLoggerConfig())
	sql, params := l.ParamsFilter(nil, "SELECT 1 WHERE email = ?", "a@b.co")
	assert.Equal(t, "SELECT 1 WHERE email = ?", sql)
	assert.Nil(t, params)

	quiet := l.LogMode(gormlogger.Silent).(*GormLogger)
	assert.Equal(t, gormlogger.Silent, quiet.cfg.Level)
	assert.Equal(t, gormlogger.Warn, l.cfg.Level)
}
