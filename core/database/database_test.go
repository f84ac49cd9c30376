package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "lakecircle",
			TimeoutSeconds: 1,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}

func TestDSN(t *testing.T) {
	dsn := DSN(Config{
		Host:     "db.internal",
		Port:     3306,
		User:     "lake",
		Password: "p@ss:word",
		Name:     "lakecircle",
	})

	assert.Contains(t, dsn, "lake:p%40ss%3Aword@tcp(db.internal:3306)/lakecircle?")
	assert.Contains(t, dsn, "parseTime=True")
	assert.Contains(t, dsn, "timeout=30s")
}
