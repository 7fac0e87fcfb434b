package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	c := Config{User: "app", Pass: "s3cret", Host: "db.internal", Port: "3306", Name: "taskflow"}
	assert.Equal(t,
		"app:s3cret@tcp(db.internal:3306)/taskflow?charset=utf8mb4&parseTime=true&loc=UTC",
		c.dsn())
}

func TestDSNEmptyPassword(t *testing.T) {
	// No password means no colon in the auth segment.
	c := Config{User: "app", Host: "localhost", Port: "3306", Name: "taskflow"}
	assert.Equal(t,
		"app@tcp(localhost:3306)/taskflow?charset=utf8mb4&parseTime=true&loc=UTC",
		c.dsn())
}
