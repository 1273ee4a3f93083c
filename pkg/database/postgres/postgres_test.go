package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDSN(t *testing.T) {
	cfg := &Config{
		Host:     "db",
		Port:     "5432",
		User:     "omnipos",
		Password: "secret",
		DBName:   "omnipos_retail",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=db port=5432 user=omnipos password=secret dbname=omnipos_retail sslmode=disable", cfg.DSN())
}
