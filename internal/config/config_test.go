package config

import (
	"testing"
	"time"

	"github.com/sangkips/bebidas-pos/pkg/apperror"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	cfg := &Config{App: AppConfig{Storage: StorageMemory}}
	assert.NoError(t, cfg.Validate())

	cfg = &Config{App: AppConfig{Storage: StoragePostgres}, Database: DatabaseConfig{Host: "localhost"}}
	err := cfg.Validate()
	assert.ErrorIs(t, err, apperror.ErrPersistenceUnavailable)
	assert.Contains(t, err.Error(), "DB_NAME, DB_USER")

	cfg = &Config{App: AppConfig{Storage: "sqlite"}}
	assert.True(t, apperror.IsKind(cfg.Validate(), apperror.KindValidation))
}

func TestLocationFallsBackToUTC(t *testing.T) {
	app := AppConfig{Timezone: "Not/AZone"}
	assert.Equal(t, time.UTC, app.Location())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, splitList(" a:9092, ,b:9092"))
	assert.Nil(t, splitList(""))
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "h", User: "u", Password: "p", Name: "n", Port: "5432", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=h user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", db.DSN())
}
