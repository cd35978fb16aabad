package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"skill-exchange-be/internal/repository/unitofwork"
	"skill-exchange-be/pkg/database"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.SkillRepository())
	assert.NotNil(t, uow.SkillVectorRepository())
	assert.NotNil(t, uow.ChatRepository())
	assert.NotNil(t, uow.MessageRepository())

	// Basic ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Users table reachable (count=%d)", count)
	})

	t.Run("Check Skill Repository", func(t *testing.T) {
		count, err := uow.SkillRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Skills table reachable (count=%d)", count)
	})

	t.Run("Check Chat Repository", func(t *testing.T) {
		count, err := uow.ChatRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Chats table reachable (count=%d)", count)
	})
}
