package database

import (
	"fmt"

	"github.com/deanogram/ALT-Controller-bot/config"
	auditentities "github.com/deanogram/ALT-Controller-bot/internal/domain/audit/entities"
	channelentities "github.com/deanogram/ALT-Controller-bot/internal/domain/channel/entities"
	postentities "github.com/deanogram/ALT-Controller-bot/internal/domain/post/entities"
	statsentities "github.com/deanogram/ALT-Controller-bot/internal/domain/stats/entities"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := cfg.GetDSN()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// unique violations must surface as gorm.ErrDuplicatedKey so the
		// repositories can classify concurrent-create races
		TranslateError: true,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&channelentities.Channel{},
		&channelentities.UserChannelLink{},
		&postentities.Post{},
		&statsentities.ClickCounter{},
		&statsentities.ReactionCounter{},
		&auditentities.AuditEntry{},
	); err != nil {
		return nil, fmt.Errorf("failed to auto migrate: %w", err)
	}

	return db, nil
}
