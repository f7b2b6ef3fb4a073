package infrastructure

import (
	"context"
	"fmt"
	"time"

	"text-recitation/domain"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect initializes the DB connection, retrying until the database comes
// up or the context is done.
func Connect(ctx context.Context, connectionString string) (db *gorm.DB, err error) {
	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context is done, giving up on db connection")
		default:
			db, err = gorm.Open(gormpostgres.Open(connectionString), &gorm.Config{})
			if err == nil {
				return
			}
			log.Warn().Err(err).Msg("could not connect to DB")
		}
		time.Sleep(1 * time.Second)
	}
}

func CreateTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.RecitationText{},
		&domain.Practice{},
	)
}
