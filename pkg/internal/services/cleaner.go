package services

import (
	"github.com/inkroot/inkroot/pkg/internal/database"
	"github.com/inkroot/inkroot/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

// DoAutoDatabaseCleanup sweeps rows whose blog has been hard-deleted.
func DoAutoDatabaseCleanup() {
	log.Debug().Msg("Now cleaning up entire database...")

	var count int64
	for _, model := range []any{&models.Like{}, &models.BlogView{}} {
		res := database.C.
			Where("blog_id NOT IN (?)", database.C.Model(&models.Blog{}).Select("id")).
			Delete(model)
		if res.Error != nil {
			log.Error().Err(res.Error).Msg("An error occurred when running auto cleanup...")
			continue
		}
		count += res.RowsAffected
	}

	log.Debug().Int64("affected", count).Msg("Clean up entire database accomplished.")
}
