package services

import (
	"time"

	"github.com/rowanlabs/inkwell/pkg/internal/database"
	"github.com/rowanlabs/inkwell/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

// DoAutoDatabaseCleanup erases rows that were soft deleted long ago and
// prunes the aged view log.
func DoAutoDatabaseCleanup() {
	deadline := time.Now().Add(-30 * 24 * time.Hour)
	log.Debug().Time("deadline", deadline).Msg("Now cleaning up entire database...")

	var count int64
	for _, model := range database.AutoMaintainRange {
		tx := database.C.Unscoped().
			Where("deleted_at IS NOT NULL").
			Where("deleted_at <= ?", deadline).
			Delete(model)
		count += tx.RowsAffected
	}

	viewDeadline := time.Now().Add(-90 * 24 * time.Hour)
	tx := database.C.
		Where("updated_at <= ?", viewDeadline).
		Delete(&models.PostView{})
	count += tx.RowsAffected

	log.Debug().Int64("affected", count).Msg("Database cleaned up.")
}
