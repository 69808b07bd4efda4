package jobs

import (
	"log"

	"github.com/amrshakerr/editor_portfolio/database"
	"github.com/amrshakerr/editor_portfolio/services"
)

func RefreshRatingSnapshot() {
	log.Println("Running job: RefreshRatingSnapshot...")
	services.WarmRatingSummary(database.DB)
}
