package app

import (
	"gorm.io/gorm"

	"github.com/openmuseum/museum-map-backend/internal/platform/logger"
	"github.com/openmuseum/museum-map-backend/internal/repos"
)

type Repos struct {
	Items  repos.ItemRepo
	Groups repos.GroupRepo
	Rooms  repos.RoomRepo
	Floors repos.FloorRepo
	Topics repos.FloorTopicRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		Items:  repos.NewItemRepo(db, log),
		Groups: repos.NewGroupRepo(db, log),
		Rooms:  repos.NewRoomRepo(db, log),
		Floors: repos.NewFloorRepo(db, log),
		Topics: repos.NewFloorTopicRepo(db, log),
	}
}
