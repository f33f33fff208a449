package db

import (
	types "github.com/mentora-app/mentora-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// Identity + auth
		&types.User{},
		&types.UserToken{},

		// Classes + membership
		&types.Class{},
		&types.Enrollment{},

		// Class content
		&types.Meeting{},
		&types.Material{},
		&types.Assignment{},
		&types.Submission{},
		&types.Announcement{},
		&types.Discussion{},
		&types.DiscussionComment{},

		// Quizzes
		&types.Quiz{},
		&types.Question{},
		&types.Option{},
		&types.Attempt{},
		&types.Answer{},
	)
}
