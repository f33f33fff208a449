package classroom

import (
	"time"

	"github.com/google/uuid"
	"github.com/mentora-app/mentora-backend/internal/domain/user"
	"gorm.io/gorm"
)

type Announcement struct {
	ID       uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClassID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"class_id"`
	Class    *Class     `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClassID;references:ID" json:"class,omitempty"`
	AuthorID uuid.UUID  `gorm:"type:uuid;not null" json:"author_id"`
	Author   *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:AuthorID;references:ID" json:"author,omitempty"`
	Title    string     `gorm:"not null;column:title" json:"title"`
	Body     string     `gorm:"column:body" json:"body"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Announcement) TableName() string { return "announcement" }

type Discussion struct {
	ID       uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClassID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"class_id"`
	Class    *Class     `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClassID;references:ID" json:"class,omitempty"`
	AuthorID uuid.UUID  `gorm:"type:uuid;not null" json:"author_id"`
	Author   *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:AuthorID;references:ID" json:"author,omitempty"`
	Title    string     `gorm:"not null;column:title" json:"title"`
	Body     string     `gorm:"column:body" json:"body"`

	Comments []DiscussionComment `gorm:"constraint:OnDelete:CASCADE;foreignKey:DiscussionID;references:ID" json:"comments,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Discussion) TableName() string { return "discussion" }

type DiscussionComment struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	DiscussionID uuid.UUID  `gorm:"type:uuid;not null;index" json:"discussion_id"`
	AuthorID     uuid.UUID  `gorm:"type:uuid;not null" json:"author_id"`
	Author       *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:AuthorID;references:ID" json:"author,omitempty"`
	Body         string     `gorm:"not null;column:body" json:"body"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (DiscussionComment) TableName() string { return "discussion_comment" }
