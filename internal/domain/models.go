// Package domain defines the persistence models for the service-desk portal:
// users, teams, gamification (levels and challenges), the FAQ knowledge base,
// support tickets, and the chat interaction log. These types are mapped with
// GORM and form the core data layer of the application.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Ticket status values. A ticket is either open or closed; the chat command
// "encerrar chamado <n>" performs the only end-user mutation.
const (
	TicketOpen   = "aberto"
	TicketClosed = "encerrado"
)

// Chat feedback verdicts a user may attach to one of their own chat turns.
const (
	FeedbackHelpful   = "helpful"
	FeedbackUnhelpful = "unhelpful"
)

// User is a portal account. Points accumulate from completed challenges and
// determine the user's level; a user may optionally belong to one team.
type User struct {
	ID           string         `json:"id"         gorm:"type:char(36);primaryKey"`
	Name         string         `json:"name"       gorm:"type:varchar(120);not null"`
	Email        string         `json:"email"      gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string         `json:"-"          gorm:"type:varchar(100);not null"`
	Points       int            `json:"points"     gorm:"not null;default:0"`
	TeamID       *string        `json:"team_id,omitempty" gorm:"type:char(36);index"`
	IsAdmin      bool           `json:"is_admin"   gorm:"not null;default:false"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-"          gorm:"index"`

	Team *Team `json:"-" gorm:"foreignKey:TeamID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Team groups users for the team ranking. Team score is the sum of member
// points, computed on read.
type Team struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	Name      string         `json:"name"       gorm:"type:varchar(120);not null;uniqueIndex"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for Team.
func (Team) TableName() string { return "teams" }

// Level is a named point threshold. A user's level is the highest level whose
// MinPoints does not exceed the user's points.
type Level struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name"       gorm:"type:varchar(80);not null"`
	MinPoints int       `json:"min_points" gorm:"not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Level.
func (Level) TableName() string { return "levels" }

// Challenge is an activity that awards points when completed. Inactive
// challenges are hidden from users and cannot be completed.
type Challenge struct {
	ID          string         `json:"id"          gorm:"type:char(36);primaryKey"`
	Title       string         `json:"title"       gorm:"type:varchar(160);not null"`
	Description string         `json:"description" gorm:"type:text"`
	Points      int            `json:"points"      gorm:"not null;check:points >= 0"`
	Active      bool           `json:"active"      gorm:"not null;default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-"           gorm:"index"`
}

// TableName returns the database table name for Challenge.
func (Challenge) TableName() string { return "challenges" }

// UserChallenge records a completion. The unique index makes completing the
// same challenge twice a constraint violation, which the service layer maps
// to a stable error.
type UserChallenge struct {
	ID          string    `json:"id"           gorm:"type:char(36);primaryKey"`
	UserID      string    `json:"user_id"      gorm:"type:char(36);not null;uniqueIndex:ux_user_challenge,priority:1"`
	ChallengeID string    `json:"challenge_id" gorm:"type:char(36);not null;uniqueIndex:ux_user_challenge,priority:2"`
	CreatedAt   time.Time `json:"created_at"`

	User      User      `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Challenge Challenge `json:"-" gorm:"foreignKey:ChallengeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for UserChallenge.
func (UserChallenge) TableName() string { return "user_challenges" }

// Category groups FAQ entries. Every FAQ must reference an existing category.
type Category struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name"       gorm:"type:varchar(120);not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Category.
func (Category) TableName() string { return "categories" }

// FAQ is a knowledge-base entry. The answer may carry section markers
// ("Pré-requisitos:", "Etapa <n>:", "Aviso:", "Finalização:",
// "Pós-instalação:") which the response formatter renders as structured
// output. Media references and the optional file payload are appended to the
// rendered answer. FAQ rows are only ever mutated through admin CRUD and bulk
// import; chat reads them.
type FAQ struct {
	ID         string         `json:"id"          gorm:"type:char(36);primaryKey"`
	Question   string         `json:"question"    gorm:"type:text;not null"`
	Answer     string         `json:"answer"      gorm:"type:text;not null"`
	ImageURL   string         `json:"image_url"   gorm:"type:varchar(512)"`
	VideoURL   string         `json:"video_url"   gorm:"type:varchar(512)"`
	FileName   string         `json:"file_name"   gorm:"type:varchar(255)"`
	FileData   []byte         `json:"-"           gorm:"type:blob"`
	CategoryID string         `json:"category_id" gorm:"type:char(36);not null;index"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-"           gorm:"index"`

	Category Category `json:"-" gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for FAQ.
func (FAQ) TableName() string { return "faqs" }

// Ticket is a support call identified by a short numeric code that users
// reference in chat ("encerrar chamado 42").
type Ticket struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Code      int       `json:"code"       gorm:"not null;uniqueIndex"`
	Title     string    `json:"title"      gorm:"type:varchar(200);not null"`
	Status    string    `json:"status"     gorm:"type:varchar(16);not null;default:'aberto';check:status IN ('aberto','encerrado')"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Ticket.
func (Ticket) TableName() string { return "tickets" }

// ChatLog records one chat turn: the user's raw message, the reply that was
// produced, whether the reply carries markup, the suggested FAQ when a single
// match was served, and optional feedback attached later by the same user.
type ChatLog struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"    gorm:"type:char(36);not null;index:idx_user_chatlogs"`
	Query     string    `json:"query"      gorm:"type:text;not null"`
	Response  string    `json:"response"   gorm:"type:text;not null"`
	Rich      bool      `json:"rich"       gorm:"not null;default:false"`
	FAQID     *string   `json:"faq_id,omitempty"   gorm:"type:char(36);index"`
	Feedback  *string   `json:"feedback,omitempty" gorm:"type:varchar(16);check:feedback IN ('helpful','unhelpful')"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_user_chatlogs,priority:2"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for ChatLog.
func (ChatLog) TableName() string { return "chat_logs" }
