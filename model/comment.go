package model

import "time"

/*

Comment is a user comment on a post

Id: primary key, uuid generated at creation
CreatedAt: time when the comment is created
UserID:
User: authoring user, "belongs-to" relation
PostID: target post
Text: comment body in plain text
ParentID: optional parent comment for threading, nil for top-level

UserRef is a response-only projection of User filled in by the server.

*/

type Comment struct {
	Id        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"timestamp"`
	UserID    string    `json:"-"`
	User      *User     `json:"-"`
	PostID    string    `json:"post"`
	Text      string    `json:"text"`
	ParentID  *string   `json:"parent"`

	UserRef *UserRef `gorm:"-" json:"user"`
}
