package model

import (
	"time"

	"gorm.io/datatypes"
)

/*

Post is a single blog entry

Id: primary key, uuid generated at creation
CreatedAt: time when the post is created, the feed sort key
Title: post's title in plain text
Body: post's body in markdown/HTML
Slug: short unique URL-safe identifier, generated at creation, immutable
AuthorID:
Author: owning user, "belongs-to" relation
Thumbnail: public URL of the uploaded thumbnail, empty when none
Tags: free-text tag values stored as a JSON array column

LikedByUsers: users who liked the post, "many-to-many" through
user_post_likes. The displayed like count is always derived from this
set, there is no separately maintained counter to drift.

Likes/LikedBy/AuthorRef are response-only fields filled in by the server
before serialization.

*/

type Post struct {
	Id           string         `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"timestamp"`
	Title        string         `json:"title"`
	Body         string         `json:"body"`
	Slug         string         `gorm:"uniqueIndex" json:"slug"`
	AuthorID     string         `json:"-"`
	Author       *User          `json:"-"`
	Thumbnail    string         `json:"thumbnail"`
	Tags         datatypes.JSON `json:"tags"`
	LikedByUsers []*User        `gorm:"many2many:user_post_likes;joinForeignKey:PostID;joinReferences:UserID" json:"-"`

	Likes     int64    `gorm:"-" json:"likes"`
	LikedBy   []string `gorm:"-" json:"likedBy"`
	AuthorRef *UserRef `gorm:"-" json:"author"`
}
