package model

import "time"

/*

UserPostLike is a "many-to-many" relation of user likes a post

UserID: user id
PostID: post id
CreatedAt: time when relation is created

Like state is solely membership in this table. The reported like count
is the COUNT(*) over it, keeping count and membership consistent even
under concurrent toggles.

*/

type UserPostLike struct {
	UserID    string `gorm:"primaryKey"`
	PostID    string `gorm:"primaryKey"`
	CreatedAt time.Time
}
