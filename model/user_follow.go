package model

import "time"

/*

UserFollow is the "many-to-many" follow edge between two users

FollowerID: the user who follows
FolloweeID: the user being followed
CreatedAt: time when the edge is created

The composite primary key makes follow idempotent at the store level:
inserting an existing edge is an ON CONFLICT no-op.

*/

type UserFollow struct {
	FollowerID string `gorm:"primaryKey"`
	FolloweeID string `gorm:"primaryKey"`
	CreatedAt  time.Time
}
