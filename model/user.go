package model

import "time"

/*

User is a registered author/reader of the blog

Id: primary key, uuid generated at registration
CreatedAt: time when the account is created
Name: display name
Email: login identity, unique across all users (enforced by DB index)
Password: bcrypt hash, never serialized
Description: optional free-text bio
IsAdmin: admin flag, only used by the client to show moderation controls

Followers: users following this user, "many-to-many" through user_follows
Following: users this user follows, same join table with roles swapped
LikedPosts: posts this user has liked, "many-to-many" through user_post_likes

*/

type User struct {
	Id          string    `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"timestamp"`
	Name        string    `json:"name"`
	Email       string    `gorm:"uniqueIndex" json:"email"`
	Password    string    `json:"-"`
	Description string    `json:"description"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	IsAdmin     bool      `json:"isAdmin"`
	Followers   []*User   `gorm:"many2many:user_follows;joinForeignKey:FolloweeID;joinReferences:FollowerID" json:"-"`
	Following   []*User   `gorm:"many2many:user_follows;joinForeignKey:FollowerID;joinReferences:FolloweeID" json:"-"`
	LikedPosts  []*Post   `gorm:"many2many:user_post_likes;joinForeignKey:UserID;joinReferences:PostID" json:"-"`
}

// UserRef is the minimal public projection of a user attached to posts,
// comments and follow lists.
type UserRef struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

func (u *User) Ref() *UserRef {
	if u == nil {
		return nil
	}
	return &UserRef{Id: u.Id, Name: u.Name, Email: u.Email}
}
