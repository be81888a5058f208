package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-blog/inkwell/model"
	"github.com/inkwell-blog/inkwell/server/middlewares"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetUserProfile returns the public view of a user together with their
// posts, newest first. The credential hash is never serialized.
func (s *APIServer) GetUserProfile(c *gin.Context) {
	userId := c.Param("userId")

	var user model.User
	err := s.DB.Where("id = ?", userId).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	posts := []*model.Post{}
	if err := s.DB.
		Preload("Author").
		Where("author_id = ?", userId).
		Order("created_at DESC, id DESC").
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if err := s.decoratePosts(posts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": &user, "posts": posts})
}

// GetFollowData returns the follower and following lists as (id, name)
// projections.
func (s *APIServer) GetFollowData(c *gin.Context) {
	userId := c.Param("userId")

	var count int64
	if err := s.DB.Model(&model.User{}).Where("id = ?", userId).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	followers := []model.UserRef{}
	if err := s.DB.Model(&model.User{}).
		Select("users.id, users.name").
		Joins("JOIN user_follows ON user_follows.follower_id = users.id").
		Where("user_follows.followee_id = ?", userId).
		Scan(&followers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	following := []model.UserRef{}
	if err := s.DB.Model(&model.User{}).
		Select("users.id, users.name").
		Joins("JOIN user_follows ON user_follows.followee_id = users.id").
		Where("user_follows.follower_id = ?", userId).
		Scan(&following).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"followers": followers, "following": following})
}

// FollowUser creates a follow edge from the caller to the target.
// Following an already-followed user is a no-op that still reports
// success, guaranteed by the conflict clause on the composite key.
func (s *APIServer) FollowUser(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)
	targetUserId := c.Param("userId")

	if targetUserId == identity.Id {
		c.JSON(http.StatusBadRequest, gin.H{"message": "You cannot follow yourself."})
		return
	}

	var count int64
	if err := s.DB.Model(&model.User{}).Where("id IN ?", []string{targetUserId, identity.Id}).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if count != 2 {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		return
	}

	edge := model.UserFollow{
		FollowerID: identity.Id,
		FolloweeID: targetUserId,
		CreatedAt:  time.Now(),
	}
	if err := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Followed successfully."})
}

// UnfollowUser removes the follow edge. Unfollowing a non-followed user is
// a silent no-op.
func (s *APIServer) UnfollowUser(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)
	targetUserId := c.Param("userId")

	var count int64
	if err := s.DB.Model(&model.User{}).Where("id IN ?", []string{targetUserId, identity.Id}).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if count != 2 {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		return
	}

	if err := s.DB.
		Where("follower_id = ? AND followee_id = ?", identity.Id, targetUserId).
		Delete(&model.UserFollow{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed successfully."})
}

// IsFollowing reports whether the caller follows the target user.
func (s *APIServer) IsFollowing(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)
	targetUserId := c.Param("userId")

	var count int64
	if err := s.DB.Model(&model.User{}).Where("id = ?", targetUserId).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		return
	}

	var edges int64
	if err := s.DB.Model(&model.UserFollow{}).
		Where("follower_id = ? AND followee_id = ?", identity.Id, targetUserId).
		Count(&edges).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"isFollowing": edges > 0})
}
