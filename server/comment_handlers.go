package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/inkwell-blog/inkwell/model"
	"github.com/inkwell-blog/inkwell/server/middlewares"
	"gorm.io/gorm"
)

// CreateComment adds a comment to a post, optionally threaded under a
// parent comment.
func (s *APIServer) CreateComment(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)
	postId := c.Param("postId")

	var input model.CreateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var count int64
	if err := s.DB.Model(&model.Post{}).Where("id = ?", postId).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	comment := model.Comment{
		Id:     uuid.New().String(),
		UserID: identity.Id,
		PostID: postId,
		Text:   input.Text,
	}
	if input.Parent != "" {
		parent := input.Parent
		comment.ParentID = &parent
	}
	if err := s.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	if err := s.DB.Preload("User").First(&comment, "id = ?", comment.Id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	comment.UserRef = comment.User.Ref()

	c.JSON(http.StatusCreated, comment)
}

// ListComments returns a post's comments newest first with the author
// reduced to the public projection. No read path renders the thread tree,
// the parent reference is carried through as-is.
func (s *APIServer) ListComments(c *gin.Context) {
	comments := []*model.Comment{}
	if err := s.DB.
		Preload("User").
		Where("post_id = ?", c.Param("postId")).
		Order("created_at DESC, id DESC").
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	for _, comment := range comments {
		comment.UserRef = comment.User.Ref()
	}

	c.JSON(http.StatusOK, comments)
}

// DeleteComment removes a comment, strictly owner only. Admins get no
// override here.
func (s *APIServer) DeleteComment(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)

	var comment model.Comment
	err := s.DB.Where("id = ?", c.Param("id")).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if comment.UserID != identity.Id {
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
		return
	}

	if err := s.DB.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
