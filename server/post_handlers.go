package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/inkwell-blog/inkwell/model"
	"github.com/inkwell-blog/inkwell/server/middlewares"
	"github.com/inkwell-blog/inkwell/utils"
	. "github.com/inkwell-blog/inkwell/utils/log"
	"gorm.io/gorm"
)

const (
	defaultFeedPage  = 1
	defaultFeedLimit = 6
)

// CreatePost accepts a multipart form: title, body, tags (a JSON array
// string) and an optional thumbnail file stored through the upload store.
func (s *APIServer) CreatePost(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)

	title := c.PostForm("title")
	body := c.PostForm("body")
	if title == "" || body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title and body are required"})
		return
	}

	var tags []string
	if raw := c.PostForm("tags"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Tags must be a JSON array"})
			return
		}
	}
	tagsJSON, err := tagsToJSON(tags)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Tags must be a JSON array"})
		return
	}

	thumbnail := ""
	if header, err := c.FormFile("thumbnail"); err == nil {
		f, err := header.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		defer f.Close()
		key, err := s.Uploads.Store(f, header.Filename)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		thumbnail = s.Uploads.GetUrlFromKey(key)
	}

	slug, err := s.newUniqueSlug(utils.NewSlug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	post := model.Post{
		Id:        uuid.New().String(),
		Title:     title,
		Body:      body,
		Slug:      slug,
		AuthorID:  identity.Id,
		Thumbnail: thumbnail,
		Tags:      tagsJSON,
	}
	if err := s.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	s.TagCache.Invalidate()

	if err := s.DB.Preload("Author").First(&post, "id = ?", post.Id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if err := s.decoratePost(&post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	Log.Info("post created: ", post.Id, " slug: ", post.Slug)
	c.JSON(http.StatusCreated, post)
}

// ListPosts assembles the feed: newest first with id as the deterministic
// tie-break, optional tag filter, and the total for the same filter so the
// client can page exhaustively.
func (s *APIServer) ListPosts(c *gin.Context) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = defaultFeedPage
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = defaultFeedLimit
	}

	query := s.DB.Model(&model.Post{})
	if tag := c.Query("tag"); tag != "" {
		query = query.Where("tags @> ?", tagFilterJSON(tag))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	posts := []*model.Post{}
	if err := query.
		Preload("Author").
		Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if err := s.decoratePosts(posts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "total": total})
}

// ListTags returns the distinct tag values across all posts, from the cache
// when it is warm.
func (s *APIServer) ListTags(c *gin.Context) {
	if tags, ok := s.TagCache.Get(); ok {
		c.JSON(http.StatusOK, tags)
		return
	}

	tags := []string{}
	if err := s.DB.
		Raw("SELECT DISTINCT jsonb_array_elements_text(tags) AS tag FROM posts ORDER BY tag").
		Scan(&tags).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	s.TagCache.Set(tags)

	c.JSON(http.StatusOK, tags)
}

func (s *APIServer) GetPost(c *gin.Context) {
	var post model.Post
	err := s.DB.Preload("Author").Where("slug = ?", c.Param("slug")).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if err := s.decoratePost(&post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": &post})
}

// UpdatePost applies a partial edit, owner only. Empty fields keep the
// stored value.
func (s *APIServer) UpdatePost(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)

	var post model.Post
	err := s.DB.Where("slug = ?", c.Param("slug")).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if post.AuthorID != identity.Id {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized"})
		return
	}

	var input model.UpdatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if input.Title != "" {
		post.Title = input.Title
	}
	if input.Body != "" {
		post.Body = input.Body
	}
	if input.Tags != nil {
		tagsJSON, err := tagsToJSON(input.Tags)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Tags must be a JSON array"})
			return
		}
		post.Tags = tagsJSON
	}

	if err := s.DB.Save(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	s.TagCache.Invalidate()

	if err := s.DB.Preload("Author").First(&post, "id = ?", post.Id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if err := s.decoratePost(&post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost removes the post together with its comments and like edges in
// one transaction, owner only.
func (s *APIServer) DeletePost(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)

	var post model.Post
	err := s.DB.Where("slug = ?", c.Param("slug")).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if post.AuthorID != identity.Id {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized"})
		return
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.Id).Delete(&model.UserPostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.Id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	s.TagCache.Invalidate()

	Log.Info("post deleted: ", post.Id)
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// ToggleLike flips the caller's membership in the post's liked-by set. The
// returned count is the set's cardinality after the flip, so two toggles
// from the same user always return the post to its original state.
func (s *APIServer) ToggleLike(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)
	postId := c.Param("id")

	var post model.Post
	err := s.DB.Where("id = ?", postId).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	var like model.UserPostLike
	err = s.DB.Where("user_id = ? AND post_id = ?", identity.Id, postId).First(&like).Error
	switch {
	case err == nil:
		err = s.DB.Where("user_id = ? AND post_id = ?", identity.Id, postId).Delete(&model.UserPostLike{}).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = s.DB.Create(&model.UserPostLike{
			UserID:    identity.Id,
			PostID:    postId,
			CreatedAt: time.Now(),
		}).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	likedBy := []string{}
	if err := s.DB.Model(&model.UserPostLike{}).
		Where("post_id = ?", postId).
		Pluck("user_id", &likedBy).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": len(likedBy), "likedBy": likedBy})
}

// ListUserPosts returns one author's posts, newest first.
func (s *APIServer) ListUserPosts(c *gin.Context) {
	posts := []*model.Post{}
	if err := s.DB.
		Preload("Author").
		Where("author_id = ?", c.Param("userId")).
		Order("created_at DESC, id DESC").
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if err := s.decoratePosts(posts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, posts)
}
