package server

import (
	"encoding/json"
	"fmt"

	"github.com/inkwell-blog/inkwell/model"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
)

// decoratePosts fills the response-only fields of a batch of posts: the
// author projection and the like state. Like counts are derived from the
// membership set in a single query, never read from a stored counter.
func (s *APIServer) decoratePosts(posts []*model.Post) error {
	if len(posts) == 0 {
		return nil
	}

	postIds := make([]string, 0, len(posts))
	for _, post := range posts {
		postIds = append(postIds, post.Id)
	}

	var likes []model.UserPostLike
	if err := s.DB.Where("post_id IN ?", postIds).Find(&likes).Error; err != nil {
		return errors.Wrap(err, "fail to load like state")
	}

	likedBy := make(map[string][]string, len(posts))
	for _, like := range likes {
		likedBy[like.PostID] = append(likedBy[like.PostID], like.UserID)
	}

	for _, post := range posts {
		post.AuthorRef = post.Author.Ref()
		post.LikedBy = likedBy[post.Id]
		if post.LikedBy == nil {
			post.LikedBy = []string{}
		}
		post.Likes = int64(len(post.LikedBy))
	}
	return nil
}

func (s *APIServer) decoratePost(post *model.Post) error {
	return s.decoratePosts([]*model.Post{post})
}

// tagsToJSON validates and encodes a tag list for the JSON array column.
func tagsToJSON(tags []string) (datatypes.JSON, error) {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// tagFilterJSON encodes a single tag for the @> containment filter.
func tagFilterJSON(tag string) datatypes.JSON {
	raw, _ := json.Marshal([]string{tag})
	return datatypes.JSON(raw)
}

// newUniqueSlug draws short slugs until one is free. The unique index on
// posts.slug still backstops a losing race.
func (s *APIServer) newUniqueSlug(generate func() string) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		slug := generate()
		var count int64
		if err := s.DB.Model(&model.Post{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", errors.Wrap(err, "fail to check slug uniqueness")
		}
		if count == 0 {
			return slug, nil
		}
	}
	return "", fmt.Errorf("fail to generate a unique slug")
}
