// Package server implements the REST surface of the blog: registration and
// login, the paginated post feed, post/comment CRUD with owner-only
// mutations, like toggling and follow edges.
package server

import (
	"github.com/inkwell-blog/inkwell/file_store"
	"github.com/inkwell-blog/inkwell/utils"
	"gorm.io/gorm"
)

// APIServer carries the shared dependencies of every handler. All handler
// methods are stateless request/response cycles against DB.
type APIServer struct {
	DB       *gorm.DB
	Uploads  file_store.UploadStore
	TagCache *utils.TagCache
}

func NewAPIServer(db *gorm.DB, uploads file_store.UploadStore, tagCache *utils.TagCache) *APIServer {
	return &APIServer{
		DB:       db,
		Uploads:  uploads,
		TagCache: tagCache,
	}
}
