package server

import (
	"github.com/gin-gonic/gin"
	"github.com/inkwell-blog/inkwell/server/middlewares"
)

// RegisterRoutes wires the REST surface onto the router. Mutating routes sit
// behind the JWT middleware; read routes are public.
func RegisterRoutes(router *gin.Engine, s *APIServer) {
	api := router.Group("/api")

	api.POST("/register", s.Register)
	api.POST("/login", s.Login)

	posts := api.Group("/posts")
	posts.GET("/all", s.ListPosts)
	posts.GET("/tags/all", s.ListTags)
	posts.GET("/user/:userId", s.ListUserPosts)
	posts.GET("/:slug", s.GetPost)
	posts.POST("/create", middlewares.JWT(), s.CreatePost)
	posts.PUT("/:slug", middlewares.JWT(), s.UpdatePost)
	posts.DELETE("/:slug", middlewares.JWT(), s.DeletePost)
	posts.PATCH("/:id/like", middlewares.JWT(), s.ToggleLike)

	comments := api.Group("/comments")
	comments.POST("/:postId", middlewares.JWT(), s.CreateComment)
	comments.GET("/:postId", s.ListComments)
	comments.DELETE("/:id", middlewares.JWT(), s.DeleteComment)

	users := api.Group("/users")
	users.GET("/:userId", s.GetUserProfile)
	users.GET("/:userId/follow-data", s.GetFollowData)
	users.GET("/:userId/is-following", middlewares.JWT(), s.IsFollowing)
	users.POST("/:userId/follow", middlewares.JWT(), s.FollowUser)
	users.DELETE("/:userId/unfollow", middlewares.JWT(), s.UnfollowUser)
}
