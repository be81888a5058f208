package model

// Request bodies are bound and validated before any store access, so a
// malformed payload never reaches the database.

type RegisterInput struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Description string `json:"description"`
	Password    string `json:"password" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
	IsAdmin     bool   `json:"isAdmin"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdatePostInput carries a partial update. Empty title/body keep the
// stored value, matching how the upstream client sends edits. Tags are
// replaced only when present.
type UpdatePostInput struct {
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags"`
}

type CreateCommentInput struct {
	Text   string `json:"text" binding:"required"`
	Parent string `json:"parent"`
}
