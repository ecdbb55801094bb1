package model

type Comment struct {
	ID        int64     `json:"id"`
	CreatedAt string    `json:"created_at"`
	User      ShortUser `json:"user"`
	Content   string    `json:"content"`
}

type CreateCommentRequest struct {
	ID      string `uri:"id"`
	Content string `json:"content"`
}

type CreateCommentResponse struct {
	Comment Comment `json:"comment"`
}

type GetCommentsRequest struct {
	ID     string `uri:"id"`
	Cursor int64  `form:"cursor"`
	Limit  int    `form:"limit"`
}

type GetCommentsResponse struct {
	Comments []Comment `json:"comments"`
	// NextCursor is zero when there is no further page.
	NextCursor int64 `json:"next_cursor"`
}

type UpdateCommentRequest struct {
	ID      int64  `uri:"id"`
	Content string `json:"content"`
}

type UpdateCommentResponse struct {
	Comment Comment `json:"comment"`
}

type DeleteCommentRequest struct {
	ID int64 `uri:"id"`
}

type DeleteCommentResponse struct{}
