package request

type PostNoteRequest struct {
	Date    string `json:"date" binding:"required"`
	Content string `json:"content" binding:"required"`
}
