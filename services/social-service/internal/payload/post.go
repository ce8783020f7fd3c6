package payload

type PostRequest struct {
	Text string `json:"text" validate:"required"`
}

func (r *PostRequest) ValidationMessages() map[string]string {
	return map[string]string{"text": "Text is required"}
}

type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

func (r *CommentRequest) ValidationMessages() map[string]string {
	return map[string]string{"text": "Text is required"}
}
