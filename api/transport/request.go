package transport

import "github.com/gotodo/backend/domain"

// TodoRequest is the JSON body accepted by create and replace. The id
// field is accepted but never trusted: create mints a fresh one and
// replace uses the path id.
type TodoRequest struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Deadline  string `json:"deadline"`
	Completed bool   `json:"completed"`
}

// Validate checks the required fields.
func (r *TodoRequest) Validate() error {
	if r.Text == "" {
		return domain.NewError(domain.ErrCodeInvalid, "text is required")
	}
	if r.Deadline == "" {
		return domain.NewError(domain.ErrCodeInvalid, "deadline is required")
	}
	return nil
}

// ToDomain converts the request into a domain todo.
func (r *TodoRequest) ToDomain() *domain.Todo {
	return &domain.Todo{
		ID:        r.ID,
		Text:      r.Text,
		Deadline:  r.Deadline,
		Completed: r.Completed,
	}
}
