package domain

// Todo represents a single task document. The id is the storage key;
// deadline is an opaque YYYY-MM-DD string the server never interprets.
type Todo struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Deadline  string `json:"deadline"`
	Completed bool   `json:"completed"`
}
