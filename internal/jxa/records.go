package jxa

// Task mirrors the record built by task_record.js.
type Task struct {
	ID           string  `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	Status       string  `json:"status" yaml:"status"`
	Notes        string  `json:"notes" yaml:"notes"`
	TagNames     string  `json:"tagNames" yaml:"tagNames"`
	DueDate      *string `json:"dueDate" yaml:"dueDate"`
	CreationDate *string `json:"creationDate" yaml:"creationDate"`
}

type Area struct {
	Name      string `json:"name" yaml:"name"`
	TaskCount int    `json:"taskCount" yaml:"taskCount"`
}

type Project struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Status    string  `json:"status" yaml:"status"`
	Notes     string  `json:"notes" yaml:"notes"`
	TaskCount int     `json:"taskCount" yaml:"taskCount"`
	DueDate   *string `json:"dueDate" yaml:"dueDate"`
}
