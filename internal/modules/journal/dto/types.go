package dto

import "time"

type ListInput struct {
	Limit int
}

type EntryOutput struct {
	AttemptID string
	Method    string
	State     string
	Hash      string
	Reason    string
	Message   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ListOutput struct {
	Entries []EntryOutput
}
