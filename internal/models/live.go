package models

import "time"

// Sender identifies who posted a chat message or question.
type Sender struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Role   Role   `json:"role,omitempty"`
}

// ChatMessage is one entry of a live-session chat feed.
type ChatMessage struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Question is an audience question in a live session.
type Question struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	AskedBy    Sender    `json:"asked_by"`
	Timestamp  time.Time `json:"timestamp"`
	Upvotes    int       `json:"upvotes"`
	IsAnswered bool      `json:"is_answered"`
}

// PollOption is one choice of a poll with its running vote count.
type PollOption struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

// Poll is the single active poll of a live session.
type Poll struct {
	ID         string       `json:"id"`
	Question   string       `json:"question"`
	Options    []PollOption `json:"options"`
	TotalVotes int          `json:"total_votes"`
	UserVote   *string      `json:"user_vote"`
}
