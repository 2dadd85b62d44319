package model

import "time"

// GenerateRequest represents a password generation request.
// Pointer bools allow distinguishing between missing (nil -> default true) and explicit false.
type GenerateRequest struct {
	Length    int   `json:"length"`
	Count     int   `json:"count"`
	Uppercase *bool `json:"uppercase"`
	Lowercase *bool `json:"lowercase"`
	Numbers   *bool `json:"numbers"`
	Symbols   *bool `json:"symbols"`

	// Subject is the API token subject, set by the server, never decoded.
	Subject string `json:"-"`
}

// GenerateResponse represents a password generation response.
// Password repeats the first entry of Passwords.
type GenerateResponse struct {
	Password  string              `json:"password"`
	Passwords []GeneratedPassword `json:"passwords"`
	Length    int                 `json:"length"`
	Classes   []string            `json:"classes"`
	Score     int                 `json:"score"`
	Label     string              `json:"label"`
}

// GeneratedPassword is one password with its strength.
type GeneratedPassword struct {
	Password string `json:"password"`
	Score    int    `json:"score"`
	Label    string `json:"label"`
}

// StrengthRequest asks for the strength of a password.
type StrengthRequest struct {
	Password string `json:"password"`
}

// StrengthResponse reports a strength assessment.
type StrengthResponse struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

// ClassInfo describes a character class.
type ClassInfo struct {
	Name       string `json:"name"`
	Characters string `json:"characters"`
}

// ClassesResponse lists the available classes and length bounds.
type ClassesResponse struct {
	Classes       []ClassInfo `json:"classes"`
	MinLength     int         `json:"min_length"`
	MaxLength     int         `json:"max_length"`
	DefaultLength int         `json:"default_length"`
}

// GenerationEvent is an audit record of one generated password. It never
// holds the password itself.
type GenerationEvent struct {
	ID        int64
	Subject   string
	Length    int
	Classes   string
	Score     int
	Label     string
	CreatedAt time.Time
}
