package models

// Role is the role carried in the access token
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Student holds the learner profile fields used by analytics and course visibility
type Student struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	RollNumber string `json:"rollNumber"`
	Department string `json:"department"`
	Year       int    `json:"year"`
}
