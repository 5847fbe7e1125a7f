package models

// User is a registered account. The password and both recovery answers are
// stored only as salted one-way hashes.
type User struct {
	ID           string
	Name         string
	PasswordHash string
	Question1    string
	Question2    string
	Answer1Hash  string
	Answer2Hash  string
}
