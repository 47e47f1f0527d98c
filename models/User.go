package models

// User represents someone who submits challenges and solutions; admins approve them
type User struct {
	ID       uint   `json:"id"`
	Nickname string `json:"nickname"`
	IsAdmin  bool   `json:"is_admin"`
}

// AdminNickname is the nickname of the account created by the bootstrap command
const AdminNickname = "Admin"
