package entity

// User is a row in the users table. The password hash is never serialized
// into responses, cache entries, or events.
type User struct {
	ID           int    `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Age          int    `json:"age"`
	PasswordHash string `json:"-"`
}

/*
Mysql Schema:
CREATE DATABASE user_db;
USE user_db;

CREATE TABLE users (
	id INT AUTO_INCREMENT PRIMARY KEY,
	first_name VARCHAR(100) NOT NULL,
	last_name VARCHAR(100) NOT NULL,
	email VARCHAR(255) COLLATE utf8mb4_bin NOT NULL UNIQUE,
	age INT NOT NULL,
	password VARCHAR(255) NOT NULL
);
*/
