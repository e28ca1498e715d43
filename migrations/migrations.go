package migrations

import (
	"database/sql"
	"time"
)

// AutoMigrateUsers creates the users table if it does not exist. The email
// column uses a binary collation so that lookups are case-sensitive byte
// comparisons.
func AutoMigrateUsers(retries int, dbs ...*sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			email VARCHAR(255) COLLATE utf8mb4_bin NOT NULL UNIQUE,
			age INT NOT NULL,
			password VARCHAR(255) NOT NULL
		);
	`
	for _, db := range dbs {
		_, err := db.Exec(query)
		if err != nil {
			// Retry creating the table
			for i := 0; i < retries; i++ {
				time.Sleep(1 * time.Second)
				_, err = db.Exec(query)
				if err == nil {
					break
				}
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
