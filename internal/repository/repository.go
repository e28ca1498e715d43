package repository

import (
	"context"
	"database/sql"
	"errors"

	"user-service/internal/entity"
)

// ErrNotFound is returned when no user row matches the query.
var ErrNotFound = errors.New("user not found")

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `INSERT INTO users (first_name, last_name, email, age, password) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, user.FirstName, user.LastName, user.Email, user.Age, user.PasswordHash)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	user.ID = int(id)
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*entity.User, error) {
	user := &entity.User{}
	query := `SELECT id, first_name, last_name, email, age, password FROM users WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Age, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *UserRepository) GetAllUsers(ctx context.Context) ([]entity.User, error) {
	query := `SELECT id, first_name, last_name, email, age, password FROM users`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var user entity.User
		if err := rows.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Age, &user.PasswordHash); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `UPDATE users SET first_name = ?, last_name = ?, email = ?, age = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, user.FirstName, user.LastName, user.Email, user.Age, user.ID)
	if err != nil {
		return nil, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return r.GetUserByID(ctx, user.ID)
}

func (r *UserRepository) DeleteUser(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// FindByEmail looks up a user by exact email match. The email column uses a
// binary collation, so comparison is case-sensitive byte equality.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	user := &entity.User{}
	query := `SELECT id, first_name, last_name, email, age, password FROM users WHERE email = ?`
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Age, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}
