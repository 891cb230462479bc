package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/domain/models"
)

var ErrBookNotFound = errors.New("book not found")

// BookStorage — чтение каталога; поиска по каталогу здесь нет.
type BookStorage interface {
	GetBookByID(ctx context.Context, id int64) (*models.Book, error)
	ListBooks(ctx context.Context) ([]*models.Book, error)
}

type bookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) BookStorage {
	return &bookRepository{db: db}
}

func (r *bookRepository) GetBookByID(ctx context.Context, id int64) (*models.Book, error) {
	book := &models.Book{}
	row := r.db.QueryRowContext(ctx, "SELECT id, name, price, stock FROM books WHERE id = $1", id)
	if err := row.Scan(&book.ID, &book.Name, &book.Price, &book.Stock); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

func (r *bookRepository) ListBooks(ctx context.Context) ([]*models.Book, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, price, stock FROM books ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*models.Book
	for rows.Next() {
		book := &models.Book{}
		if err := rows.Scan(&book.ID, &book.Name, &book.Price, &book.Stock); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}
