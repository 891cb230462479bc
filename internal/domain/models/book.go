package models

// Book представляет книгу каталога
type Book struct {
	ID    int64   `json:"book_id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"` // цена в кетцалях
	Stock int     `json:"stock"`
}
