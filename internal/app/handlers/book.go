package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/domain/models"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/storage"
	"github.com/go-chi/chi/v5"
)

// ListBooksHandler обрабатывает GET /book — каталог для витрины.
func ListBooksHandler(log *slog.Logger, bookRepo storage.BookStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListBooksHandler"
		logger := log.With(slog.String("op", op))

		books, err := bookRepo.ListBooks(r.Context())
		if err != nil {
			logger.Error("failed to list books", slog.Any("error", err))
			respondError(logger, w, http.StatusInternalServerError, "Error interno del servidor")
			return
		}
		if books == nil {
			books = []*models.Book{}
		}
		respondJSON(logger, w, http.StatusOK, books)
	}
}

// GetBookHandler обрабатывает GET /book/{id}.
func GetBookHandler(log *slog.Logger, bookRepo storage.BookStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetBookHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			respondError(logger, w, http.StatusBadRequest, "Id inválido")
			return
		}

		book, err := bookRepo.GetBookByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrBookNotFound) {
				respondError(logger, w, http.StatusNotFound, "Libro no encontrado")
				return
			}
			logger.Error("failed to get book", slog.Any("error", err))
			respondError(logger, w, http.StatusInternalServerError, "Error interno del servidor")
			return
		}
		respondJSON(logger, w, http.StatusOK, book)
	}
}
