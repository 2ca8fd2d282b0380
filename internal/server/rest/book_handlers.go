package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const invalidIDMessage = "ID error, please verify your ID input"

func (s *Server) listBooks(c *gin.Context) {
	filter, err := parseBookFilter(c.Query("author"), c.Query("genre"), c.Query("minPages"))
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	books, err := s.books.List(c.Request.Context(), caller(c), filter)
	if err != nil {
		s.internalError(c, "list books", err)
		return
	}
	succeed(c, http.StatusOK, books)
}

func (s *Server) createBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Malformed request body")
		return
	}
	req.normalize()
	if err := req.validateCreate(); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	book, err := s.books.Create(c.Request.Context(), caller(c), req.book())
	if err != nil {
		s.internalError(c, "create book", err)
		return
	}
	succeed(c, http.StatusCreated, book)
}

func (s *Server) updateBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Malformed request body")
		return
	}
	req.normalize()
	if err := req.validatePatch(); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	id, ok := bookID(c)
	if !ok {
		return
	}

	book, err := s.books.Update(c.Request.Context(), caller(c), id, req.patch())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fail(c, http.StatusNotFound, "Book not found")
			return
		}
		s.internalError(c, "update book", err)
		return
	}
	succeed(c, http.StatusOK, book)
}

// deleteBook answers 201 on success, as the API always has.
func (s *Server) deleteBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	book, err := s.books.Delete(c.Request.Context(), caller(c), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fail(c, http.StatusNotFound, "Book not found")
			return
		}
		s.internalError(c, "delete book", err)
		return
	}
	succeed(c, http.StatusCreated, book)
}

// bookID validates the :id path parameter, answering 400 when it is not a UUID.
func bookID(c *gin.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, invalidIDMessage)
		return "", false
	}
	return id.String(), true
}
