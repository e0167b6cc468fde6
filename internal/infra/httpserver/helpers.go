package httpserver

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
)

const (
	_defaultPage  = 1
	_defaultLimit = 10
	_maxLimit     = 100
)

type ErrorResponse struct {
	Message string `json:"message,omitempty"`
}

func ReplyWithError(w http.ResponseWriter, statusCode int, errMsg string) {
	ReplyJSONResponse(w, statusCode, &ErrorResponse{Message: errMsg})
}

func ReplyJSONResponse(w http.ResponseWriter, statusCode int, output interface{}) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(output); err != nil {
		slog.Error("encoding response", slog.Any("error", err))
	}
}

func DecodeJSONBody(r *http.Request, placeholder any) error {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("reading request body: %w", err)
	}

	if err := json.Unmarshal(reqBody, placeholder); err != nil {
		return fmt.Errorf("unmarshaling json: %w", err)
	}

	return nil
}

func GetQueryParam(r *http.Request, name string) string {
	return r.URL.Query().Get(name)
}

type PaginationParams struct {
	Page  int
	Limit int
}

func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

func DefaultPaginationParams() PaginationParams {
	return PaginationParams{Page: _defaultPage, Limit: _defaultLimit}
}

// ExtractPaginationParams reads page and limit from the query string,
// falling back to the defaults for missing or out of range values.
func ExtractPaginationParams(r *http.Request) PaginationParams {
	params := DefaultPaginationParams()
	if page, err := strconv.Atoi(GetQueryParam(r, "page")); err == nil && page > 0 {
		params.Page = page
	}
	if limit, err := strconv.Atoi(GetQueryParam(r, "limit")); err == nil && limit > 0 && limit <= _maxLimit {
		params.Limit = limit
	}
	return params
}

type PaginatedResponse struct {
	Data       any            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func ReplyWithPaginatedData(w http.ResponseWriter, statusCode int, data any, total int, params PaginationParams) {
	totalPages := 0
	if params.Limit > 0 {
		totalPages = (total + params.Limit - 1) / params.Limit
	}
	ReplyJSONResponse(w, statusCode, PaginatedResponse{
		Data: data,
		Pagination: PaginationMeta{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}
