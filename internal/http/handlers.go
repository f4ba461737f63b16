package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tally/internal/core"
	"tally/internal/ledger"
	"tally/internal/query"
)

// transactionRequest is the mutable half of a transaction. POST treats every
// field as required; PUT treats nil fields as "leave untouched".
type transactionRequest struct {
	Amount      *core.Money           `json:"amount"`
	Description *string               `json:"description"`
	Category    *string               `json:"category"`
	Date        *core.Date            `json:"date"`
	Type        *core.TransactionType `json:"type"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	params := query.Params{
		Search:   r.URL.Query().Get("search"),
		Type:     r.URL.Query().Get("type"),
		Category: r.URL.Query().Get("category"),
	}
	items := query.Filter(s.ledger.List(), params)

	// limit=N returns the N most recent records instead of insertion order.
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", v))
			return
		}
		items = query.Recent(items, n)
	}

	writeJSON(w, http.StatusOK, map[string]any{"transactions": items})
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := s.ledger.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var draft core.Draft
	if req.Amount != nil {
		draft.Amount = *req.Amount
	}
	if req.Description != nil {
		draft.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		draft.Category = *req.Category
	}
	if req.Date != nil {
		draft.Date = *req.Date
	}
	if req.Type != nil {
		draft.Type = *req.Type
	}

	tx, err := s.ledger.Add(r.Context(), draft)
	writeMutationResult(w, http.StatusCreated, tx, err)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := core.Patch{
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
		Type:        req.Type,
	}

	tx, err := s.ledger.Update(r.Context(), r.PathValue("id"), patch)
	writeMutationResult(w, http.StatusOK, tx, err)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := s.ledger.Remove(r.Context(), r.PathValue("id"))
	writeMutationResult(w, http.StatusOK, tx, err)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"balance":              s.ledger.Balance(),
		"expenses_by_category": s.ledger.ExpensesByCategory(),
		"incomes_by_category":  s.ledger.IncomesByCategory(),
	})
}

func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	year := 0
	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid year %q", v))
			return
		}
		year = y
	}
	writeJSON(w, http.StatusOK, s.ledger.MonthlyTotals(year))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("expense-tracker-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(s.ledger.ExportCSV()))
}

// writeMutationResult maps engine errors onto HTTP status codes. A
// persistence failure is special: the mutation is already applied in memory,
// so the record is returned together with the divergence warning.
func writeMutationResult(w http.ResponseWriter, okStatus int, tx core.Transaction, err error) {
	var persistErr *ledger.PersistenceError
	switch {
	case err == nil:
		writeJSON(w, okStatus, tx)
	case errors.Is(err, ledger.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &persistErr):
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":          err.Error(),
			"memory_applied": true,
			"transaction":    tx,
		})
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
