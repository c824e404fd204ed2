package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/datacharts-labs/datacharts/pkg/dataset"
	"github.com/datacharts-labs/datacharts/pkg/expr"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleEnvironment(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.processor.Environment())
}

func (s *Server) handleListFunctions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"functions":  s.processor.SupportedFunctions(),
		"categories": s.processor.FunctionCategories(),
	})
}

func (s *Server) handleFunctionCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.processor.FunctionCategories())
}

func (s *Server) handleFunctionInfo(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	desc, ok := s.processor.FunctionInfo(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown function "+name)
		return
	}
	writeJSON(w, http.StatusOK, desc)
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	e, err := s.processor.ParseExpression(req.Expression)
	if err != nil {
		writeError(w, parseErrorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	report := s.processor.ValidateExpressionSafety(req.Expression)
	writeJSON(w, http.StatusOK, map[string]any{
		"syntax_valid": s.processor.ValidateSyntax(req.Expression),
		"safety":       report,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.processor.Analyze(req.Expression))
}

// handleCreateDataset accepts either a raw CSV body (text/csv) or a JSON
// column payload.
func (s *Server) handleCreateDataset(w http.ResponseWriter, r *http.Request) {
	var t *dataset.Table

	if strings.HasPrefix(r.Header.Get("Content-Type"), "text/csv") {
		var err error
		t, err = dataset.ReadCSV(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid CSV body: "+err.Error())
			return
		}
	} else {
		var req createDatasetRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if len(req.Columns) == 0 {
			writeError(w, http.StatusBadRequest, "dataset needs at least one column")
			return
		}

		t = dataset.NewTable()
		for _, col := range req.Columns {
			if err := t.AddColumn(col.Name, col.Values); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
	}

	if len(t.Columns()) == 0 {
		writeError(w, http.StatusBadRequest, "dataset needs at least one column")
		return
	}

	id := s.store.Put(t)
	s.logger.Info("dataset stored", "id", id, "columns", len(t.Columns()), "rows", t.RowCount())
	writeJSON(w, http.StatusCreated, datasetResponse{
		ID:      id,
		Columns: t.Columns(),
		Rows:    t.RowCount(),
	})
}

func (s *Server) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	t, ok := s.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown dataset "+id)
		return
	}
	writeJSON(w, http.StatusOK, datasetResponse{
		ID:      id,
		Columns: t.Columns(),
		Rows:    t.RowCount(),
	})
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	t, ok := s.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown dataset "+id)
		return
	}

	var req applyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := s.processor.Apply(r.Context(), req.Expression, t)
	if err != nil {
		writeError(w, parseErrorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newApplyResponse(result))
}

func (s *Server) handleValidateWithData(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	t, ok := s.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown dataset "+id)
		return
	}

	var req parseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.processor.ValidateWithData(req.Expression, t))
}

// parseErrorStatus maps expression pipeline failures to HTTP statuses. All
// of them are client errors; unsafe patterns get 422 to distinguish policy
// rejection from malformed input.
func parseErrorStatus(err error) int {
	switch err.(type) {
	case *expr.UnsafePatternError:
		return http.StatusUnprocessableEntity
	case *expr.TooLongError, *expr.TooDeepError,
		*expr.SyntaxError, *expr.UnsupportedFunctionError:
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}
