package server

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/datacharts-labs/datacharts/pkg/sandbox"
)

// parseRequest is the body for parse, validate, and analyze endpoints.
type parseRequest struct {
	Expression string `json:"expression"`
}

// createDatasetRequest uploads a table as an ordered list of columns.
type createDatasetRequest struct {
	Columns []columnPayload `json:"columns"`
}

type columnPayload struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// datasetResponse describes a stored table.
type datasetResponse struct {
	ID      string   `json:"id"`
	Columns []string `json:"columns"`
	Rows    int      `json:"rows"`
}

// applyRequest evaluates an expression against a stored dataset.
type applyRequest struct {
	Expression string `json:"expression"`
}

// applyResponse carries the coerced evaluation result. Values are emitted
// as nullable numbers because NaN and Inf have no JSON representation.
type applyResponse struct {
	Kind       string        `json:"kind"`
	Values     []*float64    `json:"values"`
	RowAligned bool          `json:"row_aligned"`
	ElapsedMS  float64       `json:"elapsed_ms"`
	Status     string        `json:"status"`
	Error      string        `json:"error,omitempty"`
}

func newApplyResponse(result sandbox.ExecutionResult) applyResponse {
	return applyResponse{
		Kind:       string(result.Value.Kind),
		Values:     jsonNumbers(result.Value.Values),
		RowAligned: result.Value.RowAligned,
		ElapsedMS:  float64(result.Elapsed.Microseconds()) / 1000,
		Status:     result.Status,
		Error:      result.ErrorMessage,
	}
}

// jsonNumbers converts values to nullable JSON numbers: NaN and Inf become
// null.
func jsonNumbers(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		v := v
		out[i] = &v
	}
	return out
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}
