package bridge

import "github.com/dashlens/dashlens/internal/session"

type HashPasswordRequest struct {
	Password string `json:"password"`
}

type HashPasswordResponse struct {
	Hash string `json:"hash"`
}

type VerifyPasswordRequest struct {
	Password string `json:"password"`
	Hash     string `json:"hash"`
}

type VerifyPasswordResponse struct {
	Valid bool `json:"valid"`
}

type SetSessionRequest struct {
	Session session.AuthSession `json:"session"`
}

// GetCurrentUserResponse carries a null session when nobody is signed in.
type GetCurrentUserResponse struct {
	Session *session.AuthSession `json:"session"`
}

// ExecuteRequest runs a statement that returns no rows. Values are bound to
// "?" placeholders in order.
type ExecuteRequest struct {
	Query  string `json:"query"`
	Values []any  `json:"values,omitempty"`
}

type ExecuteResponse struct {
	RowsAffected int64 `json:"rows_affected"`
	LastInsertID int64 `json:"last_insert_id"`
}

type SelectRequest struct {
	Query  string `json:"query"`
	Values []any  `json:"values,omitempty"`
}

type SelectResponse struct {
	Rows []map[string]any `json:"rows"`
}
