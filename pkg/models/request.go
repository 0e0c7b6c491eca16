package models

import "strings"

// QueryRequest is one user submission. It is built by the display layer and
// handed to the workflow once; the workflow does not re-validate it.
type QueryRequest struct {
	UserID    string `json:"user_id"`
	AccountID string `json:"account_id"`
	Query     string `json:"query"`
	AuthToken string `json:"-"`
}

// Validate is the caller-side field check. The workflow assumes it has been run.
func (r QueryRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return ErrMissingField("user_id")
	}
	if strings.TrimSpace(r.AccountID) == "" {
		return ErrMissingField("account_id")
	}
	if strings.TrimSpace(r.Query) == "" {
		return ErrMissingField("query")
	}
	return nil
}

type ErrMissingField string

func (e ErrMissingField) Error() string {
	return "missing required field: " + string(e)
}
