package messages

import (
	"advisor-dash/pkg/models"
	"github.com/google/uuid"
)

type SubmitQuery struct {
	RequestID uuid.UUID
	Request   models.QueryRequest
}

type Reset struct{}

type GetState struct{}
