package breach

import (
	"breachvault/internal/domain/exposure"
	"breachvault/internal/domain/ingest"
)

type checkInput struct {
	Body checkRequest
}

type checkRequest struct {
	Email string `json:"email" doc:"Email address to check" minLength:"3"`
}

type checkResponse struct {
	Status string `json:"status"`
	ingest.CheckResult
}

type checkOutput struct {
	Body checkResponse
}

type summaryResponse struct {
	Status   string                  `json:"status"`
	Breaches []exposure.SummaryEntry `json:"breaches"`
}

type summaryOutput struct {
	Body summaryResponse
}
