package breach

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) checkOp() huma.Operation {
	return huma.Operation{
		OperationID: "breaches-check",
		Method:      http.MethodPost,
		Path:        "/api/breaches/check",
		Summary:     "Check an email against known breaches",
		Description: "Queries the breach oracle, canonicalizes every reported breach and records the exposure for the caller.",
		Tags:        []string{"breaches"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) summaryOp() huma.Operation {
	return huma.Operation{
		OperationID: "breaches-summary",
		Method:      http.MethodGet,
		Path:        "/api/breaches",
		Summary:     "List the caller's breach exposure",
		Description: "Returns every breach the caller's checked emails appeared in, newest first.",
		Tags:        []string{"breaches"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
