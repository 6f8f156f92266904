package httptransport

import (
	"encoding/json"
	"errors"

	"xapi/pkg/domain"
	dErrors "xapi/pkg/domain-errors"
	"xapi/pkg/xapi"
)

type statementsResponse struct {
	Statements []*xapi.Statement `json:"statements"`
}

type healthResponse struct {
	Status      string `json:"status"`
	XAPIVersion string `json:"xapi_version"`
}

// voidRequest is the body of POST /statements/void.
type voidRequest struct {
	StatementID string          `json:"statementId"`
	Actor       json.RawMessage `json:"actor"`

	target domain.StatementID
}

func decodeVoidRequest(body []byte) (*voidRequest, error) {
	if !json.Valid(body) {
		return nil, dErrors.New(dErrors.CodeParse, "request body is not valid JSON")
	}
	var req voidRequest
	if err := json.Unmarshal(body, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			if typeErr.Field == "" {
				return nil, dErrors.Format("", typeErr.Value, "request body must be a JSON object")
			}
			return nil, dErrors.Format(typeErr.Field, typeErr.Value, "expected a "+typeErr.Type.String())
		}
		return nil, dErrors.Wrap(err, dErrors.CodeParse, "request body is not a JSON object")
	}
	if req.StatementID == "" {
		return nil, dErrors.MissingField("statementId")
	}
	target, err := domain.ParseStatementID(req.StatementID)
	if err != nil {
		return nil, dErrors.AtPath(err, "statementId")
	}
	if len(req.Actor) == 0 || string(req.Actor) == "null" {
		return nil, dErrors.MissingField("actor")
	}
	req.target = target
	return &req, nil
}
