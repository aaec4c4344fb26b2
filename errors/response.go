package errors

// ErrorResponse is the JSON structure used when reporting an error in
// structured (json/yaml) output.
type ErrorResponse struct {
	Error ErrorBody `json:"error" yaml:"error"`
}

// ErrorBody contains the reported error details.
type ErrorBody struct {
	Code    ErrorCode      `json:"code" yaml:"code"`
	Message string         `json:"message" yaml:"message"`
	Cause   string         `json:"cause,omitempty" yaml:"cause,omitempty"`
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
}

// ToResponse converts an AppError to an ErrorResponse for serialization.
func (e *AppError) ToResponse() ErrorResponse {
	body := ErrorBody{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	}
	if e.Cause != nil {
		body.Cause = e.Cause.Error()
	}
	return ErrorResponse{Error: body}
}

// ToResponse converts any error to an ErrorResponse. Errors that are not
// AppErrors are reported as internal errors.
func ToResponse(err error) ErrorResponse {
	if appErr, ok := AsAppError(err); ok {
		return appErr.ToResponse()
	}
	return Internal(err).ToResponse()
}
