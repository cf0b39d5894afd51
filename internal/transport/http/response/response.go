package response

// Bodies are deliberately small: success responses serialize the record
// itself, failures carry a single error string (or a field map for
// validation), matching what the mobile client parses.

type ErrorBody struct {
	Error string `json:"error"`
}

func Error(msg string) ErrorBody { return ErrorBody{Error: msg} }

type ValidationBody struct {
	Error   map[string][]string `json:"error"`
	Message string              `json:"message"`
}

func ValidationError(fields map[string][]string) ValidationBody {
	return ValidationBody{Error: fields, Message: "Validation failed"}
}

type TokenBody struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}
