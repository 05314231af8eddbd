package httperr

// Response is the uniform error body: a single message under "error",
// matching what the api handlers emit inline.
type Response struct {
	Status int    `json:"-"`
	Error  string `json:"error"`
}

func New(status int, msg string) Response {
	return Response{Status: status, Error: msg}
}
