package hello

// GetOutput renders a response descriptor as a proxy integration would:
// status, headers and the raw body string.
type GetOutput struct {
	Status      int
	ContentType string `header:"Content-Type"`
	Body        []byte
}
