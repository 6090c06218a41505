// Package badparam is a fixture with a param directive for a missing parameter.
package badparam

// Handler handles requests.
//
//apidesc:controller
type Handler struct{}

// Get returns a value.
//
//apidesc:get
//apidesc:param missing path
func (h *Handler) Get(id string) string {
	return id
}
