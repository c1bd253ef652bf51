package contracts

import "net/http"

type ViewRenderer interface {
	Render(w http.ResponseWriter, status int, view string, data interface{}) error
}
