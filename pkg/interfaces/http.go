package interfaces

import "net/http"

// HTTPDoer abstracts the HTTP transport used by the gateway and uploader so
// hosts can inject instrumented or recording clients. *http.Client satisfies
// the contract directly.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}
