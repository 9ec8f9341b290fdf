package swagger

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

func Handler() http.Handler {
	// Serve the API spec published at the root path.
	return httpSwagger.Handler(
		httpSwagger.URL("/openapi.yml"),
	)
}
