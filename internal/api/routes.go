package api

import (
	"net/http"

	"github.com/caseprep/docket/internal/config"
	"github.com/caseprep/docket/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	storage := newStorageHandler(runtime.Storage, runtime.Logger)

	routes.Register(
		mux,
		domain.Cases.Handler().Routes(),
		domain.Documents.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Classifications.Handler().Routes(),
		domain.Exhibits.Handler().Routes(),
		domain.Assembly.Handler().Routes(),
		storage.routes(),
	)
}
