package api

import (
	"github.com/caseprep/docket/internal/arrange"
	"github.com/caseprep/docket/internal/assembly"
	"github.com/caseprep/docket/internal/cases"
	"github.com/caseprep/docket/internal/classifications"
	"github.com/caseprep/docket/internal/classify"
	"github.com/caseprep/docket/internal/config"
	"github.com/caseprep/docket/internal/documents"
	"github.com/caseprep/docket/internal/exhibits"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Cases           cases.System
	Documents       documents.System
	Classifications classifications.System
	Exhibits        exhibits.System
	Assembly        assembly.System
}

// NewDomain creates all domain systems from the API runtime. The
// classification backend and arrangement interpreter pick their model tiers
// here based on whether a model client is configured.
func NewDomain(runtime *Runtime, cfg *config.Config) *Domain {
	db := runtime.Database.Connection()

	casesSystem := cases.New(db, runtime.Logger, runtime.Pagination)

	docsSystem := documents.New(
		db,
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	classificationsSystem := classifications.New(
		db,
		docsSystem,
		casesSystem,
		classify.NewBackend(runtime.Model, runtime.Logger),
		runtime.Logger,
		runtime.Pagination,
		cfg.Assembly.Workers,
	)

	exhibitsSystem := exhibits.New(
		db,
		casesSystem,
		arrange.NewInterpreter(runtime.Model, runtime.Logger),
		runtime.Logger,
	)

	assemblySystem := assembly.New(
		db,
		runtime.Lifecycle,
		casesSystem,
		exhibitsSystem,
		docsSystem,
		runtime.Storage,
		runtime.Logger,
		cfg.Assembly.Workers,
		cfg.Assembly.WorkDir,
	)

	return &Domain{
		Cases:           casesSystem,
		Documents:       docsSystem,
		Classifications: classificationsSystem,
		Exhibits:        exhibitsSystem,
		Assembly:        assemblySystem,
	}
}
