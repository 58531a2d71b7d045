package documents

import (
	"go.uber.org/fx"

	"github.com/docuseek/docstore/v1/docstore"
	"github.com/docuseek/docstore/v1/embedding"
	"github.com/docuseek/docstore/v1/logger"
)

// FXModule provides the document service. Requires a docstore.Gateway,
// an embedding.Encoder, and a *logger.Logger in the container.
var FXModule = fx.Module("documents",
	fx.Provide(
		func(store docstore.Gateway, enc embedding.Encoder, log *logger.Logger) *Service {
			return NewService(store, enc, log)
		},
	),
)
