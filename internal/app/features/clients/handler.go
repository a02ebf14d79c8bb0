// internal/app/features/clients/handler.go
package clients

import (
	"time"

	uierrors "github.com/daehokim/soluhub/internal/app/features/errors"
	clientstore "github.com/daehokim/soluhub/internal/app/store/clients"
	"github.com/daehokim/soluhub/internal/app/system/clock"
	"github.com/daehokim/soluhub/internal/app/system/snapshot"
	"github.com/daehokim/soluhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for Clients.
// It holds the DB handle, stores, and logger provided by WAFFLE DBDeps / Startup.
type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	ErrLog  *uierrors.ErrorLogger
	Clients *clientstore.Store
	Cache   *snapshot.Cache[models.Client]
	Clock   clock.Clock
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger, clk clock.Clock, cacheTTL time.Duration) *Handler {
	return &Handler{
		DB:      db,
		Log:     logger,
		ErrLog:  errLog,
		Clients: clientstore.New(db),
		Cache:   snapshot.NewCache[models.Client](cacheTTL),
		Clock:   clk,
	}
}
