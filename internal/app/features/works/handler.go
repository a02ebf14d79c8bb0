// internal/app/features/works/handler.go
package works

import (
	uierrors "github.com/daehokim/soluhub/internal/app/features/errors"
	workstore "github.com/daehokim/soluhub/internal/app/store/works"
	"github.com/daehokim/soluhub/internal/app/system/clock"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for weekly work logs.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Works  *workstore.Store
	Clock  clock.Clock
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger, clk clock.Clock) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: errLog,
		Works:  workstore.New(db),
		Clock:  clk,
	}
}
