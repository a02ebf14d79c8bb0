// internal/app/features/issues/handler.go
package issues

import (
	uierrors "github.com/daehokim/soluhub/internal/app/features/errors"
	commentstore "github.com/daehokim/soluhub/internal/app/store/comments"
	issuestore "github.com/daehokim/soluhub/internal/app/store/issues"
	"github.com/daehokim/soluhub/internal/app/system/clock"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for Issues and their comments.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Issues   *issuestore.Store
	Comments *commentstore.Store
	Clock    clock.Clock
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger, clk clock.Clock) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   errLog,
		Issues:   issuestore.New(db),
		Comments: commentstore.New(db),
		Clock:    clk,
	}
}
