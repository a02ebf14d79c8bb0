// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/daehokim/soluhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short: appCfg.DBTimeoutShort,
		Long:  appCfg.DBTimeoutLong,
	})
	return nil
}
