package db

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Module provides the gorm connection.
var Module = fx.Module("db",
	fx.Provide(Dialect),
	fx.Provide(Open),
)

// Open opens the gorm connection for the configured dialect.
func Open(dialector gorm.Dialector, log *zap.Logger) (*gorm.DB, error) {
	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	log.Info("database connected", zap.String("dialect", dialector.Name()))
	return gdb, nil
}
