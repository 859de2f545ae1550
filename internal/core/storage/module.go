package storage

import (
	"context"

	"go.uber.org/fx"
)

// Module 返回存储 Fx 模块
//
// 提供:
//   - *DB: BadgerDB 实例
//
// 生命周期:
//   - OnStop: 关闭数据库
func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(Open),
		fx.Invoke(registerLifecycle),
	)
}

func registerLifecycle(lc fx.Lifecycle, db *DB) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			log.Info("closing storage")
			return db.Close()
		},
	})
}
