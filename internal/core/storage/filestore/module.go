package filestore

import (
	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/ambernet/go-amber/internal/core/storage"
)

// Params 仓库模块依赖参数
type Params struct {
	fx.In

	DB     *storage.DB
	Clock  clock.Clock
	Config Config `optional:"true"`
}

// Module 返回文件仓库 Fx 模块
//
// 提供:
//   - *Repo: 发布文件与哈希树条目仓库
func Module() fx.Option {
	return fx.Module("filestore",
		fx.Provide(provideRepo),
	)
}

func provideRepo(p Params) (*Repo, error) {
	return NewRepo(p.DB, p.Clock, p.Config)
}
