package node

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/ambernet/go-amber/internal/core/session"
	pkgif "github.com/ambernet/go-amber/pkg/interfaces"
)

// Params 节点发现模块依赖参数
type Params struct {
	fx.In

	Connector *session.SessionConnector
	Source    pkgif.NodeRefSource
	Clock     clock.Clock
	Config    FinderConfig `optional:"true"`
}

// Module 返回节点发现 Fx 模块
//
// 提供:
//   - *NodeFinder: 发现循环（随构造启动）
//
// 生命周期:
//   - OnStop: 终止发现循环
func Module() fx.Option {
	return fx.Module("node",
		fx.Provide(provideFinder),
		fx.Invoke(registerLifecycle),
	)
}

func provideFinder(p Params) (*NodeFinder, error) {
	config := p.Config
	if config == (FinderConfig{}) {
		config = DefaultFinderConfig()
	}
	return NewNodeFinder(p.Connector, p.Source, p.Clock, config)
}

func registerLifecycle(lc fx.Lifecycle, finder *NodeFinder) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			log.Info("terminating node finder")
			return finder.Terminate()
		},
	})
}
