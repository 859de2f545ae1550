package session

import (
	"context"

	"go.uber.org/fx"

	pkgif "github.com/ambernet/go-amber/pkg/interfaces"
)

// Params 会话模块依赖参数
type Params struct {
	fx.In

	Transport       pkgif.Accepter
	Dialer          pkgif.Connector
	Signer          pkgif.Signer
	Random          pkgif.RandomSource
	AccepterConfig  AccepterConfig  `optional:"true"`
	ConnectorConfig ConnectorConfig `optional:"true"`
}

// Result 会话模块提供的结果
type Result struct {
	fx.Out

	Accepter  *SessionAccepter
	Connector *SessionConnector
}

// Module 返回会话层 Fx 模块
//
// 提供:
//   - *SessionAccepter: 入站会话接入端（工作池随构造启动）
//   - *SessionConnector: 出站会话连接端
//
// 生命周期:
//   - OnStop: 终止接入端，等待工作池退出
func Module() fx.Option {
	return fx.Module("session",
		fx.Provide(provideSession),
		fx.Invoke(registerLifecycle),
	)
}

func provideSession(p Params) (Result, error) {
	accepterCfg := p.AccepterConfig
	if accepterCfg == (AccepterConfig{}) {
		accepterCfg = DefaultAccepterConfig()
	}
	connectorCfg := p.ConnectorConfig
	if connectorCfg == (ConnectorConfig{}) {
		connectorCfg = DefaultConnectorConfig()
	}

	accepter, err := NewSessionAccepter(p.Transport, p.Signer, p.Random, accepterCfg)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Accepter:  accepter,
		Connector: NewSessionConnector(p.Dialer, p.Signer, p.Random, connectorCfg),
	}, nil
}

func registerLifecycle(lc fx.Lifecycle, accepter *SessionAccepter) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			log.Info("terminating session accepter")
			return accepter.Terminate()
		},
	})
}
