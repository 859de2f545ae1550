// Package main 提供 amberd 守护进程入口
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/ambernet/go-amber/config"
	"github.com/ambernet/go-amber/internal/core/identity"
	"github.com/ambernet/go-amber/internal/core/node"
	"github.com/ambernet/go-amber/internal/core/session"
	"github.com/ambernet/go-amber/internal/core/storage"
	"github.com/ambernet/go-amber/internal/core/storage/filestore"
	"github.com/ambernet/go-amber/internal/core/transport/tcp"
	"github.com/ambernet/go-amber/internal/util/logger"
	pkgif "github.com/ambernet/go-amber/pkg/interfaces"
	"github.com/ambernet/go-amber/pkg/types"
)

var log = logger.Logger("amberd")

const version = "0.1.0"

var (
	configFile  = flag.String("config", "", "配置文件路径")
	listenAddr  = flag.String("listen", "", "监听地址（覆盖配置）")
	keyFile     = flag.String("identity", "", "身份密钥文件路径（覆盖配置）")
	dataDir     = flag.String("data-dir", "", "存储目录（覆盖配置）")
	showVersion = flag.Bool("version", false, "显示版本信息")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "amberd:", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if *showVersion {
		fmt.Println("amberd", version)
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		fx.Provide(
			provideSigner,
			provideRandom,
			provideClock,
			provideAccepterTransport,
			provideConnectorTransport,
			provideNodeRefSource,
			provideStorageConfig,
			provideFilestoreConfig,
			provideSessionConfigs,
			provideFinderConfig,
		),
		storage.Module(),
		filestore.Module(),
		session.Module(),
		node.Module(),
		fx.Invoke(registerTransportLifecycle),
		fx.Invoke(runEngine),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	log.Info("amberd started", "version", version, "listen", cfg.Transport.ListenAddr)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return app.Stop(stopCtx)
}

// loadConfig 加载配置并应用命令行覆盖
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if *configFile != "" {
		cfg, err = config.LoadFile(*configFile)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.NewConfig()
	}

	if *listenAddr != "" {
		cfg.Transport.ListenAddr = *listenAddr
	}
	if *keyFile != "" {
		cfg.Identity.KeyFile = *keyFile
	}
	if *dataDir != "" {
		cfg.Storage.Path = *dataDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ============================================================================
//                              依赖装配
// ============================================================================

func provideSigner(cfg *config.Config) (pkgif.Signer, error) {
	signer, err := identity.LoadOrCreateSigner(cfg.Identity.KeyFile, cfg.Identity.AutoGenerate)
	if err != nil {
		return nil, err
	}
	log.Info("identity loaded", "node", signer.NodeID().ShortString())
	return signer, nil
}

func provideRandom() pkgif.RandomSource {
	return identity.NewRandomSource()
}

func provideClock() clock.Clock {
	return clock.New()
}

func provideAccepterTransport(cfg *config.Config) (pkgif.Accepter, error) {
	return tcp.NewAccepter(cfg.Transport.ListenAddr, tcp.Config{
		KeepAlive: cfg.Transport.KeepAlive.Duration(),
		NoDelay:   cfg.Transport.NoDelay,
	})
}

func provideConnectorTransport(cfg *config.Config) pkgif.Connector {
	return tcp.NewConnector(tcp.Config{
		KeepAlive: cfg.Transport.KeepAlive.Duration(),
		NoDelay:   cfg.Transport.NoDelay,
	})
}

func provideNodeRefSource(cfg *config.Config) pkgif.NodeRefSource {
	refs := make([]types.NodeRef, 0, len(cfg.Node.KnownPeers))
	for _, p := range cfg.Node.KnownPeers {
		refs = append(refs, types.NewNodeRef(types.NodeID(p.ID), p.Addrs...))
	}
	return node.NewStaticSource(refs...)
}

func provideStorageConfig(cfg *config.Config) storage.Config {
	return storage.Config{
		Path:       cfg.Storage.Path,
		SyncWrites: cfg.Storage.SyncWrites,
	}
}

func provideFilestoreConfig(cfg *config.Config) filestore.Config {
	return filestore.Config{BlockCacheSize: cfg.Storage.BlockCacheSize}
}

func provideSessionConfigs(cfg *config.Config) (session.AccepterConfig, session.ConnectorConfig) {
	return session.AccepterConfig{
			QueueCapacity:  cfg.Session.QueueCapacity,
			WorkerCount:    cfg.Session.WorkerCount,
			AcceptInterval: cfg.Session.AcceptInterval.Duration(),
			Versions:       types.SessionVersionV1,
		}, session.ConnectorConfig{
			HandshakeTimeout: cfg.Session.HandshakeTimeout.Duration(),
			Versions:         types.SessionVersionV1,
		}
}

func provideFinderConfig(cfg *config.Config) node.FinderConfig {
	return node.FinderConfig{
		CycleInterval: cfg.Node.CycleInterval.Duration(),
		MemberTTL:     cfg.Node.MemberTTL.Duration(),
		SessionBuffer: cfg.Node.SessionBuffer,
	}
}

func registerTransportLifecycle(lc fx.Lifecycle, transport pkgif.Accepter) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return transport.Close()
		},
	})
}
