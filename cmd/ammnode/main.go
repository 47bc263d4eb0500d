package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meverselabs/amm/cmd/app"
	"github.com/meverselabs/amm/cmd/closer"
	"github.com/meverselabs/amm/cmd/config"
	"github.com/meverselabs/amm/common"
	"github.com/meverselabs/amm/common/rlog"
	"github.com/meverselabs/amm/service/apiserver"
)

// Config is a configuration for the cmd
type Config struct {
	AdminAddress  string
	FeeToSetter   string
	InitTimestamp uint64
	RPCPort       int
	RPCWorkers    int
	LogLevel      string
	NativeSupply  string
	Tokens        []app.GenesisToken
	Pools         []app.GenesisPool
}

func main() {
	cfgPath := flag.String("cfg", "./config.toml", "config file path")
	envPath := flag.String("env", "./.env", "dotenv file path")
	flag.Parse()

	if err := run(*cfgPath, *envPath); err != nil {
		rlog.Errorw("ammnode stopped", "err", fmt.Sprintf("%+v", err))
		rlog.Sync()
		os.Exit(1)
	}
}

func loadConfig(cfgPath, envPath string) (*Config, error) {
	cfg := &Config{
		RPCPort:    8541,
		RPCWorkers: 50,
		LogLevel:   "info",
	}
	if err := config.LoadFile(cfgPath, cfg); err != nil {
		return nil, err
	}
	if err := config.LoadDotEnv(envPath); err != nil {
		return nil, err
	}
	config.EnvString("AMM_ADMIN_ADDRESS", &cfg.AdminAddress)
	config.EnvString("AMM_FEE_TO_SETTER", &cfg.FeeToSetter)
	config.EnvString("AMM_LOG_LEVEL", &cfg.LogLevel)
	if err := config.EnvInt("AMM_RPC_PORT", &cfg.RPCPort); err != nil {
		return nil, err
	}
	if err := config.EnvInt("AMM_RPC_WORKERS", &cfg.RPCWorkers); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cfgPath, envPath string) error {
	cfg, err := loadConfig(cfgPath, envPath)
	if err != nil {
		return err
	}
	if err := rlog.SetLevel(cfg.LogLevel); err != nil {
		return err
	}

	admin, err := common.ParseAddress(cfg.AdminAddress)
	if err != nil {
		return err
	}
	var feeToSetter common.Address
	if len(cfg.FeeToSetter) > 0 {
		if feeToSetter, err = common.ParseAddress(cfg.FeeToSetter); err != nil {
			return err
		}
	}
	ts := cfg.InitTimestamp * uint64(time.Second)
	if ts == 0 {
		ts = uint64(time.Now().UnixNano())
	}

	ex := app.NewExchangeApp(admin, ts)
	if err := ex.InitGenesis(&app.Genesis{
		FeeToSetter:  feeToSetter,
		NativeSupply: cfg.NativeSupply,
		Tokens:       cfg.Tokens,
		Pools:        cfg.Pools,
	}); err != nil {
		return err
	}

	cm := closer.NewManager()
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigc)

	s := apiserver.NewAPIServer(cfg.RPCWorkers)
	if err := apiserver.RegisterExchange(s, ex.Context, ex.Factory(), ex.Router()); err != nil {
		return err
	}
	cm.Add(s.Name(), s)

	errc := make(chan error, 1)
	go func() {
		bind := fmt.Sprintf(":%d", cfg.RPCPort)
		rlog.Infow("apiserver started", "bind", bind)
		errc <- s.Run(bind)
	}()

	select {
	case <-sigc:
		cm.CloseAll()
		return nil
	case err := <-errc:
		cm.CloseAll()
		return err
	}
}
