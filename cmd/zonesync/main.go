package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"zonesync/config"
	"zonesync/log"
	"zonesync/provider"
	"zonesync/sources"
	"zonesync/zonesync"
)

var (
	configPath = flag.StringP("config", "c", "config.toml", "path to config file")
	debug      = flag.Bool("debug", false, "enable debug output")
	oneshot    = flag.Bool("oneshot", false, "run a single sync and exit, ignoring refresh_rate")
	help       = flag.BoolP("help", "h", false, "Print help message")
)

var buildDate string

var conf config.Config

func init() {
	flag.Parse()
	if *help {
		fmt.Println(flag.CommandLine.FlagUsages())
		os.Exit(0)
	}
}

func getInitLogger() context.Context {
	var err error
	var logger *zap.Logger

	if *debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}

	if err != nil {
		fmt.Printf("Failed creating logger: %v\n", err)
		os.Exit(1)
	}

	return log.WithLogger(context.Background(), logger)
}

func getLogger(ctx context.Context) context.Context {
	var logOption zap.Config
	if *debug {
		logOption = zap.NewDevelopmentConfig()
	} else {
		logOption = zap.NewProductionConfig()
	}

	if conf.Log.Level != nil {
		logOption.Level.SetLevel(*conf.Log.Level)
	}

	if conf.Log.Encoding != nil {
		logOption.Encoding = *conf.Log.Encoding
	}

	if conf.Log.InfoPath != nil {
		logOption.OutputPaths = *conf.Log.InfoPath
	}

	if conf.Log.ErrorPath != nil {
		logOption.ErrorOutputPaths = *conf.Log.ErrorPath
	}

	logOption.InitialFields = map[string]interface{}{
		"node": conf.Service.Name,
	}

	logger, err := logOption.Build()
	if err != nil {
		log.S(ctx).Fatalw("cannot build real logger", zap.Error(err))
	}

	return log.WithLogger(context.Background(), logger)
}

func main() {
	ctx := getInitLogger()

	if buildDate != "" {
		log.S(ctx).Infow("zonesync starting", "variant", "release", "build_date", buildDate)
	} else {
		log.S(ctx).Infow("zonesync starting", "variant", "debug")
	}

	f, err := os.Open(*configPath)
	if err != nil {
		log.S(ctx).Fatalw("failed loading config", zap.Error(err))
	}

	switch {
	case strings.HasSuffix(*configPath, ".toml"):
		err = toml.NewDecoder(f).Decode(&conf)
	case strings.HasSuffix(*configPath, ".yaml") || strings.HasSuffix(*configPath, ".yml"):
		err = yaml.NewDecoder(f).Decode(&conf)
	case strings.HasSuffix(*configPath, ".json"):
		err = json.NewDecoder(f).Decode(&conf)
	}

	if err != nil {
		log.S(ctx).Fatalw("failed loading config", zap.Error(err))
	}

	if len(conf.Hosts) == 0 {
		log.S(ctx).Fatalw("no hosts configured")
	}

	ctx = getLogger(ctx)

	createSource, ok := sources.Sources[conf.Address.Type]
	if !ok {
		log.S(ctx).Fatalw("unknown address source type", "type", conf.Address.Type)
	}

	source, err := createSource(ctx, conf.Address)
	if err != nil {
		log.S(ctx).Fatalw("cannot init address source", zap.Error(err))
	}

	createProvider, ok := provider.Providers[conf.Provider.Type]
	if !ok {
		log.S(ctx).Fatalw("unknown provider type", "type", conf.Provider.Type)
	}

	prov, err := createProvider(ctx, conf.Provider)
	if err != nil {
		log.S(ctx).Fatalw("cannot init provider", zap.Error(err))
	}

	syncer := zonesync.NewSyncer(prov, source, conf.Hosts)

	var ticker *time.Ticker
	if !*oneshot && conf.Service.RefreshRate > 0 {
		ticker = time.NewTicker(time.Duration(conf.Service.RefreshRate))
	}

	for {
		err := syncer.Run(ctx)

		if ticker == nil {
			if err != nil {
				os.Exit(1)
			}
			os.Exit(0)
		}

		// Errors were already logged with full context inside the run; the
		// service keeps going and tries again on the next tick.
		<-ticker.C
	}
}
