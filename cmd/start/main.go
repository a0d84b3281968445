package start

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alpacahq/bizcal/catalog"
	"github.com/alpacahq/bizcal/frontend"
	"github.com/alpacahq/bizcal/metrics"
	"github.com/alpacahq/bizcal/utils"
	"github.com/alpacahq/bizcal/utils/log"
)

const (
	usage                 = "start"
	short                 = "Start a bizcal calendar server"
	long                  = "This command loads the configured business calendars and serves queries over RPC"
	example               = "bizcal start --config <path>"
	defaultConfigFilePath = "./bizcal.yml"
	configDesc            = "set the path for the bizcal YAML configuration file"
)

var (
	// Cmd is the start command.
	Cmd = &cobra.Command{
		Use:        usage,
		Short:      short,
		Long:       long,
		Aliases:    []string{"s"},
		SuggestFor: []string{"boot", "up", "serve"},
		Example:    example,
		RunE:       executeStart,
	}
	// configFilePath set flag for a path to the config file.
	configFilePath string
)

// nolint:gochecknoinits // cobra's standard way to initialize flags
func init() {
	Cmd.Flags().StringVarP(&configFilePath, "config", "c", defaultConfigFilePath, configDesc)
}

// executeStart implements the start command.
func executeStart(cmd *cobra.Command, _ []string) error {
	startTime := time.Now()

	// Attempt to read config file.
	data, err := os.ReadFile(configFilePath)
	if err != nil {
		return fmt.Errorf("failed to read configuration file error: %w", err)
	}

	// Don't output command usage if args(=only the filepath to bizcal.yml at the moment) are correct
	cmd.SilenceUsage = true

	log.Info("using %v for configuration", configFilePath)

	config, err := utils.ParseConfig(data)
	if err != nil {
		return fmt.Errorf("failed to parse configuration file error: %w", err)
	}
	config.StartTime = startTime
	log.SetLevel(config.LogLevel)

	log.Info("loading business calendars...")
	catDir, err := catalog.NewDirectoryFromSettings(config.Calendars, filepath.Dir(configFilePath))
	if err != nil {
		return fmt.Errorf("failed to load calendars: %w", err)
	}
	metrics.ObserveCatalog(metrics.CalendarsLoaded, metrics.ByCalendar, catDir)

	startupTime := time.Since(startTime)
	metrics.StartupTime.Set(startupTime.Seconds())
	log.Info("startup time: %s", startupTime)

	mux := http.NewServeMux()
	log.Info("launching rpc calendar server...")
	rpcServer, _ := frontend.NewServer(catDir)
	mux.Handle("/rpc", rpcServer)
	srv := &http.Server{Addr: config.ListenURL, Handler: mux}

	uah := frontend.NewUtilityAPIHandlers(config.StartTime, catDir)
	if config.UtilitiesURL != "" {
		log.Info("launching utility service...")
		go func() {
			if err2 := uah.Handle(config.UtilitiesURL); err2 != nil {
				log.Error("utility API handle error: %v", err2.Error())
			}
		}()
	} else {
		mux.Handle("/", uah.Mux())
	}

	if config.Queryable {
		log.Info("enabling query access...")
		atomic.StoreUint32(&frontend.Queryable, 1)
	}

	// Spawn a goroutine and listen for a signal.
	const defaultSignalChanLen = 10
	signalChan := make(chan os.Signal, defaultSignalChanLen)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-signalChan
		log.Info("initiating graceful shutdown due to '%v' request", s)
		atomic.StoreUint32(&frontend.Queryable, uint32(0))
		log.Info("waiting a grace period of %v to shutdown...", config.StopGracePeriod)
		time.Sleep(config.StopGracePeriod)
		if err2 := srv.Shutdown(context.Background()); err2 != nil {
			log.Error("failed to shutdown server: %v", err2)
		}
	}()

	log.Info("listening on %s...", config.ListenURL)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server - error: %w", err)
	}
	log.Info("exiting...")
	return nil
}
