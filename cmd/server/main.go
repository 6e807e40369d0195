package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coddingtonbear/sark100web/internal/analyzer"
	"github.com/coddingtonbear/sark100web/internal/api"
	"github.com/coddingtonbear/sark100web/internal/api/handlers"
	"github.com/coddingtonbear/sark100web/internal/config"
	"github.com/coddingtonbear/sark100web/internal/processing"
	"github.com/coddingtonbear/sark100web/internal/transport"
	"github.com/coddingtonbear/sark100web/pkg/models"
)

const version = "1.0.0"

var debug bool

var rootCmd = &cobra.Command{
	Use:   "sark100web [serial_port]",
	Short: "Run antenna analyses from your browser while away from the analyzer",
	Args:  cobra.MaximumNArgs(1),
	RunE:  run,
}

func init() {
	rootCmd.Flags().String("host", "0.0.0.0", "listening host")
	rootCmd.Flags().String("port", "8000", "listening port")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// bindFlags binds the listening flags into viper so they win over env and .env values
func bindFlags(cmd *cobra.Command) error {
	for key, name := range map[string]string{"HOST": "host", "PORT": "port"} {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}
	return nil
}

func main() {
	// Configure zerolog for structured logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

func run(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd); err != nil {
		return err
	}

	if len(args) == 1 {
		viper.Set("SERIAL_PORT", args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		return err
	}
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Device.SerialPort == "" {
		return errors.New("serial port required: pass it as argument or set SERIAL_PORT")
	}

	opener := transport.NewSerialOpener(transport.SerialConfig{
		BaudRate: cfg.Device.BaudRate,
		RTS:      true,
	})
	scanner := analyzer.NewDevice(analyzer.Config{
		Port:        cfg.Device.SerialPort,
		ReadTimeout: cfg.Device.ReadTimeout,
		LockTimeout: cfg.Device.LockTimeout,
	}, opener)
	sweepSvc := processing.NewSweepService(scanner, cfg.Sweep.SWRThresholds)

	// Create Chi router
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(zerologLogger())
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Create Huma API
	humaConfig := huma.DefaultConfig("SARK-100 Web API", version)
	humaAPI := humachi.New(router, humaConfig)

	huma.Register(humaAPI, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns the health status of the service",
	}, func(ctx context.Context, input *struct{}) (*models.HealthResponse, error) {
		resp := &models.HealthResponse{}
		resp.Body.Status = "healthy"
		resp.Body.Version = version
		resp.Body.Port = cfg.Device.SerialPort
		resp.Body.Time = time.Now()
		return resp, nil
	})

	api.RegisterRoutes(humaAPI, handlers.NewSweepHandler(sweepSvc, transport.ListPorts))

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("addr", srv.Addr).Str("serialPort", cfg.Device.SerialPort).Msg("Starting SARK-100 web server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	// A running sweep only ends with the device, give it time to finish
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	log.Info().Msg("Server exited")
	return nil
}

// zerologLogger returns a Chi middleware that logs HTTP requests using zerolog
func zerologLogger() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				log.Info().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("remote_ip", r.RemoteAddr).
					Str("request_id", middleware.GetReqID(r.Context())).
					Int("status", ww.Status()).
					Dur("latency", time.Since(start)).
					Msg("HTTP request")
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
