package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/MikeMC777/butchery-shop/docs"
	"github.com/MikeMC777/butchery-shop/internal/cache"
	"github.com/MikeMC777/butchery-shop/internal/config"
	"github.com/MikeMC777/butchery-shop/internal/logx"
	"github.com/MikeMC777/butchery-shop/internal/session"
	"github.com/MikeMC777/butchery-shop/internal/shopapi"
)

func main() {
	cfg := config.Load()
	logger := logx.New("admin", cfg.LogLevel)
	logx.SetGlobal(logger)
	cfg.Report(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		auth *session.Authenticator
		err  error
	)
	if cfg.AdminPasswordHash != "" {
		auth, err = session.NewAuthenticator(cfg.AdminUsername, cfg.AdminPasswordHash)
	} else {
		auth, err = session.NewAuthenticatorFromPassword(cfg.AdminUsername, cfg.AdminPassword, 0)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("admin credentials")
	}

	store, err := cache.New(ctx, cfg.RedisURL, "admin")
	if err != nil {
		logger.Fatal().Err(err).Msg("cache")
	}
	api := shopapi.New(cfg.APIBaseURL, cfg.APITimeout, logger)

	r := newRouter(deps{
		Products:       api.Products(),
		Sessions:       session.NewManager(auth, store, cfg.SessionTTL),
		Log:            logger,
		SecureCookie:   cfg.CookieSecure,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.InstanceName(docs.AdminInfo.InstanceName())))

	srv := &http.Server{Addr: cfg.AdminAddr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Info().Str("addr", cfg.AdminAddr).Msg("admin listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}
