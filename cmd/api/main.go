package main

import (
	"context"
	"time"

	"taskflow/pkg/translator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	authadapter "taskflow/internal/adapter/auth"
	dbadapter "taskflow/internal/adapter/db"
	httpadapter "taskflow/internal/adapter/http"
	"taskflow/internal/adapter/http/handlers"
	httpmiddleware "taskflow/internal/adapter/http/middleware"
	"taskflow/internal/adapter/memory"
	appservice "taskflow/internal/app/service"
	"taskflow/internal/config"
	"taskflow/internal/core/domain"
	"taskflow/internal/core/ports"
)

const seedTimeout = 10 * time.Second

type stores struct {
	transactor ports.Transactor
	tasks      ports.TaskRepository
	users      ports.UserRepository
	pinger     handlers.Pinger
	close      func()
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	cfg := config.LoadConfig()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	st, err := openStores(cfg)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer st.close()

	tokenIssuer, err := authadapter.NewJWTIssuer(cfg.JWTSecret, cfg.JWTTTL, cfg.JWTIssuer)
	if err != nil {
		logger.Fatal("invalid token configuration", zap.Error(err))
	}

	identityService := appservice.NewIdentityService(st.transactor, st.users, authadapter.NewBcryptHasher(bcrypt.DefaultCost), tokenIssuer)
	taskService := appservice.NewTaskService(st.transactor, st.tasks, st.users)

	seedCtx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	if _, err := identityService.EnsureSeedAdmin(seedCtx, domain.SeedAdmin{
		Email:    cfg.SeedAdminEmail,
		Name:     cfg.SeedAdminName,
		Password: cfg.SeedAdminPassword,
	}); err != nil {
		cancel()
		logger.Fatal("failed to seed admin", zap.Error(err))
	}
	cancel()

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Strings("proxies", cfg.TrustedProxies), zap.Error(err))
	}
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))

	httpadapter.RegisterRoutes(
		r,
		handlers.NewHealthHandler(st.pinger, cfg.StoreDriver),
		handlers.NewAuthHandler(identityService),
		handlers.NewTaskHandler(taskService),
		httpmiddleware.AuthMiddleware(identityService),
	)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	logger.Info("starting server", zap.String("addr", addr), zap.String("store", cfg.StoreDriver))
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}

func openStores(cfg *config.Config) (stores, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		store := memory.NewStore()
		zap.L().Warn("using in-memory store, data is lost on restart")
		return stores{
			transactor: store,
			tasks:      store.Tasks(),
			users:      store.Users(),
			pinger:     store,
			close:      func() {},
		}, nil
	}

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		return stores{}, err
	}

	return stores{
		transactor: dbadapter.NewTransactor(db),
		tasks:      dbadapter.NewTaskRepository(db),
		users:      dbadapter.NewUserRepository(db),
		pinger:     db,
		close: func() {
			if err := db.Close(); err != nil {
				zap.L().Warn("failed to close mysql connection", zap.Error(err))
			}
		},
	}, nil
}
