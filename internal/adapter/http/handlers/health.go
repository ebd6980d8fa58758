package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"taskflow/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	StatusOk        = "ok"
	StatusDown      = "down"
	healthDBTimeout = 2 * time.Second
)

// Pinger is satisfied by *sqlx.DB and by the in-memory store.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthBasic struct {
	AppName           string `json:"app_name"`
	AppVersion        string `json:"app_version"`
	CurrentSystemTime string `json:"current_system_time"`
	Message           string `json:"message"`
}

type HealthServices struct {
	Store       string `json:"store"`
	StoreDriver string `json:"store_driver"`
}

type HealthAdvanced struct {
	AppName           string         `json:"app_name"`
	AppVersion        string         `json:"app_version"`
	CurrentSystemTime string         `json:"current_system_time"`
	Language          string         `json:"language"`
	RequestID         string         `json:"request_id,omitempty"`
	Status            HealthServices `json:"status"`
}

type HealthHandler struct {
	store  Pinger
	driver string
	now    func() time.Time
}

func NewHealthHandler(store Pinger, driver string) *HealthHandler {
	return &HealthHandler{store: store, driver: driver, now: time.Now}
}

func (h *HealthHandler) CheckHealth(c *gin.Context) {
	statusCode := http.StatusOK
	message := StatusOk

	if !h.checkStore(c.Request.Context()) {
		statusCode = http.StatusServiceUnavailable
		message = StatusDown
	}

	c.JSON(statusCode, HealthBasic{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: h.now().Format(time.DateTime),
		Message:           message,
	})
}

func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	storeStatus := StatusDown
	if h.checkStore(c.Request.Context()) {
		storeStatus = StatusOk
	}

	c.JSON(http.StatusOK, HealthAdvanced{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: h.now().Format(time.DateTime),
		Language:          middleware.GetLang(c),
		RequestID:         middleware.GetRequestID(c),
		Status: HealthServices{
			Store:       storeStatus,
			StoreDriver: h.driver,
		},
	})
}

func (h *HealthHandler) checkStore(ctx context.Context) bool {
	if h.store == nil {
		return false
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, healthDBTimeout)
	defer cancel()
	return h.store.PingContext(timeoutCtx) == nil
}

func getAppVersion() string {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		return "dev"
	}
	return version
}
