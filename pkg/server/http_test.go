package server

import (
	"context"
	"net"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"tierbench/internal/app"
)

func TestRunReleasesServiceWhenListenFails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	svc, err := app.NewService(app.Config{}, nil, nil, nil, logger)
	require.NoError(t, err)

	cfg := app.Config{}
	cfg.HTTP.Listen = busy.Addr().String()
	srv := NewHTTPServer(gin.New(), logger, cfg, svc, nil, nil)

	err = srv.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("seed service closed").Len())
}
