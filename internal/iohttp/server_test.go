package iohttp_test

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/gnames/gnspace/internal/iohttp"
	"github.com/gnames/gnspace/pkg/agency"
	"github.com/gnames/gnspace/pkg/config"
	"github.com/gnames/gnspace/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itoa(i int64) string {
	return strconv.FormatInt(i, 10)
}

func TestNewServer(t *testing.T) {
	cfg := config.New().Server
	srv := iohttp.NewServer(cfg, http.NotFoundHandler())
	assert.Equal(t, ":5555", srv.Addr)
	assert.Equal(t, 10*time.Second, srv.ReadTimeout)
	assert.Equal(t, 10*time.Second, srv.WriteTimeout)
}

func TestRun(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping server test in short mode")
	}

	port := freePort(t)
	cfg := config.ServerConfig{Port: port, ReadTimeout: 5, WriteTimeout: 5}
	srv := iohttp.NewServer(cfg, iohttp.NewHandler(newEnv(t).store))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- iohttp.Run(ctx, srv) }()

	url := fmt.Sprintf("http://localhost:%d/", port)
	var resp *http.Response
	var err error
	require.Eventually(t, func() bool {
		resp, err = http.Get(url)
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err = <-done:
		assert.NoError(t, err)
	case <-time.After(iohttp.ShutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRun_PortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	srv := iohttp.NewServer(config.ServerConfig{Port: port},
		http.NotFoundHandler())
	err = iohttp.Run(context.Background(), srv)
	require.Error(t, err)
	assert.Equal(t, errcode.ServerError, agency.Code(err))
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}
