package services

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/freakmaxi/rdrelay/redirector/routing"
	"github.com/freakmaxi/rdrelay/redirector/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func freeAddress(t *testing.T) string {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = listener.Close() }()

	return listener.Addr().String()
}

func TestProxy_Start(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	m := routing.NewManager()
	m.Add(routing.NewStatusRouter(service.NewTracker(), logger))

	address := freeAddress(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- NewProxy(address, m, logger).Start(ctx) }()

	var body []byte
	assert.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://%s/status", address))
		if err != nil {
			return false
		}
		defer func() { _ = resp.Body.Close() }()

		body, _ = io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK
	}, time.Second*2, time.Millisecond*20)
	assert.JSONEq(t, `{"served":0,"active":null,"last":null}`, string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second * 6):
		t.Fatal("status service did not stop")
	}
}
