package server

import (
	"io/ioutil"
	"net"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iov-one/idm/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestParseFlags(t *testing.T) {
	flags, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, "tcp://localhost:26658", flags.bind)
	assert.False(t, flags.debug)
	assert.Equal(t, "", flags.metrics)

	flags, err = parseFlags([]string{"-bind", "unix:///tmp/idm.sock", "-debug", "-metrics", ":9090"})
	require.NoError(t, err)
	assert.Equal(t, "unix:///tmp/idm.sock", flags.bind)
	assert.True(t, flags.debug)
	assert.Equal(t, ":9090", flags.metrics)
}

func TestMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "idm",
		Name:      "test_total",
		Help:      "Test counter.",
	})
	reg.MustRegister(c)
	c.Inc()

	srv := httptest.NewServer(metricsHandler(reg))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
	body, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "idm_test_total 1"), string(body))

	resp2, err := srv.Client().Get(srv.URL + "/unknown")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, 404, resp2.StatusCode)
}

func TestStartCmdServesUntilTerminated(t *testing.T) {
	dir, err := ioutil.TempDir("", "idm-start")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	socket := filepath.Join(dir, "abci.sock")

	generated := make(chan *Options, 1)
	gen := func(opts *Options) (abci.Application, error) {
		generated <- opts
		return abci.NewBaseApplication(), nil
	}

	done := make(chan error, 1)
	go func() {
		done <- StartCmd(gen, log.NewNopLogger(), dir, []string{"-bind", "unix://" + socket})
	}()

	var conn net.Conn
	for i := 0; i < 100; i++ {
		if conn, err = net.Dial("unix", socket); err == nil {
			break
		}
		select {
		case err := <-done:
			t.Fatalf("start returned before serving: %+v", err)
		case <-time.After(20 * time.Millisecond):
		}
	}
	require.NoError(t, err, "ABCI server is not listening")
	conn.Close()

	select {
	case err := <-done:
		t.Fatalf("start returned while serving: %+v", err)
	case <-time.After(300 * time.Millisecond):
	}
	opts := <-generated
	assert.Equal(t, dir, opts.Home)
	assert.Nil(t, opts.Metrics)
}

func TestStartCmdGeneratorFailure(t *testing.T) {
	gen := func(opts *Options) (abci.Application, error) {
		return nil, errors.Wrap(errors.ErrInput, "broken genesis")
	}
	err := StartCmd(gen, log.NewNopLogger(), "", []string{"-bind", "tcp://127.0.0.1:0"})
	assert.True(t, errors.ErrInput.Is(err))
}
