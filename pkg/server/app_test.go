package server

import (
	"context"
	"errors"
	"testing"
	"time"

	xhttp "FinBridge/pkg/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closer struct {
	order *[]string
	name  string
	err   error
}

func (c *closer) Close() error {
	*c.order = append(*c.order, c.name)
	return c.err
}

func TestApp_ShutdownClosesResourcesInOrder(t *testing.T) {
	var order []string
	srv := xhttp.NewServer(nil, xhttp.WithHost("127.0.0.1"), xhttp.WithPort(0), xhttp.WithTimeouts(time.Second, time.Second, time.Second))
	app := New(srv, nil,
		&closer{order: &order, name: "publisher"},
		nil,
		&closer{order: &order, name: "locker", err: errors.New("boom")},
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := app.RunContext(ctx)

	require.Error(t, err)
	assert.Equal(t, "boom", err.Error())
	assert.Equal(t, []string{"publisher", "locker"}, order)
}
