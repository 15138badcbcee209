// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diffeo/go-payroll/memory"
	"github.com/diffeo/go-payroll/payroll"
	"github.com/diffeo/go-payroll/payroll/payrolltest"
	"github.com/diffeo/go-payroll/restclient"
	"github.com/diffeo/go-payroll/restserver"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// Suite runs the generic tests with the REST client talking to the
// REST server, which points at an in-memory backend.
type Suite struct {
	payrolltest.Suite
	server *httptest.Server
}

func (s *Suite) SetupSuite() {
	s.Suite.SetupSuite()
	s.server = httptest.NewServer(restserver.NewRouter(memory.New()))
	repo, err := restclient.NewWithClient(context.Background(), s.server.URL, s.server.Client())
	s.Require().NoError(err)
	s.Repository = repo
}

func (s *Suite) TearDownSuite() {
	s.server.Close()
}

func TestRepository(t *testing.T) {
	suite.Run(t, &Suite{})
}

func TestLastID(t *testing.T) {
	server := httptest.NewServer(restserver.NewRouter(memory.New()))
	defer server.Close()
	repo, err := restclient.New(server.URL)
	require.NoError(t, err)
	payrolltest.CheckLastID(t, repo)
}

func TestEmptyURL(t *testing.T) {
	_, err := restclient.New("")
	assert.Error(t, err)
}

func TestNotAPayrollServer(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()
	_, err := restclient.New(server.URL)
	if assert.Error(t, err) {
		assert.IsType(t, restclient.ErrorHTTP{}, err)
		assert.Equal(t, http.StatusNotFound, err.(restclient.ErrorHTTP).HTTPStatus())
	}
}

func TestErrorBodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(strings.Repeat("x", 100000)))
	}))
	defer server.Close()
	_, err := restclient.New(server.URL)
	if assert.IsType(t, restclient.ErrorHTTP{}, err) {
		httpErr := err.(restclient.ErrorHTTP)
		assert.Equal(t, http.StatusBadGateway, httpErr.HTTPStatus())
		assert.Len(t, httpErr.Body, 64*1024)
	}
}

// TestSubpath checks that the client follows links rather than
// assuming the URL layout.
func TestSubpath(t *testing.T) {
	r := mux.NewRouter()
	restserver.PopulateRouter(r.PathPrefix("/payroll").Subrouter(), memory.New(), nil)
	server := httptest.NewServer(r)
	defer server.Close()

	repo, err := restclient.New(server.URL + "/payroll/")
	require.NoError(t, err)
	ctx := context.Background()
	e, err := repo.Save(ctx, payroll.NewEmployee("Samwise Gamgee", "gardener"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), e.ID)

	_, err = repo.FindByID(ctx, 2)
	assert.Equal(t, payroll.ErrNoSuchEmployee{ID: 2}, err)
}

func TestCancelled(t *testing.T) {
	server := httptest.NewServer(restserver.NewRouter(memory.New()))
	defer server.Close()
	repo, err := restclient.New(server.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = repo.FindAll(ctx)
	assert.Error(t, err)
}
