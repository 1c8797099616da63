package integrationtests

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"auction-bidder/internal/auth"
	"auction-bidder/internal/backend"
	"auction-bidder/internal/bidding"
	"auction-bidder/internal/bidlock"
	model "auction-bidder/internal/models"
	"auction-bidder/internal/repository"
	"auction-bidder/internal/server"
	"auction-bidder/internal/session"
	"auction-bidder/internal/store"
	handler "auction-bidder/services/devserver/handler"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// TestEnv wires the full bidder client stack against a dev auction backend
// served over a real HTTP listener.
type TestEnv struct {
	Repo       *repository.MemoryRepo
	Server     *httptest.Server
	API        *backend.Client
	Session    *session.FileStore
	Store      *store.AuctionStore
	Locks      *bidlock.Registry
	Controller *bidding.Controller
}

// SetupTestEnv starts a dev backend seeded with items and builds a client
// stack pointed at it.
func SetupTestEnv(t *testing.T, items ...model.AuctionItem) *TestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepo()
	for _, item := range items {
		repo.AddItem(item)
	}

	authSvc := auth.NewService(repo, "integration-secret", time.Hour)
	h := handler.NewAuctionHandler(repo, authSvc)
	router := server.SetupRouter(h, authSvc)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	api := backend.NewClient(srv.URL, 2*time.Second)
	sess := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	st := store.NewAuctionStore(api, sess)
	locks := bidlock.NewRegistry()
	ctrl := bidding.NewController(st, locks, sess, api, nil)

	return &TestEnv{
		Repo:       repo,
		Server:     srv,
		API:        api,
		Session:    sess,
		Store:      st,
		Locks:      locks,
		Controller: ctrl,
	}
}

// SignupAndLogin registers a fresh account through the backend and persists
// the resulting session, returning the signed-in user.
func (e *TestEnv) SignupAndLogin(t *testing.T, name, email, password string) model.User {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, e.API.Signup(ctx, name, email, password))

	token, user, err := e.API.Login(ctx, email, password)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NoError(t, e.Session.SetSession(token, user))
	return user
}

// ActiveItem builds a seed item without bid history.
func ActiveItem(id, title string, startingPrice float64) model.AuctionItem {
	return model.AuctionItem{
		ID:            id,
		Title:         title,
		Description:   title + " description",
		StartingPrice: startingPrice,
		Status:        model.StatusActive,
	}
}
