package store

import (
	"context"
	"errors"
	"testing"

	"auction-bidder/internal/auctionerrors"
	"auction-bidder/internal/backend"
	"auction-bidder/internal/models"
	"auction-bidder/internal/session"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func testItems() []models.AuctionItem {
	return []models.AuctionItem{
		{ID: "item1", Title: "title1", StartingPrice: 100, Status: models.StatusActive},
		{ID: "item2", Title: "title2", StartingPrice: 200, Status: models.StatusClosed},
	}
}

func TestAuctionStore_RefreshReplacesSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := backend.NewMockAPI(ctrl)
	sess := session.NewMockAccessor(ctrl)
	store := NewAuctionStore(api, sess)

	sess.EXPECT().Credential().Return("token-abc", true).Times(2)

	first := testItems()
	api.EXPECT().FetchItems(gomock.Any(), "token-abc").Return(first, nil)
	require.NoError(t, store.Refresh(context.Background()))
	require.Equal(t, first, store.Items())
	require.NoError(t, store.LastError())

	// A later refresh fully supersedes the previous snapshot, no merge.
	amount := 180.0
	second := []models.AuctionItem{
		{ID: "item3", Title: "title3", StartingPrice: 150, LastBidAmount: &amount, Status: models.StatusActive},
	}
	api.EXPECT().FetchItems(gomock.Any(), "token-abc").Return(second, nil)
	require.NoError(t, store.Refresh(context.Background()))
	require.Equal(t, second, store.Items())

	item, ok := store.Item("item3")
	require.True(t, ok)
	require.Equal(t, 180.0, item.CurrentHighest())
	_, ok = store.Item("item1")
	require.False(t, ok, "replaced snapshot must not retain old items")
}

func TestAuctionStore_RefreshErrors(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(api *backend.MockAPI, sess *session.MockAccessor)
		wantErr   error
	}{
		{
			name: "auth_missing_no_network_call",
			mockSetup: func(api *backend.MockAPI, sess *session.MockAccessor) {
				sess.EXPECT().Credential().Return("", false)
				// No FetchItems expectation: the refresh must abort locally.
			},
			wantErr: auctionerrors.ErrAuthMissing,
		},
		{
			name: "auth_expired",
			mockSetup: func(api *backend.MockAPI, sess *session.MockAccessor) {
				sess.EXPECT().Credential().Return("stale", true)
				api.EXPECT().FetchItems(gomock.Any(), "stale").Return(nil, auctionerrors.ErrAuthExpired)
			},
			wantErr: auctionerrors.ErrAuthExpired,
		},
		{
			name: "network_unavailable",
			mockSetup: func(api *backend.MockAPI, sess *session.MockAccessor) {
				sess.EXPECT().Credential().Return("token-abc", true)
				api.EXPECT().FetchItems(gomock.Any(), "token-abc").Return(nil, auctionerrors.ErrNetworkUnavailable)
			},
			wantErr: auctionerrors.ErrNetworkUnavailable,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			api := backend.NewMockAPI(ctrl)
			sess := session.NewMockAccessor(ctrl)
			store := NewAuctionStore(api, sess)

			// Seed a snapshot so we can observe that errors leave it alone.
			seeded := testItems()
			sess.EXPECT().Credential().Return("token-abc", true)
			api.EXPECT().FetchItems(gomock.Any(), "token-abc").Return(seeded, nil)
			require.NoError(t, store.Refresh(context.Background()))

			tc.mockSetup(api, sess)

			err := store.Refresh(context.Background())
			require.ErrorIs(t, err, tc.wantErr)
			require.Equal(t, seeded, store.Items(), "snapshot must be unchanged on failed refresh")
			require.ErrorIs(t, store.LastError(), tc.wantErr)
			require.False(t, store.Loading(), "loading flag must clear on every exit path")
		})
	}
}

func TestAuctionStore_ServerErrorKeepsSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := backend.NewMockAPI(ctrl)
	sess := session.NewMockAccessor(ctrl)
	store := NewAuctionStore(api, sess)

	sess.EXPECT().Credential().Return("token-abc", true).Times(2)
	seeded := testItems()
	api.EXPECT().FetchItems(gomock.Any(), "token-abc").Return(seeded, nil)
	require.NoError(t, store.Refresh(context.Background()))

	srvErr := &auctionerrors.ServerError{Status: 500, Message: "database unavailable"}
	api.EXPECT().FetchItems(gomock.Any(), "token-abc").Return(nil, srvErr)

	err := store.Refresh(context.Background())
	var got *auctionerrors.ServerError
	require.True(t, errors.As(err, &got))
	require.Equal(t, "database unavailable", got.Message)
	require.Equal(t, seeded, store.Items())
}

func TestAuctionStore_LoadingFlagDuringRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := backend.NewMockAPI(ctrl)
	sess := session.NewMockAccessor(ctrl)
	store := NewAuctionStore(api, sess)

	sess.EXPECT().Credential().Return("token-abc", true)
	api.EXPECT().FetchItems(gomock.Any(), "token-abc").DoAndReturn(
		func(ctx context.Context, token string) ([]models.AuctionItem, error) {
			require.True(t, store.Loading(), "loading must be set while the fetch is in flight")
			return testItems(), nil
		})

	require.NoError(t, store.Refresh(context.Background()))
	require.False(t, store.Loading())
}

func TestAuctionStore_ItemsReturnsCopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := backend.NewMockAPI(ctrl)
	sess := session.NewMockAccessor(ctrl)
	store := NewAuctionStore(api, sess)

	sess.EXPECT().Credential().Return("token-abc", true)
	api.EXPECT().FetchItems(gomock.Any(), "token-abc").Return(testItems(), nil)
	require.NoError(t, store.Refresh(context.Background()))

	items := store.Items()
	items[0].Title = "mutated"

	fresh := store.Items()
	require.Equal(t, "title1", fresh[0].Title, "consumers must not be able to mutate the snapshot")
}

func TestAuctionStore_LastSettledRefreshWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := backend.NewMockAPI(ctrl)
	sess := session.NewMockAccessor(ctrl)
	store := NewAuctionStore(api, sess)

	// Two refreshes settle out of issue order: the one settling last wins,
	// even if its data is older. This is the documented behavior, not a bug.
	stale := []models.AuctionItem{{ID: "item1", Title: "stale", StartingPrice: 100, Status: models.StatusActive}}
	newer := []models.AuctionItem{{ID: "item1", Title: "newer", StartingPrice: 100, Status: models.StatusActive}}

	sess.EXPECT().Credential().Return("token-abc", true).Times(2)
	gomock.InOrder(
		api.EXPECT().FetchItems(gomock.Any(), "token-abc").Return(newer, nil),
		api.EXPECT().FetchItems(gomock.Any(), "token-abc").Return(stale, nil),
	)

	require.NoError(t, store.Refresh(context.Background()))
	require.NoError(t, store.Refresh(context.Background()))

	item, ok := store.Item("item1")
	require.True(t, ok)
	require.Equal(t, "stale", item.Title)
}
