package views

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/lostfound/internal/client"
	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/session"
)

func holderWith(t *testing.T, s session.Session) *session.Holder {
	t.Helper()
	h, err := session.NewHolder(nil)
	require.NoError(t, err)
	require.NoError(t, h.Set(s))
	return h
}

var adminSession = session.Session{Token: "tok", User: session.User{ID: "u1", Name: "Ada", Role: session.RoleAdmin}}

func TestAdminGuard(t *testing.T) {
	tests := []struct {
		name string
		s    session.Session
		want Redirect
	}{
		{"signed out", session.Session{}, RedirectLogin},
		{"user", session.Session{Token: "t", User: session.User{Role: session.RoleUser}}, RedirectBrowse},
		{"admin", adminSession, RedirectNone},
		{"role without token", session.Session{User: session.User{Role: session.RoleAdmin}}, RedirectLogin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, AdminGuard(tt.s))
		})
	}
}

// Opening the console without an admin session sends no request: the mock
// has no expectations, so any call fails the test.
func TestConsole_RedirectsWithoutCalls(t *testing.T) {
	for _, tc := range []struct {
		s    session.Session
		want Redirect
	}{
		{session.Session{}, RedirectLogin},
		{session.Session{Token: "t", User: session.User{Role: session.RoleUser}}, RedirectBrowse},
	} {
		ctrl := gomock.NewController(t)
		c := NewConsole(NewMockGateway(ctrl), holderWith(t, tc.s))
		ctx := context.Background()

		for _, tab := range Tabs {
			to, err := c.Open(ctx, tab)
			require.Error(t, err)
			require.Equal(t, tc.want, to)
		}
		require.Error(t, c.Approve(ctx, "x"))
		require.Error(t, c.Filter(ctx, client.Query{}))
		_, err := c.Overview(ctx)
		require.Equal(t, tc.want, RedirectFor(err))
		ctrl.Finish()
	}
}

func TestConsole_LogoutMidSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := NewMockGateway(ctrl)
	holder := holderWith(t, adminSession)
	c := NewConsole(gw, holder)

	gw.EXPECT().ListAdminPending(gomock.Any(), client.Query{Page: 1}).Return(itemPage(1, 1), nil)
	to, err := c.Open(context.Background(), TabPending)
	require.NoError(t, err)
	require.Equal(t, RedirectNone, to)

	require.NoError(t, holder.Clear())
	require.Equal(t, RedirectLogin, RedirectFor(c.Refresh(context.Background())))
}

func TestConsole_Tabs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := NewMockGateway(ctrl)
	c := NewConsole(gw, holderWith(t, adminSession))
	ctx := context.Background()

	gomock.InOrder(
		gw.EXPECT().ListAdminApproved(gomock.Any(), client.Query{Page: 1}).Return(itemPage(1, 1, item("a", "approved")), nil),
		gw.EXPECT().ListAdminApproved(gomock.Any(), client.Query{Search: "wallet", Page: 1}).Return(itemPage(1, 1), nil),
		gw.EXPECT().DeleteItem(gomock.Any(), "a").Return(nil),
		gw.EXPECT().ListAdminApproved(gomock.Any(), client.Query{Search: "wallet", Page: 1}).Return(itemPage(1, 1), nil),
		gw.EXPECT().ListUsers(gomock.Any(), "").Return([]model.User{{ID: "u1"}, {ID: "u2"}}, nil),
		gw.EXPECT().ListUsers(gomock.Any(), "bo").Return([]model.User{{ID: "u2"}}, nil),
		gw.EXPECT().ListAdminClaims(gomock.Any()).Return(&client.ClaimsOverview{}, nil),
	)

	_, err := c.Open(ctx, TabApproved)
	require.NoError(t, err)
	require.Equal(t, TabApproved, c.Active())
	require.NoError(t, c.Filter(ctx, client.Query{Search: "wallet"}))
	require.NoError(t, c.Delete(ctx, "a"))

	_, err = c.Open(ctx, TabUsers)
	require.NoError(t, err)
	require.Len(t, c.Users().State().Users, 2)
	require.NoError(t, c.Filter(ctx, client.Query{Search: "bo"}))
	require.Len(t, c.Users().State().Users, 1)
	require.Error(t, c.Approve(ctx, "a"), "users tab has no item actions")

	_, err = c.Open(ctx, TabClaims)
	require.NoError(t, err)
	require.Empty(t, c.Board().State().Items)

	_, err = c.Open(ctx, Tab("bogus"))
	require.Error(t, err)
}

func TestConsole_AuthErrorRedirects(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := NewMockGateway(ctrl)
	c := NewConsole(gw, holderWith(t, adminSession))

	expired := &client.Error{Kind: client.KindAuth, Status: 401, Message: "invalid token"}
	gw.EXPECT().ListAdminPending(gomock.Any(), gomock.Any()).Return(nil, expired)

	to, err := c.Open(context.Background(), TabPending)
	require.ErrorIs(t, err, expired)
	require.Equal(t, RedirectLogin, to)
}

func TestConsole_Overview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := NewMockGateway(ctrl)
	c := NewConsole(gw, holderWith(t, adminSession))

	gw.EXPECT().ListAdminPending(gomock.Any(), client.Query{Page: 1}).Return(&model.ItemPage{Total: 7, Pages: 1, Page: 1}, nil)
	gw.EXPECT().ListAdminClaims(gomock.Any()).Return(&client.ClaimsOverview{Pending: 3}, nil)

	o, err := c.Overview(context.Background())
	require.NoError(t, err)
	require.Equal(t, Overview{PendingItems: 7, PendingClaims: 3}, o)
}
