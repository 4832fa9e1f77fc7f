package chat

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/phamchuong05/mangmaytinh/internal/store"
)

const defaultAvatar = "/images/default-avatar.png"

type fakeAvatars struct {
	stored [][]byte
	names  []string
}

func (f *fakeAvatars) Store(data []byte, filename string) (string, error) {
	f.stored = append(f.stored, data)
	f.names = append(f.names, filename)
	return "/uploads/stored.png", nil
}

func newTestGateway() (*AuthGateway, *store.Memory, *fakeAvatars) {
	st := store.NewMemory()
	av := &fakeAvatars{}
	return NewAuthGateway(testLogger(), st, av, defaultAvatar, bcrypt.MinCost), st, av
}

func TestRegisterHashesPassword(t *testing.T) {
	gw, st, _ := newTestGateway()
	ctx := context.Background()

	require.NoError(t, gw.Register(ctx, RegisterRequest{Username: "alice", Password: "s3cret"}))

	u, err := st.FindUser(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")))
	assert.Equal(t, defaultAvatar, u.AvatarPath)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	gw, st, _ := newTestGateway()
	ctx := context.Background()

	require.NoError(t, gw.Register(ctx, RegisterRequest{Username: "alice", Password: "first"}))
	first, err := st.FindUser(ctx, "alice")
	require.NoError(t, err)

	err = gw.Register(ctx, RegisterRequest{Username: "alice", Password: "second"})
	require.ErrorIs(t, err, ErrUsernameTaken)

	// The original record is untouched.
	after, err := st.FindUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first.PasswordHash, after.PasswordHash)
}

func TestRegisterRequiresCredentials(t *testing.T) {
	gw, _, _ := newTestGateway()
	assert.Error(t, gw.Register(context.Background(), RegisterRequest{Username: "alice"}))
	assert.Error(t, gw.Register(context.Background(), RegisterRequest{Password: "pw"}))
}

func TestRegisterStoresAvatar(t *testing.T) {
	gw, st, av := newTestGateway()
	ctx := context.Background()

	img := []byte{0x89, 'P', 'N', 'G'}
	req := RegisterRequest{
		Username:   "alice",
		Password:   "pw",
		AvatarFile: base64.StdEncoding.EncodeToString(img),
		FileName:   "me.png",
	}
	require.NoError(t, gw.Register(ctx, req))

	require.Len(t, av.stored, 1)
	assert.Equal(t, img, av.stored[0])
	assert.Equal(t, "me.png", av.names[0])

	u, err := st.FindUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/stored.png", u.AvatarPath)
}

func TestRegisterRejectsBadAvatarEncoding(t *testing.T) {
	gw, st, _ := newTestGateway()
	ctx := context.Background()

	err := gw.Register(ctx, RegisterRequest{Username: "alice", Password: "pw", AvatarFile: "not base64!!"})
	require.Error(t, err)
	_, err = st.FindUser(ctx, "alice")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestLoginSucceedsWithCorrectPassword(t *testing.T) {
	gw, _, _ := newTestGateway()
	ctx := context.Background()
	require.NoError(t, gw.Register(ctx, RegisterRequest{Username: "alice", Password: "pw"}))

	u, err := gw.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, defaultAvatar, u.AvatarPath)
}

func TestLoginFailsUniformly(t *testing.T) {
	gw, _, _ := newTestGateway()
	ctx := context.Background()
	require.NoError(t, gw.Register(ctx, RegisterRequest{Username: "alice", Password: "pw"}))

	_, wrongPass := gw.Login(ctx, "alice", "nope")
	_, unknownUser := gw.Login(ctx, "nobody", "pw")

	require.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	require.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	// Same message either way, nothing to enumerate.
	assert.Equal(t, wrongPass.Error(), unknownUser.Error())
}
