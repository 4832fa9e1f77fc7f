package chat

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/phamchuong05/mangmaytinh/internal/store"
)

var (
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords so the response never confirms which accounts exist.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// errRegistration hides storage and decoding detail from the client.
	errRegistration = errors.New("registration failed")
)

// AuthStore is the credential persistence collaborator.
type AuthStore interface {
	FindUser(ctx context.Context, username string) (store.User, error)
	CreateUser(ctx context.Context, u store.User) error
}

// AvatarStore persists an uploaded avatar and returns its public URL path.
type AvatarStore interface {
	Store(data []byte, filename string) (string, error)
}

// AuthGateway validates credentials against the AuthStore. It runs on the
// calling connection's goroutine, keeping bcrypt off the coordinator loop.
type AuthGateway struct {
	log           *slog.Logger
	store         AuthStore
	avatars       AvatarStore
	defaultAvatar string
	cost          int
}

func NewAuthGateway(logger *slog.Logger, st AuthStore, avatars AvatarStore, defaultAvatar string, bcryptCost int) *AuthGateway {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthGateway{
		log:           logger,
		store:         st,
		avatars:       avatars,
		defaultAvatar: defaultAvatar,
		cost:          bcryptCost,
	}
}

// Register creates a new user record. The password is hashed before it goes
// anywhere near storage; storage failures come back as a generic error with
// the detail logged server-side only.
func (g *AuthGateway) Register(ctx context.Context, req RegisterRequest) error {
	if req.Username == "" || req.Password == "" {
		return errors.New("username and password are required")
	}

	if _, err := g.store.FindUser(ctx, req.Username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		g.log.Error("auth.register.lookup", "user", req.Username, "err", err)
		return errRegistration
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), g.cost)
	if err != nil {
		g.log.Error("auth.register.hash", "err", err)
		return errRegistration
	}

	avatar := g.defaultAvatar
	if req.AvatarFile != "" {
		raw, err := base64.StdEncoding.DecodeString(req.AvatarFile)
		if err != nil {
			g.log.Debug("auth.register.avatar_decode", "user", req.Username, "err", err)
			return errRegistration
		}
		avatar, err = g.avatars.Store(raw, req.FileName)
		if err != nil {
			g.log.Error("auth.register.avatar_store", "user", req.Username, "err", err)
			return errRegistration
		}
	}

	err = g.store.CreateUser(ctx, store.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		AvatarPath:   avatar,
	})
	if errors.Is(err, store.ErrExists) {
		return ErrUsernameTaken
	}
	if err != nil {
		g.log.Error("auth.register.create", "user", req.Username, "err", err)
		return errRegistration
	}

	g.log.Info("auth.registered", "user", req.Username)
	return nil
}

// Login verifies the credentials and returns the stored record. Unknown user
// and bad password fail identically.
func (g *AuthGateway) Login(ctx context.Context, username, password string) (store.User, error) {
	u, err := g.store.FindUser(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			g.log.Error("auth.login.lookup", "user", username, "err", err)
		}
		return store.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return store.User{}, ErrInvalidCredentials
	}
	return u, nil
}
