package bridge

import (
	"context"
	"errors"

	"github.com/dashlens/dashlens/internal/credential"
	"github.com/dashlens/dashlens/internal/dbx"
	"github.com/dashlens/dashlens/internal/logging"
	"github.com/dashlens/dashlens/internal/session"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// PasswordHasher is satisfied by *credential.Hasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// SessionStore is satisfied by *session.Store.
type SessionStore interface {
	Set(s session.AuthSession) error
	Clear() error
	Current() (*session.AuthSession, error)
	IsAuthenticated() (bool, error)
}

// Service implements BridgeServer on top of the credential package, a
// session store and the local database.
type Service struct {
	hasher   PasswordHasher
	sessions SessionStore
	db       dbx.DBTX
	logger   logging.Logger
}

var _ BridgeServer = (*Service)(nil)

// NewService builds a Service. A nil hasher means credential defaults.
// db may be nil, in which case Execute and Select fail with Unavailable.
func NewService(h PasswordHasher, sessions SessionStore, db dbx.DBTX, l logging.Logger) *Service {
	if h == nil {
		h = credential.NewHasher(credential.DefaultParams)
	}
	return &Service{
		hasher:   h,
		sessions: sessions,
		db:       db,
		logger:   l.With("module", "bridge"),
	}
}

func sessionError(err error) error {
	return status.Errorf(codes.Internal, "failed to access session: %v", err)
}

func (s *Service) HashPassword(ctx context.Context, req *HashPasswordRequest) (*HashPasswordResponse, error) {
	h, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error(ctx, "hash password", "error", err)
		if errors.Is(err, credential.ErrHashing) {
			return nil, status.Error(codes.Internal, err.Error())
		}
		return nil, status.Errorf(codes.Internal, "%v: %v", credential.ErrHashing, err)
	}
	return &HashPasswordResponse{Hash: h}, nil
}

// VerifyPassword answers valid=false both for a wrong password and for a
// malformed stored hash. The latter is logged so corruption stays visible.
func (s *Service) VerifyPassword(ctx context.Context, req *VerifyPasswordRequest) (*VerifyPasswordResponse, error) {
	ok, err := s.hasher.Verify(req.Password, req.Hash)
	if err != nil {
		if errors.Is(err, credential.ErrHashParse) {
			s.logger.Warn(ctx, "stored hash is malformed", "error", err)
			return &VerifyPasswordResponse{Valid: false}, nil
		}
		s.logger.Error(ctx, "verify password", "error", err)
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &VerifyPasswordResponse{Valid: ok}, nil
}

func (s *Service) SetSession(ctx context.Context, req *SetSessionRequest) (*emptypb.Empty, error) {
	if err := s.sessions.Set(req.Session); err != nil {
		s.logger.Error(ctx, "set session", "error", err)
		return nil, sessionError(err)
	}
	s.logger.Info(ctx, "session set", "user_id", req.Session.UserID, "username", req.Session.Username)
	return &emptypb.Empty{}, nil
}

func (s *Service) ClearSession(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	if err := s.sessions.Clear(); err != nil {
		s.logger.Error(ctx, "clear session", "error", err)
		return nil, sessionError(err)
	}
	s.logger.Info(ctx, "session cleared")
	return &emptypb.Empty{}, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, _ *emptypb.Empty) (*GetCurrentUserResponse, error) {
	cur, err := s.sessions.Current()
	if err != nil {
		s.logger.Error(ctx, "get current user", "error", err)
		return nil, sessionError(err)
	}
	return &GetCurrentUserResponse{Session: cur}, nil
}

func (s *Service) CheckAuthStatus(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	ok, err := s.sessions.IsAuthenticated()
	if err != nil {
		s.logger.Error(ctx, "check auth status", "error", err)
		return nil, sessionError(err)
	}
	return wrapperspb.Bool(ok), nil
}
