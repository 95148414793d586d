package bridge

import (
	"context"

	"github.com/dashlens/dashlens/internal/session"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client is a typed client for the bridge service.
type Client struct {
	cc   grpc.ClientConnInterface
	conn *grpc.ClientConn
}

// NewClient wraps an existing connection. The caller keeps ownership of cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Dial connects to a bridge at target over a plaintext local connection.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	base := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}

	conn, err := grpc.NewClient(target, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: conn, conn: conn}, nil
}

// Close releases the connection opened by Dial.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts ...grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	return c.cc.Invoke(ctx, fullMethod(method), in, out, opts...)
}

func (c *Client) HashPassword(ctx context.Context, password string) (string, error) {
	out := &HashPasswordResponse{}
	if err := c.invoke(ctx, methodHashPassword, &HashPasswordRequest{Password: password}, out); err != nil {
		return "", err
	}
	return out.Hash, nil
}

func (c *Client) VerifyPassword(ctx context.Context, password, hash string) (bool, error) {
	out := &VerifyPasswordResponse{}
	if err := c.invoke(ctx, methodVerifyPassword, &VerifyPasswordRequest{Password: password, Hash: hash}, out); err != nil {
		return false, err
	}
	return out.Valid, nil
}

func (c *Client) SetSession(ctx context.Context, s session.AuthSession) error {
	return c.invoke(ctx, methodSetSession, &SetSessionRequest{Session: s}, &emptypb.Empty{})
}

func (c *Client) ClearSession(ctx context.Context) error {
	return c.invoke(ctx, methodClearSession, &emptypb.Empty{}, &emptypb.Empty{})
}

// GetCurrentUser returns nil when nobody is signed in.
func (c *Client) GetCurrentUser(ctx context.Context) (*session.AuthSession, error) {
	out := &GetCurrentUserResponse{}
	if err := c.invoke(ctx, methodGetCurrentUser, &emptypb.Empty{}, out); err != nil {
		return nil, err
	}
	return out.Session, nil
}

func (c *Client) CheckAuthStatus(ctx context.Context) (bool, error) {
	out := &wrapperspb.BoolValue{}
	if err := c.invoke(ctx, methodCheckAuthStatus, &emptypb.Empty{}, out); err != nil {
		return false, err
	}
	return out.GetValue(), nil
}

func (c *Client) Execute(ctx context.Context, query string, values ...any) (*ExecuteResponse, error) {
	out := &ExecuteResponse{}
	if err := c.invoke(ctx, methodExecute, &ExecuteRequest{Query: query, Values: values}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Select(ctx context.Context, query string, values ...any) ([]map[string]any, error) {
	out := &SelectResponse{}
	if err := c.invoke(ctx, methodSelect, &SelectRequest{Query: query, Values: values}, out); err != nil {
		return nil, err
	}
	return out.Rows, nil
}
