package bridge

import (
	"context"
	"math"
	"strings"

	"github.com/dashlens/dashlens/internal/dbx"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// bindArgs turns JSON-decoded values into driver arguments. Whole numbers
// arrive as float64 and are bound as int64 so INTEGER columns and
// comparisons behave as the caller expects.
func bindArgs(values []any) []any {
	args := make([]any, len(values))
	for i, v := range values {
		if f, ok := v.(float64); ok && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			args[i] = int64(f)
			continue
		}
		args[i] = v
	}
	return args
}

func (s *Service) checkQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return status.Error(codes.InvalidArgument, "query must not be empty")
	}
	if s.db == nil {
		return status.Error(codes.Unavailable, "database is not open")
	}
	return nil
}

func (s *Service) Execute(ctx context.Context, req *ExecuteRequest) (*ExecuteResponse, error) {
	if err := s.checkQuery(req.Query); err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx, req.Query, bindArgs(req.Values)...)
	if err != nil {
		s.logger.Error(ctx, "execute", "error", err)
		return nil, status.Errorf(codes.Internal, "database error: %v", err)
	}

	out := &ExecuteResponse{}
	out.RowsAffected, _ = res.RowsAffected()
	out.LastInsertID, _ = res.LastInsertId()

	s.logger.Debug(ctx, "execute", "rows_affected", out.RowsAffected)
	return out, nil
}

func (s *Service) Select(ctx context.Context, req *SelectRequest) (*SelectResponse, error) {
	if err := s.checkQuery(req.Query); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, req.Query, bindArgs(req.Values)...)
	if err != nil {
		s.logger.Error(ctx, "select", "error", err)
		return nil, status.Errorf(codes.Internal, "database error: %v", err)
	}

	result, err := dbx.ScanMaps(rows)
	if err != nil {
		s.logger.Error(ctx, "select", "error", err)
		return nil, status.Errorf(codes.Internal, "database error: %v", err)
	}
	return &SelectResponse{Rows: result}, nil
}
