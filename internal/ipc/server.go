package ipc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"wordgrid/internal/manager"
	"wordgrid/internal/suggest"
	"wordgrid/pkg/types"
)

// Service is the subset of the session manager the transport drives.
type Service interface {
	Words(ctx context.Context, req types.WordRequest) (types.WordResponse, error)
	Refresh(ctx context.Context, req types.WordRequest) (types.WordResponse, error)
	GenerateCache(ctx context.Context, req types.WordRequest) (types.CacheGenerateResponse, error)
	Cache(ctx context.Context, sessionID string) (types.CacheResponse, error)
	ClearUsed(ctx context.Context, sessionID string) error
	ResetBranch(ctx context.Context, req types.ResetBranchRequest) (types.BranchResponse, error)
	Health() types.HealthResponse
}

// Server reads requests from r and writes responses to w, one at a time.
type Server struct {
	svc     Service
	dec     *msgpack.Decoder
	out     *bufio.Writer
	enc     *msgpack.Encoder
	timeout time.Duration
	log     zerolog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithTimeout bounds each request. Zero disables the bound.
func WithTimeout(d time.Duration) Option { return func(s *Server) { s.timeout = d } }

// WithLogger sets the server logger. Logs must not go to the output stream.
func WithLogger(l zerolog.Logger) Option { return func(s *Server) { s.log = l } }

// NewServer creates a transport over r and w.
func NewServer(svc Service, r io.Reader, w io.Writer, opts ...Option) *Server {
	out := bufio.NewWriter(w)
	s := &Server{
		svc: svc,
		dec: msgpack.NewDecoder(bufio.NewReader(r)),
		out: out,
		enc: msgpack.NewEncoder(out),
		log: zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Serve answers requests until the input ends, ctx is cancelled or the
// stream becomes unreadable. A clean end of input returns nil.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Debug().Msg("ipc server starting")
	if err := s.send(Response{OK: true, Status: "ready"}); err != nil {
		return err
	}
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		var raw msgpack.RawMessage
		if err := s.dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read request: %w", err)
		}
		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.log.Error().Err(err).Msg("unmarshal request")
			if err := s.send(errorResponse("", "invalid request frame", 400)); err != nil {
				return err
			}
			continue
		}
		if err := s.send(s.handle(ctx, req)); err != nil {
			return err
		}
	}
}

func (s *Server) send(resp Response) error {
	if err := s.enc.Encode(resp); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return s.out.Flush()
}

func (s *Server) handle(ctx context.Context, req Request) Response {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	start := time.Now()
	resp, err := s.dispatch(ctx, req)
	if err != nil {
		s.log.Error().Err(err).Str("op", req.Op).Str("id", req.ID).Msg("request failed")
		return errorResponse(req.ID, err.Error(), codeFor(err))
	}
	resp.ID = req.ID
	resp.OK = true
	s.log.Debug().Str("op", req.Op).Str("id", req.ID).Dur("dur", time.Since(start)).Int("words", len(resp.Words)).Msg("request end")
	return resp
}

func (s *Server) dispatch(ctx context.Context, req Request) (Response, error) {
	switch req.Op {
	case OpWords, OpRefresh:
		fn := s.svc.Words
		if req.Op == OpRefresh {
			fn = s.svc.Refresh
		}
		res, err := fn(ctx, req.wordRequest())
		if err != nil {
			return Response{}, err
		}
		return Response{
			SessionID: res.SessionID,
			Words:     res.Words,
			Cached:    res.CachedWords,
			TimeTaken: res.DurationMS,
			FromCache: res.FromCache,
		}, nil
	case OpGenerateCache:
		res, err := s.svc.GenerateCache(ctx, req.wordRequest())
		if err != nil {
			return Response{}, err
		}
		return Response{SessionID: res.SessionID, Cached: res.CachedWords, Status: res.Status}, nil
	case OpCache:
		res, err := s.svc.Cache(ctx, req.SessionID)
		if err != nil {
			return Response{}, err
		}
		return Response{SessionID: res.SessionID, Cached: res.CachedWords, Used: res.UsedWords}, nil
	case OpClearUsed:
		if err := s.svc.ClearUsed(ctx, req.SessionID); err != nil {
			return Response{}, err
		}
		id := req.SessionID
		if id == "" {
			id = manager.DefaultSessionID
		}
		return Response{SessionID: id, Status: "cleared"}, nil
	case OpResetBranch:
		if strings.TrimSpace(req.FirstWord) == "" {
			return Response{}, suggest.ErrInvalidRequest("first_word is required")
		}
		res, err := s.svc.ResetBranch(ctx, types.ResetBranchRequest{WordRequest: req.wordRequest(), FirstWord: req.FirstWord})
		if err != nil {
			return Response{}, err
		}
		return Response{SessionID: res.SessionID, Words: res.Words}, nil
	case OpHealth:
		h := s.svc.Health()
		return Response{Status: h.Status, ModelLoaded: h.ModelLoaded}, nil
	default:
		return Response{}, suggest.ErrInvalidRequest("unknown op: " + req.Op)
	}
}

func errorResponse(id, msg string, code int) Response {
	return Response{ID: id, Error: msg, Code: code}
}

// codeFor mirrors the HTTP status mapping so clients can share handling.
func codeFor(err error) int {
	switch {
	case manager.IsSessionNotFound(err):
		return 404
	case manager.IsTooBusy(err):
		return 429
	case errors.Is(err, suggest.ErrSessionClosed):
		return 410
	case suggest.IsInvalidRequest(err):
		return 400
	}
	return 500
}
