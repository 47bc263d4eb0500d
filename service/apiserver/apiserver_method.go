package apiserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo"
	"github.com/meverselabs/amm/common/rlog"
	"github.com/pkg/errors"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type reqData struct {
	req   *JRPCRequest
	resCh chan *JRPCResponse
}

func decodeRequest(data []byte) (*JRPCRequest, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var req JRPCRequest
	if err := dec.Decode(&req); err != nil {
		return nil, errors.WithStack(err)
	}
	return &req, nil
}

func (s *APIServer) dispatch(req *JRPCRequest) *JRPCResponse {
	resCh := make(chan *JRPCResponse, 1)
	select {
	case s.reqCh <- &reqData{req: req, resCh: resCh}:
		return <-resCh
	case <-s.quit:
		return &JRPCResponse{
			JSONRPC: req.JSONRPC,
			ID:      req.ID,
			Error:   toJRPCError(ErrServerClosed),
		}
	}
}

func (s *APIServer) serveHTTP(c echo.Context) error {
	defer c.Request().Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(c.Request().Body); err != nil {
		return err
	}
	req, err := decodeRequest(buf.Bytes())
	if err != nil {
		return c.JSON(http.StatusOK, &JRPCResponse{
			JSONRPC: "2.0",
			Error:   &JRPCError{Code: CodeParseError, Message: err.Error()},
		})
	}
	res := s.dispatch(req)
	if res == nil {
		return c.NoContent(http.StatusOK)
	}
	return c.JSON(http.StatusOK, res)
}

// serveWebsocket owns the hijacked connection, failures are logged here since echo can no longer respond
func (s *APIServer) serveWebsocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response().Writer, c.Request(), nil)
	if err != nil {
		rlog.Debugw("websocket upgrade failed", "err", err)
		return nil
	}
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				rlog.Debugw("websocket read failed", "err", err)
			}
			return nil
		}
		var res *JRPCResponse
		if req, err := decodeRequest(data); err != nil {
			res = &JRPCResponse{
				JSONRPC: "2.0",
				Error:   &JRPCError{Code: CodeParseError, Message: err.Error()},
			}
		} else {
			res = s.dispatch(req)
		}
		if res == nil {
			continue
		}
		if err := conn.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
			rlog.Debugw("websocket write failed", "err", err)
			return nil
		}
		if err := conn.WriteJSON(res); err != nil {
			rlog.Debugw("websocket write failed", "err", err)
			return nil
		}
	}
}

// JRPC provides the json rpc feature as a SubName.FunctionName methods
func (s *APIServer) JRPC(SubName string) (*JRPCSub, error) {
	s.Lock()
	defer s.Unlock()

	if _, has := s.subMap[SubName]; has {
		return nil, errors.WithStack(ErrExistSubName)
	}
	js := NewJRPCSub()
	s.subMap[SubName] = js
	return js, nil
}

func (s *APIServer) lookup(method string) (Handler, error) {
	ls := strings.SplitN(method, ".", 2)
	if len(ls) != 2 {
		return nil, errors.Wrap(ErrInvalidMethod, method)
	}
	s.Lock()
	sub, has := s.subMap[ls[0]]
	s.Unlock()
	if !has {
		return nil, errors.Wrap(ErrInvalidMethod, method)
	}
	fn, has := sub.get(ls[1])
	if !has {
		return nil, errors.Wrap(ErrInvalidMethod, method)
	}
	return fn, nil
}

// handleJRPC runs the method, a request without id is a notification and gets no response
func (s *APIServer) handleJRPC(req *JRPCRequest) *JRPCResponse {
	begin := time.Now()

	var ret interface{}
	fn, err := s.lookup(req.Method)
	label := req.Method
	if err != nil {
		label = "unknown"
	} else {
		ret, err = fn(req.ID, NewArgument(req.Params))
	}
	s.duration.WithLabelValues(label).Observe(time.Since(begin).Seconds())

	res := &JRPCResponse{
		JSONRPC: req.JSONRPC,
		ID:      req.ID,
	}
	if err != nil {
		s.requests.WithLabelValues(label, "error").Inc()
		rlog.Debugw("jrpc failed", "method", req.Method, "err", err)
		res.Error = toJRPCError(err)
	} else {
		s.requests.WithLabelValues(label, "ok").Inc()
		res.Result = ret
	}
	if req.ID == nil {
		return nil
	}
	return res
}
