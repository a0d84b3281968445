// This is a copy from gorilla's jsonrpc2 using msgpack
//
// Copyright 2009 The Go Authors. All rights reserved.
// Copyright 2012 The Gorilla Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msgpack2_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	rpc "github.com/alpacahq/rpc/rpc2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	msgpack "github.com/vmihailenco/msgpack"

	"github.com/alpacahq/bizcal/utils/rpc/msgpack2"
)

var errTooFar = errors.New("too far")

type StepRequest struct {
	Ordinal int32 `msgpack:"ordinal"`
	N       int32 `msgpack:"n"`
}

type StepResponse struct {
	Ordinal *int32 `msgpack:"ordinal"`
}

// StepService walks a calendar where every day is a business day.
type StepService struct{}

const defaultOrdinal int32 = 9999

func (s *StepService) Step(_ *http.Request, req *StepRequest, res *StepResponse) error {
	if req.Ordinal == 0 && req.N == 0 {
		// sentinel for requests without params
		v := defaultOrdinal
		res.Ordinal = &v
		return nil
	}
	if req.N > 1000 || req.N < -1000 {
		return errTooFar
	}
	v := req.Ordinal + req.N
	res.Ordinal = &v
	return nil
}

func newServer(t *testing.T) *rpc.Server {
	t.Helper()
	s := rpc.NewServer()
	s.RegisterCodec(msgpack2.NewCodec(), "application/x-msgpack")
	require.NoError(t, s.RegisterService(new(StepService), ""))
	return s
}

func post(s *rpc.Server, body []byte) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "http://localhost:5993/rpc", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/x-msgpack")
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)
	return w
}

func execute(t *testing.T, s *rpc.Server, method string, req, res interface{}) error {
	t.Helper()
	require.True(t, s.HasMethod(method), "expected to be registered: %s", method)

	buf, err := msgpack2.EncodeClientRequest(method, req)
	require.NoError(t, err)
	w := post(s, buf)
	assert.Equal(t, "application/x-msgpack", w.Header().Get("Content-Type"))
	return msgpack2.DecodeClientResponse(w.Body, res)
}

func executeRaw(t *testing.T, s *rpc.Server, req, res interface{}) error {
	t.Helper()
	buf, err := msgpack.Marshal(req)
	require.NoError(t, err)
	return msgpack2.DecodeClientResponse(post(s, buf).Body, res)
}

func TestService(t *testing.T) {
	t.Parallel()
	s := newServer(t)

	var res StepResponse
	require.NoError(t, execute(t, s, "StepService.Step", &StepRequest{Ordinal: 10, N: -3}, &res))
	require.NotNil(t, res.Ordinal)
	assert.Equal(t, int32(7), *res.Ordinal)

	err := execute(t, s, "StepService.Step", &StepRequest{Ordinal: 10, N: 5000}, &res)
	require.Error(t, err)
	assert.Equal(t, errTooFar.Error(), err.Error())
}

func TestService_NoParams(t *testing.T) {
	t.Parallel()
	s := newServer(t)

	req := struct {
		V  string `msgpack:"jsonrpc"`
		M  string `msgpack:"method"`
		ID uint64 `msgpack:"id"`
	}{"2.0", "StepService.Step", 1}

	var res StepResponse
	require.NoError(t, executeRaw(t, s, &req, &res))
	require.NotNil(t, res.Ordinal)
	assert.Equal(t, defaultOrdinal, *res.Ordinal)
}

func TestService_ParamsByPosition(t *testing.T) {
	t.Parallel()
	s := newServer(t)

	req := struct {
		V  string        `msgpack:"jsonrpc"`
		P  []StepRequest `msgpack:"params"`
		M  string        `msgpack:"method"`
		ID uint64        `msgpack:"id"`
	}{"2.0", []StepRequest{{Ordinal: 1, N: 2}}, "StepService.Step", 1}

	var res StepResponse
	require.NoError(t, executeRaw(t, s, &req, &res))
	require.NotNil(t, res.Ordinal)
	assert.Equal(t, int32(3), *res.Ordinal)
}

func TestService_BadVersion(t *testing.T) {
	t.Parallel()
	s := newServer(t)

	req := struct {
		V  string `msgpack:"jsonrpc"`
		M  string `msgpack:"method"`
		ID uint64 `msgpack:"id"`
	}{"1.0", "StepService.Step", 1}

	var res StepResponse
	err := executeRaw(t, s, &req, &res)
	var rpcErr *msgpack2.Error
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, msgpack2.ErrInvalidReq, rpcErr.Code)
}

func TestDecodeNullResult(t *testing.T) {
	t.Parallel()
	data, err := msgpack.Marshal(map[string]interface{}{"jsonrpc": "2.0", "id": 12345, "result": nil})
	require.NoError(t, err)

	var result interface{}
	err = msgpack2.DecodeClientResponse(bytes.NewReader(data), &result)
	assert.Equal(t, msgpack2.ErrNullResult, err)
	assert.Nil(t, result)
}
