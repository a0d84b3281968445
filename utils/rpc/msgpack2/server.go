// This is a copy from gorilla's jsonrpc2 using msgpack
//
// Copyright 2009 The Go Authors. All rights reserved.
// Copyright 2012 The Gorilla Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msgpack2

import (
	"net/http"

	rpc "github.com/alpacahq/rpc/rpc2"
	msgpack "github.com/vmihailenco/msgpack"
)

// Version is the JSON-RPC protocol version the codec speaks.
const Version = "2.0"

// serverRequest represents a JSON-RPC request received by the server.
type serverRequest struct {
	Version string `msgpack:"jsonrpc"`

	// A String containing the name of the method to be invoked.
	Method string `msgpack:"method"`

	// A Structured value to pass as arguments to the method.
	Params interface{} `msgpack:"params"`

	// The request id. MUST be a string, number or null.
	ID interface{} `msgpack:"id"`
}

// serverResponse represents a JSON-RPC response returned by the server.
type serverResponse struct {
	Version string      `msgpack:"jsonrpc"`
	Result  interface{} `msgpack:"result,omitempty"`
	Error   *Error      `msgpack:"error,omitempty"`
	ID      interface{} `msgpack:"id"`
}

// Codec creates a CodecRequest to process each request.
type Codec struct{}

// NewCodec returns a new msgpack Codec.
func NewCodec() *Codec {
	return &Codec{}
}

// NewRequest decodes the body of r. Decoding errors are reported by Method.
func (c *Codec) NewRequest(r *http.Request) rpc.CodecRequest {
	req := new(serverRequest)
	err := msgpack.NewDecoder(r.Body).Decode(req)
	if err != nil {
		err = &Error{
			Code:    ErrParse,
			Message: err.Error(),
			Data:    req,
		}
	} else if req.Version != Version {
		err = &Error{
			Code:    ErrInvalidReq,
			Message: "jsonrpc must be " + Version,
			Data:    req,
		}
	}
	_ = r.Body.Close()
	return &CodecRequest{request: req, err: err}
}

// CodecRequest decodes and encodes a single request.
type CodecRequest struct {
	request *serverRequest
	err     error
}

// Method returns the RPC method for the current request.
func (c *CodecRequest) Method() (string, error) {
	if c.err == nil {
		return c.request.Method, nil
	}
	return "", c.err
}

// ReadRequest fills args with the request parameters. Params may be sent
// by name (a map) or by position, in which case the first element is used.
// Absent params leave args untouched.
func (c *CodecRequest) ReadRequest(args interface{}) error {
	if c.err != nil {
		return c.err
	}
	params := c.request.Params
	if params == nil {
		return nil
	}
	if list, ok := params.([]interface{}); ok {
		if len(list) == 0 {
			return nil
		}
		params = list[0]
	}
	encoded, err := msgpack.Marshal(params)
	if err == nil {
		err = msgpack.Unmarshal(encoded, args)
	}
	if err != nil {
		c.err = &Error{
			Code:    ErrInvalidReq,
			Message: err.Error(),
			Data:    c.request.Params,
		}
	}
	return c.err
}

// WriteResponse encodes the response and writes it to w.
func (c *CodecRequest) WriteResponse(w http.ResponseWriter, reply interface{}) {
	c.writeServerResponse(w, &serverResponse{
		Version: Version,
		Result:  reply,
		ID:      c.request.ID,
	})
}

// WriteError encodes err as a JSON-RPC error. The HTTP status is always 200
// as the error travels inside the response.
func (c *CodecRequest) WriteError(w http.ResponseWriter, _ int, err error) {
	rpcErr, ok := err.(*Error)
	if !ok {
		rpcErr = &Error{
			Code:    ErrServer,
			Message: err.Error(),
		}
	}
	c.writeServerResponse(w, &serverResponse{
		Version: Version,
		Error:   rpcErr,
		ID:      c.request.ID,
	})
}

func (c *CodecRequest) writeServerResponse(w http.ResponseWriter, res *serverResponse) {
	w.Header().Set("Content-Type", "application/x-msgpack")
	if err := msgpack.NewEncoder(w).Encode(res); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
