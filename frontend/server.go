package frontend

import (
	"context"
	"errors"
	"net/http"
	"time"

	rpc "github.com/alpacahq/rpc/rpc2"
	"github.com/alpacahq/rpc/rpc2/json2"

	"github.com/alpacahq/bizcal/catalog"
	"github.com/alpacahq/bizcal/metrics"
	"github.com/alpacahq/bizcal/utils"
	"github.com/alpacahq/bizcal/utils/log"
	"github.com/alpacahq/bizcal/utils/rpc/msgpack2"
)

var (
	queryableError = errors.New("Server is not queryable")
	argsNilError   = errors.New("Arguments are nil, can not query using nil arguments")
)

type RPCServer struct {
	*rpc.Server
}

func (s *RPCServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	w.Header().Set("bizcal-version", utils.GitHash)
	s.Server.ServeHTTP(w, r)
	metrics.RPCTotalRequestsTotal.Inc()
	metrics.RPCTotalRequestDuration.Observe(time.Since(start).Seconds())
}

func NewServer(catDir *catalog.Directory) (*RPCServer, *CalendarService) {
	s := &RPCServer{
		Server: rpc.NewServer(),
	}
	s.RegisterCodec(json2.NewCodec(), "application/json")
	s.RegisterCodec(json2.NewCodec(), "application/json;charset=UTF-8")
	s.RegisterCodec(msgpack2.NewCodec(), "application/x-msgpack")
	s.RegisterInterceptFunc(intercept)
	s.RegisterAfterFunc(after)
	service := NewCalendarService(catDir)
	err := s.RegisterService(service, "")
	if err != nil {
		log.Error("Failed to register service - Error: %v", err)
	}
	return s, service
}

type key int

const startTimeKey key = 0

func intercept(i *rpc.RequestInfo) *http.Request {
	return i.Request.WithContext(context.WithValue(i.Request.Context(), startTimeKey, time.Now()))
}

func after(i *rpc.RequestInfo) {
	v := i.Request.Context().Value(startTimeKey)
	if v == nil {
		log.Debug("start time not set on context for %s", i.Method)
		return
	}
	t, ok := v.(time.Time)
	if !ok {
		log.Error("start time not correct type")
		return
	}
	if i.Error != nil {
		return
	}

	metrics.RPCSuccessfulRequestDuration.WithLabelValues(i.Method).Observe(time.Since(t).Seconds())
	metrics.RPCSuccessfulRequestsTotal.WithLabelValues(i.Method).Inc()
}
