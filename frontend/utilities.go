package frontend

import (
	"encoding/json"
	"net/http"
	"net/http/pprof"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alpacahq/bizcal/utils"
	"github.com/alpacahq/bizcal/utils/log"
)

var Queryable uint32 // treated as bool

type HeartbeatMessage struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	GitHash   string `json:"git_hash"`
	Uptime    string `json:"uptime"`
	Calendars int    `json:"calendars"`
}

// CalendarCounter reports how many calendars are being served.
type CalendarCounter interface {
	Len() int
}

func NewUtilityAPIHandlers(startTime time.Time, calendars CalendarCounter) *utilityAPIHandlers {
	return &utilityAPIHandlers{startTime: startTime, calendars: calendars}
}

type utilityAPIHandlers struct {
	startTime time.Time
	calendars CalendarCounter
}

// Mux returns the heartbeat, metrics and profiling endpoints.
func (uah *utilityAPIHandlers) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/heartbeat", uah.heartbeat)
	mux.Handle("/metrics", promhttp.Handler())

	// profiling
	mux.HandleFunc("/pprof/", pprof.Index)
	mux.HandleFunc("/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/pprof/profile", pprof.Profile)
	mux.HandleFunc("/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/pprof/trace", pprof.Trace)
	mux.Handle("/pprof/heap", pprof.Handler("heap"))
	mux.Handle("/pprof/goroutine", pprof.Handler("goroutine"))
	return mux
}

func (uah *utilityAPIHandlers) Handle(url string) error {
	return http.ListenAndServe(url, uah.Mux())
}

func (uah *utilityAPIHandlers) heartbeat(rw http.ResponseWriter, _ *http.Request) {
	msg := HeartbeatMessage{
		Status:    "queryable",
		Version:   utils.Tag,
		GitHash:   utils.GitHash,
		Uptime:    time.Since(uah.startTime).String(),
		Calendars: uah.calendars.Len(),
	}
	status := http.StatusOK
	if atomic.LoadUint32(&Queryable) == 0 {
		msg.Status = "not queryable"
		status = http.StatusServiceUnavailable
	}

	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	if err := json.NewEncoder(rw).Encode(msg); err != nil {
		log.Error("Failed to write heartbeat message - Error: %v", err)
	}
}
