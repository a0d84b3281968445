package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/alpacahq/bizcal/frontend"
	"github.com/alpacahq/bizcal/utils/rpc/msgpack2"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient initializes a new bizcal RPC client.
func NewClient(baseurl string) (cl *Client, err error) {
	if _, err = url.Parse(baseurl); err != nil {
		return nil, err
	}
	return &Client{
		BaseURL:    baseurl,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

// DoRPC calls CalendarService.<functionName> and decodes the result into reply.
func (cl *Client) DoRPC(ctx context.Context, functionName string, args, reply interface{}) error {
	if args == nil {
		return fmt.Errorf("args must be non-nil - have: args: %v", args)
	}
	message, err := msgpack2.EncodeClientRequest("CalendarService."+functionName, args)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cl.BaseURL+"/rpc", bytes.NewBuffer(message))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-msgpack")
	resp, err := cl.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, err := io.ReadAll(resp.Body)
		errText := string(bodyBytes)
		if err != nil {
			errText = err.Error()
		}
		return fmt.Errorf("response error (%d): %s", resp.StatusCode, errText)
	}
	return msgpack2.DecodeClientResponse(resp.Body, reply)
}

func (cl *Client) ListCalendars(ctx context.Context) ([]string, error) {
	var resp frontend.ListCalendarsResponse
	if err := cl.DoRPC(ctx, "ListCalendars", &frontend.ListCalendarsRequest{}, &resp); err != nil {
		return nil, err
	}
	return resp.Calendars, nil
}

func (cl *Client) Info(ctx context.Context, cal string) (*frontend.InfoResponse, error) {
	var resp frontend.InfoResponse
	if err := cl.DoRPC(ctx, "Info", &frontend.CalendarRequest{Calendar: cal}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (cl *Client) IsBusinessDay(ctx context.Context, cal string, ordinal int32) (bool, error) {
	var resp frontend.BoolResponse
	err := cl.DoRPC(ctx, "IsBusinessDay", &frontend.DayRequest{Calendar: cal, Ordinal: ordinal}, &resp)
	return resp.Value, err
}

// Day calls one of the single ordinal navigation methods, e.g. "NextBusinessDay".
// A nil result means there is no such business day.
func (cl *Client) Day(ctx context.Context, method, cal string, ordinal int32) (*int32, error) {
	var resp frontend.DayResponse
	err := cl.DoRPC(ctx, method, &frontend.DayRequest{Calendar: cal, Ordinal: ordinal}, &resp)
	return resp.Ordinal, err
}

func (cl *Client) AddBusinessDays(ctx context.Context, cal string, ordinal, n int32) (*int32, error) {
	var resp frontend.DayResponse
	err := cl.DoRPC(ctx, "AddBusinessDays", &frontend.OffsetRequest{Calendar: cal, Ordinal: ordinal, N: n}, &resp)
	return resp.Ordinal, err
}

func (cl *Client) BusinessDaysInRange(ctx context.Context, cal string, start, end int32) ([]int32, error) {
	var resp frontend.RangeResponse
	err := cl.DoRPC(ctx, "BusinessDaysInRange", &frontend.RangeRequest{Calendar: cal, Start: start, End: end}, &resp)
	return resp.Ordinals, err
}

func (cl *Client) CountBusinessDays(ctx context.Context, cal string, start, end int32) (int, error) {
	var resp frontend.CountResponse
	err := cl.DoRPC(ctx, "CountBusinessDays", &frontend.RangeRequest{Calendar: cal, Start: start, End: end}, &resp)
	return resp.Count, err
}

func (cl *Client) BusinessDayIndex(ctx context.Context, cal string, ordinal int32) (*int, error) {
	var resp frontend.IndexResponse
	err := cl.DoRPC(ctx, "BusinessDayIndex", &frontend.DayRequest{Calendar: cal, Ordinal: ordinal}, &resp)
	return resp.Index, err
}

func (cl *Client) BusinessDayAtIndex(ctx context.Context, cal string, index int) (*int32, error) {
	var resp frontend.DayResponse
	err := cl.DoRPC(ctx, "BusinessDayAtIndex", &frontend.IndexRequest{Calendar: cal, Index: index}, &resp)
	return resp.Ordinal, err
}
