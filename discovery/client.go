package discovery

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dhrions/ha-public-transports/internal"
	"github.com/dhrions/ha-public-transports/registry"
	"github.com/dhrions/ha-public-transports/siri"

	resty "gopkg.in/resty.v1"
)

// DefaultTimeout bounds a discovery call when none is configured
const DefaultTimeout = 10 * time.Second

// Client fetches stop point discovery documents
type Client struct {
	http *resty.Client
}

// NewClient creates a discovery client whose calls never outlive timeout
func NewClient(timeout time.Duration) *Client {
	return NewClientWithHTTP(&http.Client{}, timeout)
}

// NewClientWithHTTP uses a copy of hc (custom transport, proxy) with its
// timeout replaced; hc itself is left untouched.
func NewClientWithHTTP(hc *http.Client, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	own := *hc
	// resty's own logger writes at every level; diagnostics go through Debugf
	c := resty.NewWithClient(&own).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetLogger(io.Discard)
	return &Client{http: c}
}

// DiscoverStops fetches the stops published by the operator. The credential,
// when present and non-empty, is sent as the HTTP Basic username with an
// empty password.
func (c *Client) DiscoverStops(ctx context.Context, d registry.OperatorDescriptor, credential *string) Result {
	if d.BaseURL == "" || d.DiscoveryPath == "" {
		internal.Debugf("stop discovery: operator %q has no discovery endpoint", d.Name)
		return failed(Outcome{Kind: Unsupported, Detail: "no discovery endpoint"})
	}

	// Concatenated as-is; operators expect the path verbatim.
	endpoint := d.BaseURL + d.DiscoveryPath
	if u, err := url.Parse(endpoint); err != nil || !u.IsAbs() {
		internal.Debugf("stop discovery: operator %q has invalid endpoint %q", d.Name, endpoint)
		return failed(Outcome{Kind: Unsupported, Detail: "invalid discovery URL"})
	}

	req := c.http.R().SetContext(ctx)
	hasAuth := credential != nil && *credential != ""
	if hasAuth {
		req.SetBasicAuth(*credential, "")
	}
	internal.Debugf("stop discovery: GET %s (operator=%s auth=%t)", endpoint, d.Name, hasAuth)

	resp, err := req.Get(endpoint)
	if err == nil && resp.RawResponse == nil {
		// resty swallows the error of a request aborted by its context
		err = ctx.Err()
		if err == nil {
			err = errors.New("no response")
		}
	}
	if err != nil {
		internal.Debugf("stop discovery: GET %s failed: %v", endpoint, err)
		return failed(Outcome{Kind: NetworkError, Detail: transportDetail(err)})
	}
	internal.Debugf("stop discovery: GET %s -> %d (%d bytes)", endpoint, resp.StatusCode(), len(resp.Body()))

	if resp.StatusCode() != http.StatusOK {
		return failed(Outcome{Kind: UpstreamError, StatusCode: resp.StatusCode()})
	}

	refs, err := siri.ParseAnnotatedStopPoints(resp.Body())
	if err != nil {
		return failed(Outcome{Kind: MalformedResponse, Detail: err.Error()})
	}

	stops := make([]StopRecord, 0, len(refs))
	for _, ref := range refs {
		// a stop without a name cannot be offered for selection
		if ref.StopName == nil {
			continue
		}
		stops = append(stops, StopRecord{StopName: *ref.StopName, StopCode: ref.Code()})
	}
	internal.Debugf("stop discovery: operator %q published %d stops", d.Name, len(stops))
	return Result{Stops: stops, Outcome: Outcome{Kind: Success}}
}

func failed(o Outcome) Result {
	return Result{Stops: []StopRecord{}, Outcome: o}
}

func transportDetail(err error) string {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		if uerr.Timeout() {
			return "timeout"
		}
		return uerr.Err.Error()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return err.Error()
}
