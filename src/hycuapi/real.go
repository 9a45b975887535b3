package hycuapi

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"hycu-check/src/endpoint"
	"hycu-check/src/version"
)

// maxErrorBody bounds how much of a failed response ends up in an error.
const maxErrorBody = 512

// Options configures a RealClient.
type Options struct {
	Token          string
	VerifyTLS      bool
	Timeout        time.Duration
	PageSize       int
	BackupPageSize int
	Logger         logr.Logger
	// HTTPClient overrides the transport; tests use it with httptest servers.
	HTTPClient *http.Client
}

// RealClient talks to a HYCU controller over HTTPS. Every call is a single
// attempt; failures are returned, never retried.
type RealClient struct {
	base  *url.URL
	token string
	hc    *http.Client
	log   logr.Logger

	pageSize       int
	backupPageSize int
}

// New returns a client for the controller at ep.
func New(ep endpoint.Endpoint, opts Options) *RealClient {
	return NewWithBaseURL(ep.BaseURL(), opts)
}

// NewWithBaseURL returns a client rooted at an arbitrary REST base URL.
func NewWithBaseURL(base *url.URL, opts Options) *RealClient {
	hc := opts.HTTPClient
	if hc == nil {
		tr := http.DefaultTransport.(*http.Transport).Clone()
		// #nosec G402 -- verification is an explicit operator setting.
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: !opts.VerifyTLS}
		hc = &http.Client{Transport: tr, Timeout: opts.Timeout}
	}
	return &RealClient{
		base:           base,
		token:          opts.Token,
		hc:             hc,
		log:            opts.Logger,
		pageSize:       opts.PageSize,
		backupPageSize: opts.BackupPageSize,
	}
}

func (r *RealClient) ListVMs(ctx context.Context) ([]Object, error) {
	return FetchAll(ctx, r.pageSize, func(ctx context.Context, page int) (Page, error) {
		return r.getPage(ctx, "vms", url.Values{
			"pageSize":   {strconv.Itoa(r.pageSize)},
			"pageNumber": {strconv.Itoa(page)},
		})
	})
}

func (r *RealClient) ListTargets(ctx context.Context) ([]Object, error) {
	return FetchAll(ctx, r.pageSize, func(ctx context.Context, page int) (Page, error) {
		return r.getPage(ctx, "targets", url.Values{
			"pageSize":          {strconv.Itoa(r.pageSize)},
			"pageNumber":        {strconv.Itoa(page)},
			"includeDatastores": {"false"},
			"forceSync":         {"false"},
		})
	})
}

func (r *RealClient) VMBackups(ctx context.Context, vmUUID string) (Page, error) {
	return r.getPage(ctx, "vms/"+url.PathEscape(vmUUID)+"/backups", url.Values{
		"pageSize":   {strconv.Itoa(r.backupPageSize)},
		"pageNumber": {"1"},
	})
}

func (r *RealClient) getPage(ctx context.Context, resource string, q url.Values) (Page, error) {
	u := r.base.JoinPath(resource)
	u.RawQuery = q.Encode()
	target := u.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Page{}, &TransportError{URL: target, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+r.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	start := time.Now()
	resp, err := r.hc.Do(req)
	if err != nil {
		return Page{}, &TransportError{URL: target, Err: err}
	}
	defer resp.Body.Close()
	r.log.V(1).Info("api request", "url", target, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return Page{}, &HTTPStatusError{URL: target, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var p Page
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&p); err != nil {
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return Page{}, &TransportError{URL: target, Err: err}
		}
		return Page{}, &DecodeError{URL: target, Err: err}
	}
	return p, nil
}
