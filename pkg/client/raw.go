package client

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/nanokube/kubeclient/pkg/api/meta"
	"github.com/nanokube/kubeclient/pkg/runtime"
	"github.com/nanokube/kubeclient/pkg/runtime/serializer/json"
	"golang.org/x/xerrors"
)

// RawResult holds the unprocessed response of a RawClient call.
type RawResult struct {
	body       []byte
	err        error
	statusCode int
}

func (r *RawResult) StatusCode() int {
	return r.statusCode
}

func (r *RawResult) Error() error {
	return r.err
}

func (r *RawResult) Data() []byte {
	return r.body
}

// Into decodes the response body into obj.
func (r *RawResult) Into(obj runtime.Object) error {
	if r.err != nil {
		return r.err
	}
	if r.statusCode < http.StatusOK || r.statusCode > http.StatusPartialContent {
		return xerrors.Errorf("request failed with status code %d", r.statusCode)
	}
	serializer := json.NewSerializer(meta.FactoryNewObject)
	_, _, err := serializer.Decode(r.body, nil, obj)
	return err
}

// RawClient is a thin convenience wrapper for endpoints outside the resource
// conventions, such as health and version probes, where the full request
// builder is more machinery than needed.
type RawClient struct {
	*resty.Client

	req  *resty.Request
	path string
	body interface{}
}

// NewRawClient returns a RawClient rooted at baseURL.
func NewRawClient(baseURL string, timeout time.Duration) *RawClient {
	hc := &http.Client{
		Timeout: timeout,
	}
	cli := resty.NewWithClient(hc)
	cli.SetBaseURL(baseURL)
	return &RawClient{Client: cli}
}

// Request starts a new request bound to ctx. It must be called before any of
// the verb or path setters.
func (c *RawClient) Request(ctx context.Context) *RawClient {
	c.req = c.R()
	c.req.SetContext(ctx)
	c.path = ""
	c.body = nil
	return c
}

func (c *RawClient) Get() *RawClient {
	c.req.Method = http.MethodGet
	return c
}

func (c *RawClient) Post() *RawClient {
	c.req.Method = http.MethodPost
	return c
}

func (c *RawClient) Put() *RawClient {
	c.req.Method = http.MethodPut
	return c
}

func (c *RawClient) Delete() *RawClient {
	c.req.Method = http.MethodDelete
	return c
}

func (c *RawClient) Path(path string) *RawClient {
	c.path = path
	return c
}

func (c *RawClient) Body(body interface{}) *RawClient {
	c.body = body
	return c
}

// Result executes the request and returns the raw response.
func (c *RawClient) Result() *RawResult {
	res := &RawResult{}
	var resp *resty.Response
	var err error
	switch c.req.Method {
	case http.MethodGet:
		resp, err = c.req.Get(c.path)
	case http.MethodPost:
		resp, err = c.req.SetBody(c.body).Post(c.path)
	case http.MethodPut:
		resp, err = c.req.SetBody(c.body).Put(c.path)
	case http.MethodDelete:
		resp, err = c.req.Delete(c.path)
	default:
		res.err = xerrors.Errorf("unsupported method %q", c.req.Method)
		return res
	}
	if resp != nil {
		res.body = resp.Body()
		res.statusCode = resp.StatusCode()
	}
	res.err = err
	return res
}

// Version fetches the unversioned server version endpoint and returns the
// raw body for the caller to interpret.
func (c *RawClient) Version(ctx context.Context) ([]byte, error) {
	res := c.Request(ctx).Get().Path("/version").Result()
	if res.Error() != nil {
		return nil, res.Error()
	}
	if res.StatusCode() != http.StatusOK {
		return nil, xerrors.Errorf("version returned status code %d", res.StatusCode())
	}
	return res.Data(), nil
}

// Healthz probes the server health endpoint and returns nil when the server
// answers 200.
func (c *RawClient) Healthz(ctx context.Context) error {
	res := c.Request(ctx).Get().Path("/healthz").Result()
	if res.Error() != nil {
		return res.Error()
	}
	if res.StatusCode() != http.StatusOK {
		return xerrors.Errorf("healthz returned status code %d", res.StatusCode())
	}
	return nil
}
