// Package v1 contains the hand-written convenience clients for the core API
// group. Each resource client composes the generic client with the helpers
// that only make sense for that resource.
package v1

import (
	"net/http"

	"github.com/nanokube/kubeclient/pkg/api/meta"
	"github.com/nanokube/kubeclient/pkg/client/rest"
	"github.com/nanokube/kubeclient/pkg/runtime/schema"
	"github.com/nanokube/kubeclient/pkg/runtime/serializer/json"
	"github.com/nanokube/kubeclient/pkg/util/clock"
)

type CoreV1Interface interface {
	RESTClient() rest.Interface
	PodsGetter
	NamespacesGetter
	NodesGetter
	ConfigMapsGetter
}

type CoreV1Client struct {
	restClient rest.Interface
	clock      clock.Clock
}

func (c *CoreV1Client) Pods(namespace string) PodInterface {
	return newPods(c, namespace)
}

func (c *CoreV1Client) Namespaces() NamespaceInterface {
	return newNamespaces(c)
}

func (c *CoreV1Client) Nodes() NodeInterface {
	return newNodes(c)
}

func (c *CoreV1Client) ConfigMaps(namespace string) ConfigMapInterface {
	return newConfigMaps(c, namespace)
}

// RESTClient returns a RESTClient that is used to communicate
// with the API server by this client implementation.
func (c *CoreV1Client) RESTClient() rest.Interface {
	if c == nil {
		return nil
	}
	return c.restClient
}

// NewForConfig creates a new CoreV1Client for the given config.
func NewForConfig(c *rest.Config) (*CoreV1Client, error) {
	config := *c
	if err := setConfigDefaults(&config); err != nil {
		return nil, err
	}
	httpClient, err := rest.HTTPClientFor(&config)
	if err != nil {
		return nil, err
	}
	return NewForConfigAndClient(&config, httpClient)
}

// NewForConfigAndClient creates a new CoreV1Client for the given config and http client.
// Note the http client provided takes precedence over the configured transport values.
func NewForConfigAndClient(c *rest.Config, h *http.Client) (*CoreV1Client, error) {
	config := *c
	if err := setConfigDefaults(&config); err != nil {
		return nil, err
	}
	client, err := rest.RESTClientForConfigAndClient(&config, h)
	if err != nil {
		return nil, err
	}
	return &CoreV1Client{restClient: client, clock: clock.RealClock{}}, nil
}

func New(c rest.Interface) *CoreV1Client {
	return &CoreV1Client{restClient: c, clock: clock.RealClock{}}
}

func setConfigDefaults(config *rest.Config) error {
	gv := schema.SchemeGroupVersion
	config.GroupVersion = &gv
	config.APIPath = "/api"
	config.NegotiatedSerializer = json.NewBasicNegotiatedSerializer(meta.FactoryNewObject)

	if config.UserAgent == "" {
		config.UserAgent = rest.DefaultUserAgent()
	}

	return nil
}
