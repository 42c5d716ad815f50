package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// pageSize is the repository count requested per catalog page.
const pageSize = 100

// manifestAccept covers the Docker v2 and OCI manifest media types so the
// registry answers with the same digest a docker pull would see.
const manifestAccept = "application/vnd.docker.distribution.manifest.v2+json, " +
	"application/vnd.oci.image.manifest.v1+json, " +
	"application/vnd.oci.image.index.v1+json"

// digestHeader carries the content digest of a manifest response.
const digestHeader = "Docker-Content-Digest"

// ─── Failure kinds ───────────────────────────────────────────────────────────

var (
	// ErrAuth means the registry rejected the credentials.
	ErrAuth = errors.New("registry authentication failed")

	// ErrUnreachable means the registry could not be contacted at all.
	ErrUnreachable = errors.New("registry unreachable")

	// ErrMalformed means the registry answered with a body that does not
	// decode as the documented shape. Never reported as "zero results".
	ErrMalformed = errors.New("malformed registry response")
)

// UnexpectedStatusError is returned when the registry answers with a status
// code the protocol does not define for the operation.
type UnexpectedStatusError struct {
	Op     string
	Status int
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
}

// ─── Endpoint ────────────────────────────────────────────────────────────────

// Endpoint is a registry base URL with basic credentials. Supplied once per
// run and never persisted.
type Endpoint struct {
	BaseURL  string
	Username string
	Password string
}

// Validate rejects endpoints the client cannot talk to before any request
// is made.
func (e Endpoint) Validate() error {
	u, err := url.Parse(e.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid registry URL %q: %w", e.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid registry URL %q: scheme must be http or https", e.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid registry URL %q: missing host", e.BaseURL)
	}
	return nil
}

// ─── Client ──────────────────────────────────────────────────────────────────

// Client speaks the Docker Registry HTTP API v2. All calls are strictly
// sequential; one outstanding request at a time.
type Client struct {
	endpoint Endpoint
	httpc    *http.Client
}

// NewClient validates the endpoint and builds a client around the default
// transport.
func NewClient(e Endpoint) (*Client, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	e.BaseURL = strings.TrimRight(e.BaseURL, "/")
	return &Client{endpoint: e, httpc: http.DefaultClient}, nil
}

// do issues one request with basic credentials. Transport-level failures
// classify as ErrUnreachable.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, accept string) (*http.Response, error) {
	reqURL := c.endpoint.BaseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, err
	}
	if c.endpoint.Username != "" || c.endpoint.Password != "" {
		req.SetBasicAuth(c.endpoint.Username, c.endpoint.Password)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return resp, nil
}

// Ping probes /v2/ to verify reachability and credentials before any
// enumeration starts.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/v2/", nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuth
	default:
		return &UnexpectedStatusError{Op: "ping", Status: resp.StatusCode}
	}
}

type catalogResponse struct {
	Repositories []string `json:"repositories"`
}

// Catalog enumerates every repository, following the last-name cursor until
// a page comes back shorter than pageSize. A failed page aborts the whole
// enumeration: a partial listing is never presented as complete.
func (c *Client) Catalog(ctx context.Context) ([]string, error) {
	var (
		repos  []string
		cursor string
	)

	for {
		query := url.Values{"n": []string{strconv.Itoa(pageSize)}}
		if cursor != "" {
			query.Set("last", cursor)
		}

		resp, err := c.do(ctx, http.MethodGet, "/v2/_catalog", query, "")
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, &UnexpectedStatusError{Op: "catalog", Status: resp.StatusCode}
		}

		var page catalogResponse
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		repos = append(repos, page.Repositories...)
		log.Debug("catalog page", "count", len(page.Repositories), "cursor", cursor)

		if len(page.Repositories) < pageSize {
			return repos, nil
		}
		cursor = page.Repositories[len(page.Repositories)-1]
	}
}

type tagsResponse struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// Tags lists the tags of one repository. An empty list is a valid answer,
// not an error.
func (c *Client) Tags(ctx context.Context, repo string) ([]string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/v2/"+repo+"/tags/list", nil, "")
	if err != nil {
		return nil, fmt.Errorf("tags %s: %w", repo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UnexpectedStatusError{Op: "tags " + repo, Status: resp.StatusCode}
	}

	var body tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return body.Tags, nil
}

// ResolveDigest resolves a tag to its current manifest digest via a HEAD
// request. A response without the digest header is a per-tag error.
func (c *Client) ResolveDigest(ctx context.Context, repo, tag string) (string, error) {
	resp, err := c.do(ctx, http.MethodHead, "/v2/"+repo+"/manifests/"+tag, nil, manifestAccept)
	if err != nil {
		return "", fmt.Errorf("manifest %s:%s: %w", repo, tag, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &UnexpectedStatusError{Op: "manifest " + repo + ":" + tag, Status: resp.StatusCode}
	}

	digest := resp.Header.Get(digestHeader)
	if digest == "" {
		return "", fmt.Errorf("manifest %s:%s: response carries no %s header", repo, tag, digestHeader)
	}
	return digest, nil
}

// DeleteManifest deletes a manifest by digest. 202 and 200 are the two
// accepted success codes; 404 means the digest is already gone, which
// repeated deletes (shared digests across tags) legitimately produce.
func (c *Client) DeleteManifest(ctx context.Context, repo, digest string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/v2/"+repo+"/manifests/"+digest, nil, "")
	if err != nil {
		return fmt.Errorf("delete %s@%s: %w", repo, digest, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusAccepted, http.StatusOK:
		return nil
	case http.StatusNotFound:
		log.Debug("manifest already gone", "repo", repo, "digest", digest)
		return nil
	default:
		return &UnexpectedStatusError{Op: "delete " + repo + "@" + digest, Status: resp.StatusCode}
	}
}
