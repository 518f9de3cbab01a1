// Package tracker is the issue-tracker capability consumed by the bug
// catalogue (spec §6): two paged REST-like reads, project versions and a
// JQL-like search over fixed bugs. No generic paginated-JQL client exists
// anywhere in the reference corpus, so this talks net/http directly rather
// than reaching for a library that does not fit a Jira-shaped API.
package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// RawVersion is a project version/release as reported by the tracker.
type RawVersion struct {
	Name      string     `json:"name"`
	Released  bool       `json:"released"`
	ReleaseAt *time.Time `json:"releaseDate,omitempty"`
}

// RawTicket is an unvalidated ticket record as reported by the tracker
// search endpoint. Malformed records are the bug catalogue's concern to
// skip (spec §4.2); the client only deserializes what the wire sends.
type RawTicket struct {
	Key    string `json:"key"`
	Fields struct {
		Created        string   `json:"created"`
		ResolutionDate string   `json:"resolutiondate"`
		Versions       []string `json:"affectedVersions"`
	} `json:"fields"`
}

// Client is the capability set consumed by pkg/bugs.
type Client interface {
	// FetchVersions returns every version configured on the project.
	FetchVersions(ctx context.Context) ([]RawVersion, error)
	// SearchFixedBugs returns every ticket of issue type bug with
	// resolution "fixed", in server-reported page order.
	SearchFixedBugs(ctx context.Context) ([]RawTicket, error)
}

// HTTPClient is the default Client, talking to a Jira-like REST API.
type HTTPClient struct {
	BaseURL    string
	ProjectKey string
	Timeout    time.Duration
	do         func(req *http.Request) (*http.Response, error)
}

// NewHTTPClient builds a Client against baseURL for the given project key.
// timeout bounds every individual HTTP call (spec §5: "external HTTP calls
// carry a bounded timeout"); zero means 30s.
func NewHTTPClient(baseURL, projectKey string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}
	return &HTTPClient{
		BaseURL:    baseURL,
		ProjectKey: projectKey,
		Timeout:    timeout,
		do:         httpClient.Do,
	}
}

const pageSize = 50

type versionsPage struct {
	Values     []RawVersion `json:"values"`
	Total      int          `json:"total"`
	IsLastPage bool         `json:"isLast"`
}

type searchPage struct {
	Issues     []RawTicket `json:"issues"`
	Total      int         `json:"total"`
	StartAt    int         `json:"startAt"`
	MaxResults int         `json:"maxResults"`
}

// FetchVersions pages through /rest/api/2/project/{key}/versions until the
// observed count reaches the reported total or an empty page is returned
// (spec §4.2: "request pages until observed count ≥ reported total or an
// empty page is returned").
func (c *HTTPClient) FetchVersions(ctx context.Context) ([]RawVersion, error) {
	var all []RawVersion
	startAt := 0
	for {
		var page versionsPage
		path := fmt.Sprintf("/rest/api/2/project/%s/versions", url.PathEscape(c.ProjectKey))
		q := url.Values{"startAt": {fmt.Sprint(startAt)}, "maxResults": {fmt.Sprint(pageSize)}}
		if err := c.getJSON(ctx, path, q, &page); err != nil {
			return nil, fmt.Errorf("tracker: fetch versions: %w", err)
		}
		if len(page.Values) == 0 {
			break
		}
		all = append(all, page.Values...)
		startAt += len(page.Values)
		if page.IsLastPage || (page.Total > 0 && len(all) >= page.Total) {
			break
		}
	}
	return all, nil
}

// SearchFixedBugs pages through a JQL-like search for
// `project = KEY AND issuetype = Bug AND status in (Resolved, Closed) AND resolution = Fixed`
// requesting fields {key, created, resolutiondate, versions}.
func (c *HTTPClient) SearchFixedBugs(ctx context.Context) ([]RawTicket, error) {
	jql := fmt.Sprintf(
		"project = %s AND issuetype = Bug AND status in (Resolved, Closed) AND resolution = Fixed",
		c.ProjectKey,
	)

	var all []RawTicket
	startAt := 0
	for {
		var page searchPage
		q := url.Values{
			"jql":        {jql},
			"startAt":    {fmt.Sprint(startAt)},
			"maxResults": {fmt.Sprint(pageSize)},
			"fields":     {"key,created,resolutiondate,versions"},
		}
		if err := c.getJSON(ctx, "/rest/api/2/search", q, &page); err != nil {
			return nil, fmt.Errorf("tracker: search fixed bugs: %w", err)
		}
		if len(page.Issues) == 0 {
			break
		}
		all = append(all, page.Issues...)
		startAt += len(page.Issues)
		if page.Total > 0 && len(all) >= page.Total {
			break
		}
	}
	return all, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	doer := c.do
	if doer == nil {
		doer = (&http.Client{Timeout: c.Timeout}).Do
	}
	resp, err := doer(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
