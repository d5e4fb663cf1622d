// Package selfupdate checks GitHub releases for a newer build and can
// replace the running binary in place.
package selfupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultBaseURL         = "https://api.github.com"
	defaultDownloadBaseURL = "https://github.com"
	defaultOwner           = "vchandu111"
	defaultRepo            = "IntervueAI"
)

type Checker struct {
	client          *http.Client
	baseURL         string
	downloadBaseURL string
	owner           string
	repo            string
	execPath        func() (string, error)
}

type Option func(*Checker)

func WithBaseURL(url string) Option {
	return func(c *Checker) { c.baseURL = url }
}

func WithDownloadBaseURL(url string) Option {
	return func(c *Checker) { c.downloadBaseURL = url }
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Checker) { c.client = client }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.Timeout = d }
}

func withExecPath(fn func() (string, error)) Option {
	return func(c *Checker) { c.execPath = fn }
}

func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		client:          &http.Client{Timeout: 30 * time.Second},
		baseURL:         defaultBaseURL,
		downloadBaseURL: defaultDownloadBaseURL,
		owner:           defaultOwner,
		repo:            defaultRepo,
		execPath:        os.Executable,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type CheckInput struct {
	Version string
}

type CheckResult struct {
	UpdateAvailable bool
	LatestVersion   string
	ReleaseURL      string
}

type releaseResponse struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Check fetches the latest release tag and compares it against the
// running version. A "(devel)" build never reports an update.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	if input.Version == "(devel)" {
		return &CheckResult{}, nil
	}

	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", strings.TrimRight(c.baseURL, "/"), c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	var release releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if release.TagName == "" {
		return nil, fmt.Errorf("release response missing tag name")
	}

	result := &CheckResult{
		LatestVersion: release.TagName,
		ReleaseURL:    release.HTMLURL,
	}
	if semver.Compare(canonical(release.TagName), canonical(input.Version)) > 0 {
		result.UpdateAvailable = true
	}
	return result, nil
}

func canonical(version string) string {
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return version
}
