package provider

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/fuzzinit/fuzz-init/internal/debug"
	"github.com/fuzzinit/fuzz-init/internal/template/model"
)

// defaultBranches are tried in order when downloading a repository archive.
var defaultBranches = []string{"main", "master"}

// GitHubProvider downloads templates from GitHub repository archives.
type GitHubProvider struct {
	// HTTPClient is the client used for archive downloads.
	HTTPClient *http.Client
	// BaseURL is the GitHub download base, overridable for tests.
	BaseURL string
	// Token is an optional access token for private repositories.
	Token string
}

// NewGitHubProvider creates a GitHub provider with a default HTTP client.
func NewGitHubProvider() *GitHubProvider {
	return &GitHubProvider{
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
		BaseURL:    "https://github.com",
	}
}

// Name returns the provider name.
func (p *GitHubProvider) Name() string {
	return "github"
}

// Resolve parses "github:org/repo" and "@org/repo" source syntax.
func (p *GitHubProvider) Resolve(source string) (model.Source, error) {
	var spec string
	switch {
	case strings.HasPrefix(source, "github:"):
		spec = strings.TrimPrefix(source, "github:")
	case strings.HasPrefix(source, "@"):
		spec = strings.TrimPrefix(source, "@")
	default:
		return model.Source{}, NewInvalidSourceError(p.Name(), source,
			fmt.Errorf("expected github:org/repo or @org/repo"))
	}

	parts := strings.Split(spec, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return model.Source{}, NewInvalidSourceError(p.Name(), source,
			fmt.Errorf("expected org/repo, got %q", spec))
	}

	src := model.Source{Kind: model.SourceGitHub, Org: parts[0], Repo: parts[1]}
	debug.Debug("[github] Resolved %s -> %s/%s", source, src.Org, src.Repo)
	return src, nil
}

// Fetch downloads the repository archive and loads the template from a
// temporary directory. The directory lives for the rest of the process; the
// core never runs network I/O itself, so by the time the generator walks the
// tree this is an ordinary local directory.
func (p *GitHubProvider) Fetch(ctx context.Context, src model.Source) (*model.Template, error) {
	repoPath := fmt.Sprintf("%s/%s", src.Org, src.Repo)
	debug.Debug("[github] Fetching template: %s", repoPath)

	archive, err := p.downloadArchive(ctx, src)
	if err != nil {
		return nil, err
	}

	tmpDir, err := os.MkdirTemp("", "fuzz-init-template-*")
	if err != nil {
		return nil, NewFetchError(p.Name(), repoPath, err)
	}

	if err := extractZip(archive, tmpDir); err != nil {
		return nil, NewFetchError(p.Name(), repoPath,
			fmt.Errorf("failed to extract archive: %w", err))
	}
	debug.Debug("[github] Extracted archive to %s", tmpDir)

	localSrc := src
	localSrc.Path = tmpDir
	tpl, err := collectTemplate(afero.NewOsFs(), tmpDir, localSrc)
	if err != nil {
		return nil, NewInvalidTemplateError(p.Name(), repoPath, "failed to load template", err)
	}
	return tpl, nil
}

// downloadArchive fetches the repository ZIP, trying the main branch first
// and falling back to master.
func (p *GitHubProvider) downloadArchive(ctx context.Context, src model.Source) ([]byte, error) {
	repoPath := fmt.Sprintf("%s/%s", src.Org, src.Repo)

	var lastStatus int
	for _, branch := range defaultBranches {
		url := fmt.Sprintf("%s/%s/%s/archive/%s.zip", p.BaseURL, src.Org, src.Repo, branch)
		debug.Debug("[github] Downloading %s", url)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, NewFetchError(p.Name(), repoPath, err)
		}
		if p.Token != "" {
			req.Header.Set("Authorization", "token "+p.Token)
		}

		resp, err := p.HTTPClient.Do(req)
		if err != nil {
			return nil, NewFetchError(p.Name(), repoPath, err)
		}

		if resp.StatusCode == http.StatusOK {
			data, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return nil, NewFetchError(p.Name(), repoPath, err)
			}
			debug.Debug("[github] Downloaded %d bytes from branch %s", len(data), branch)
			return data, nil
		}
		resp.Body.Close()
		lastStatus = resp.StatusCode
		debug.Debug("[github] Branch %s: HTTP %d", branch, resp.StatusCode)
	}

	if lastStatus == http.StatusNotFound {
		return nil, NewNotFoundError(p.Name(), repoPath)
	}
	return nil, NewFetchError(p.Name(), repoPath,
		fmt.Errorf("download failed with HTTP %d", lastStatus))
}

// extractZip unpacks a repository archive, stripping the top-level
// "repo-branch/" directory GitHub adds.
func extractZip(data []byte, destDir string) error {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return err
	}

	for _, entry := range reader.File {
		relPath := stripTopLevel(entry.Name)
		if relPath == "" {
			continue
		}

		destPath := filepath.Join(destDir, filepath.FromSlash(relPath))
		// Reject entries escaping the destination (zip slip).
		if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry escapes destination: %s", entry.Name)
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(destPath, 0o755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return err
		}

		rc, err := entry.Open()
		if err != nil {
			return err
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return err
		}

		mode := entry.FileInfo().Mode().Perm()
		if mode == 0 {
			mode = 0o644
		}
		if err := os.WriteFile(destPath, content, mode); err != nil {
			return err
		}
	}
	return nil
}

// stripTopLevel removes the first path segment of an archive entry name.
func stripTopLevel(name string) string {
	name = strings.TrimPrefix(name, "/")
	idx := strings.IndexByte(name, '/')
	if idx < 0 {
		return ""
	}
	return name[idx+1:]
}
