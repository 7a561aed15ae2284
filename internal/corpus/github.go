package corpus

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v81/github"

	"github.com/startforge/blueprint/internal/index"
)

// categoryDirs maps document types to their directory names inside a
// corpus pack repository.
var categoryDirs = map[index.DocType]string{
	index.TypeScheme:  "schemes",
	index.TypeLegal:   "legal",
	index.TypeFunding: "funding",
	index.TypeMarket:  "market",
}

// GitHubSource loads per-category markdown packs from a GitHub data
// repository. Each top-level category directory holds .md files; markdown
// is flattened to plain text before chunking. Directories that don't exist
// are skipped, so a pack may ship only some categories.
type GitHubSource struct {
	client   *github.Client
	owner    string
	repo     string
	basePath string
}

// NewGitHubClient creates a GitHub client with rate limiting. If
// GITHUB_TOKEN is set the client is authenticated for higher limits.
func NewGitHubClient() (*github.Client, error) {
	rateLimiter, err := github_ratelimit.NewRateLimitWaiterClient(nil)
	if err != nil {
		return nil, err
	}

	client := github.NewClient(rateLimiter)
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		client = client.WithAuthToken(token)
	}
	return client, nil
}

// NewGitHubSource creates a source reading corpus packs from
// owner/repo under basePath.
func NewGitHubSource(client *github.Client, owner, repo, basePath string) *GitHubSource {
	return &GitHubSource{
		client:   client,
		owner:    owner,
		repo:     repo,
		basePath: basePath,
	}
}

// LoadAll fetches every markdown file of every category directory and
// flattens it into a record with the file's title and text.
func (g *GitHubSource) LoadAll(ctx context.Context) (map[index.DocType][]Record, error) {
	data := make(map[index.DocType][]Record)

	for _, typ := range index.Types {
		dir := path.Join(g.basePath, categoryDirs[typ])

		names, err := g.listMarkdown(ctx, dir)
		if err != nil {
			// Packs may omit categories entirely.
			continue
		}

		for _, name := range names {
			text, err := g.fetchMarkdown(ctx, path.Join(dir, name))
			if err != nil {
				return nil, fmt.Errorf("fetch %s/%s: %w", dir, name, err)
			}
			rec := Record{
				"name":        titleFromFilename(name),
				"description": text,
				"source":      fmt.Sprintf("%s/%s", g.owner, g.repo),
			}
			// Legal and funding layouts key on "type" rather than "name".
			if typ == index.TypeLegal || typ == index.TypeFunding {
				rec["type"] = rec["name"]
			}
			data[typ] = append(data[typ], rec)
		}
	}

	return data, nil
}

func (g *GitHubSource) listMarkdown(ctx context.Context, dir string) ([]string, error) {
	_, contents, _, err := g.client.Repositories.GetContents(ctx, g.owner, g.repo, dir, nil)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, item := range contents {
		if item.Type == nil || item.Name == nil || *item.Type != "file" {
			continue
		}
		if strings.HasSuffix(*item.Name, ".md") {
			names = append(names, *item.Name)
		}
	}
	return names, nil
}

func (g *GitHubSource) fetchMarkdown(ctx context.Context, fullPath string) (string, error) {
	fileContent, _, _, err := g.client.Repositories.GetContents(ctx, g.owner, g.repo, fullPath, nil)
	if err != nil {
		return "", err
	}
	if fileContent == nil {
		return "", fmt.Errorf("no file content returned for %s", fullPath)
	}

	raw, err := base64.StdEncoding.DecodeString(*fileContent.Content)
	if err != nil {
		return "", fmt.Errorf("decode content of %s: %w", fullPath, err)
	}

	return FlattenMarkdown(raw), nil
}

// titleFromFilename turns "seed-fund-scheme.md" into "Seed Fund Scheme".
func titleFromFilename(name string) string {
	base := strings.TrimSuffix(name, ".md")
	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
