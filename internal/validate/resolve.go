package validate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"openscope-params/internal/jsondoc"
	"openscope-params/internal/logging"
)

// maxSchemaBytes caps a fetched schema body.
const maxSchemaBytes = 8 << 20

// Resolver turns $schema and module_schema references into schema objects.
type Resolver struct {
	// RepoRoot anchors tooling-prefixed and fallback relative references.
	RepoRoot string
	// ToolingPrefix marks references that are always repo-root relative.
	ToolingPrefix string
	// ToolingDir is where schemas named by an IDBase URL live.
	ToolingDir string
	// IDBase is the $id prefix stamped on exported schemas. URLs under it
	// resolve to ToolingDir instead of the network.
	IDBase string
	// Aliases maps remote URLs to repo-relative files.
	Aliases map[string]string
	// Client performs remote fetches. A nil client uses a 30s timeout.
	Client *http.Client
	Log    *zap.Logger
}

func (r *Resolver) log() *zap.Logger {
	return logging.OrNop(r.Log)
}

func (r *Resolver) client() *http.Client {
	if r.Client == nil {
		return &http.Client{Timeout: 30 * time.Second}
	}
	return r.Client
}

// Resolve loads the schema ref points at, for the pack at packPath.
func (r *Resolver) Resolve(ctx context.Context, ref, packPath string) (*jsondoc.Object, error) {
	switch {
	case isHTTP(ref):
		if local, ok := r.alias(ref); ok {
			r.log().Debug("schema alias", zap.String("ref", ref), zap.String("path", local))
			return loadSchema(local)
		}
		return r.fetch(ctx, ref)
	case strings.Contains(ref, "://"):
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRef, ref)
	}

	candidates := r.candidates(ref, packPath)
	for _, c := range candidates {
		info, err := os.Stat(c)
		if err == nil && !info.IsDir() {
			r.log().Debug("schema resolved", zap.String("ref", ref), zap.String("path", c))
			return loadSchema(c)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, candidates[0])
}

func isHTTP(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func (r *Resolver) alias(ref string) (string, bool) {
	if rel, ok := r.Aliases[ref]; ok {
		return filepath.Join(r.RepoRoot, filepath.FromSlash(rel)), true
	}
	if r.IDBase != "" && r.ToolingDir != "" && strings.HasPrefix(ref, r.IDBase) {
		name := strings.TrimPrefix(ref, r.IDBase)
		if name != "" && !strings.Contains(name, "/") {
			return filepath.Join(r.ToolingDir, name), true
		}
	}
	return "", false
}

func (r *Resolver) candidates(ref, packPath string) []string {
	ref = strings.TrimPrefix(ref, "./")
	rel := filepath.FromSlash(ref)
	if filepath.IsAbs(rel) {
		return []string{rel}
	}
	if r.ToolingPrefix != "" && strings.HasPrefix(ref, r.ToolingPrefix) {
		return []string{filepath.Join(r.RepoRoot, rel)}
	}
	return []string{
		filepath.Join(filepath.Dir(packPath), rel),
		filepath.Join(r.RepoRoot, rel),
	}
}

func (r *Resolver) fetch(ctx context.Context, url string) (*jsondoc.Object, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch schema %s: %w", url, err)
	}
	r.log().Debug("fetching schema", zap.String("url", url))
	resp, err := r.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch schema %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch schema %s: HTTP %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSchemaBytes))
	if err != nil {
		return nil, fmt.Errorf("fetch schema %s: %w", url, err)
	}
	schema, err := jsondoc.DecodeObject(body)
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", url, err)
	}
	return schema, nil
}

func loadSchema(path string) (*jsondoc.Object, error) {
	schema, err := jsondoc.ReadObjectFile(path)
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", path, err)
	}
	return schema, nil
}
