package pipeline

import (
	"log/slog"

	"github.com/serveur-http/serveur/internal/accesslog"
	"github.com/serveur-http/serveur/internal/config"
	"github.com/serveur-http/serveur/internal/fsroot"
)

// Options carries the collaborators the pipeline records into.
type Options struct {
	Logger *slog.Logger
	// Store receives per-request rows; nil disables persistence.
	Store *accesslog.Store
}

// Startup summarizes the resolved serving configuration. The factory
// does no logging of its own; the caller decides what to do with this.
type Startup struct {
	Root             string
	Assets           string
	AssetsBase       string
	CorsPolicy       string
	DirectoryListing bool
}

// LogValue lets callers emit the whole summary as one structured attr.
func (s Startup) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("root", s.Root),
		slog.String("assets", s.Assets),
		slog.String("assets_base", s.AssetsBase),
		slog.String("cors", s.CorsPolicy),
		slog.Bool("directory_listing", s.DirectoryListing),
	)
}

// New resolves the serving roots and composes the stage sequence. A
// root or assets directory that does not exist or cannot be resolved is
// an error; the caller must not begin serving in that case.
func New(cfg config.StaticConfig, opts Options) (*Pipeline, Startup, error) {
	roots, err := fsroot.Resolve(cfg.RootDir, cfg.AssetsDir)
	if err != nil {
		return nil, Startup{}, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	policy := ParseCorsPolicy(cfg.CorsAllowOrigins)

	p := &Pipeline{
		stages: []Stage{
			&lookupStage{roots: roots, listing: cfg.DirectoryListing},
			&cacheStage{assetsBase: roots.AssetsBase},
			&contentTypeStage{fallback: DefaultContentType},
			&compressStage{},
			&corsStage{policy: policy},
		},
		tail: []Stage{
			&accessLogStage{logger: logger, store: opts.Store},
			&errorPageStage{page404: cfg.Page404Path, page50x: cfg.Page50xPath},
		},
		logger: logger,
	}

	startup := Startup{
		Root:             roots.Root,
		Assets:           roots.Assets,
		AssetsBase:       roots.AssetsBase,
		CorsPolicy:       policy.String(),
		DirectoryListing: cfg.DirectoryListing,
	}

	return p, startup, nil
}
