package view

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

const logoFile = "logo.png"

// ProbeBrand checks once whether the logo exists under basePath, an HTTP(S)
// URL or a directory. A missing or unreachable logo degrades to the text
// brand.
func ProbeBrand(ctx context.Context, client *http.Client, basePath string) Brand {
	logger := zerolog.Ctx(ctx)
	brand := Brand{Text: BrandFallback}
	if basePath == "" {
		return brand
	}

	if u, err := url.Parse(basePath); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		u.Path = path.Join("/", strings.TrimSuffix(u.Path, "/"), logoFile)
		target := u.String()
		if headOK(ctx, client, target) {
			brand.ImageURL = target
		} else {
			logger.Debug().Str("url", target).Msg("brand logo not available, using text brand")
		}
		return brand
	}

	p := filepath.Join(basePath, logoFile)
	if info, err := os.Stat(p); err == nil && !info.IsDir() {
		brand.ImageURL = p
	} else {
		logger.Debug().Str("path", p).Msg("brand logo not available, using text brand")
	}
	return brand
}

func headOK(ctx context.Context, client *http.Client, target string) bool {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
