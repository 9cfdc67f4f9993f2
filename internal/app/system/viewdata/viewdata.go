// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"
	"strings"
	"sync"

	"github.com/dalemusser/arenadash/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/httpnav"
)

// DefaultSiteName is shown in page titles when none is configured.
const DefaultSiteName = "Arena Admin"

// NoticeVM is a toast rendered by the shared layout.
type NoticeVM struct {
	Level string // success, error
	Text  string
}

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title", "/"),
//	}
type BaseVM struct {
	SiteName string

	// PlatformURL is the arena platform the dashboard links back to.
	PlatformURL string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// Notices carried over from a redirect.
	Notices []NoticeVM
}

var (
	mu          sync.RWMutex
	siteName    = DefaultSiteName
	platformURL string
)

// Init sets the site name and platform URL used by every page.
// Call this once at startup from bootstrap.
func Init(name, platform string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.TrimSpace(name) != "" {
		siteName = name
	}
	platformURL = strings.TrimRight(platform, "/")
}

// PlatformURL returns the configured platform base URL without a trailing slash.
func PlatformURL() string {
	mu.RLock()
	defer mu.RUnlock()
	return platformURL
}

// NewBaseVM creates a fully populated BaseVM for a page.
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	mu.RLock()
	defer mu.RUnlock()
	return BaseVM{
		SiteName:    siteName,
		PlatformURL: platformURL,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
	}
}

// FlashNotices converts session flashes into toasts.
func FlashNotices(flashes []auth.Flash) []NoticeVM {
	if len(flashes) == 0 {
		return nil
	}
	out := make([]NoticeVM, 0, len(flashes))
	for _, f := range flashes {
		out = append(out, NoticeVM{Level: f.Level, Text: f.Text})
	}
	return out
}
