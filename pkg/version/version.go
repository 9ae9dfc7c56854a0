package version

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/blang/semver/v4"
	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"
)

// Set via -ldflags at build time.
var (
	Version   = "dev"
	BuildDate = "unknown"
	CommitID  = "unknown"
)

const releaseURL = "https://api.github.com/repos/pixelvide/cloud-sentinel-openstack/releases/latest"

func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":   Version,
		"buildDate": BuildDate,
		"commitId":  CommitID,
	})
}

// CheckLatestRelease compares the running version against the latest
// published release and logs when an update is available. Best effort;
// never fails startup.
func CheckLatestRelease() {
	current, err := semver.ParseTolerant(Version)
	if err != nil {
		klog.V(1).Infof("Skipping version check for non-release build %q", Version)
		return
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(releaseURL)
	if err != nil {
		klog.V(1).Infof("Version check failed: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		klog.V(1).Infof("Version check failed: unexpected status %d", resp.StatusCode)
		return
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		klog.V(1).Infof("Version check failed: %v", err)
		return
	}

	latest, err := semver.ParseTolerant(strings.TrimPrefix(release.TagName, "v"))
	if err != nil {
		klog.V(1).Infof("Version check failed: cannot parse tag %q", release.TagName)
		return
	}
	if latest.GT(current) {
		klog.Infof("A newer release is available: %s (running %s)", release.TagName, Version)
	}
}
