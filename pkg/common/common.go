package common

import (
	"os"
	"strconv"
	"strings"

	"k8s.io/klog/v2"
)

const (
	AppName = "cloud-sentinel-openstack"

	// db connection limits for the audit log store
	DBMaxOpenConns = 20
	DBMaxIdleConns = 5
)

var (
	Port = "8000"
	Host = ""
	Base = ""

	// OpenStack credentials, bound once at startup and reused for
	// every query. Defaults match a local devstack keystone.
	OSAuthURL           = "http://127.0.0.1:5000/v3"
	OSUsername          = "admin"
	OSPassword          = "admin"
	OSProjectName       = "admin"
	OSUserDomainName    = "Default"
	OSProjectDomainName = "Default"

	DBType = "sqlite"
	DBDSN  = "audit.db"

	// QueryLimitMax caps the per-tool `limit` argument.
	QueryLimitMax = 1000

	MCPTransport = "http"

	DisableGZIP         = true
	DisableVersionCheck = false
	DisableAuditLog     = false
)

func LoadEnvs() {
	if v := os.Getenv("PORT"); v != "" {
		Port = v
	}
	if v := os.Getenv("HOST"); v != "" {
		Host = v
	}

	if v := os.Getenv("OS_AUTH_URL"); v != "" {
		OSAuthURL = v
	}
	if v := os.Getenv("OS_USERNAME"); v != "" {
		OSUsername = v
	}
	if v := os.Getenv("OS_PASSWORD"); v != "" {
		OSPassword = v
	} else {
		klog.Warning("OS_PASSWORD is not set, using default credentials, this will not authenticate against a real deployment")
	}
	if v := os.Getenv("OS_PROJECT_NAME"); v != "" {
		OSProjectName = v
	}
	if v := os.Getenv("OS_USER_DOMAIN_NAME"); v != "" {
		OSUserDomainName = v
	}
	if v := os.Getenv("OS_PROJECT_DOMAIN_NAME"); v != "" {
		OSProjectDomainName = v
	}

	if v := os.Getenv("DB_DSN"); v != "" {
		DBDSN = v
	}
	if v := os.Getenv("DB_TYPE"); v != "" {
		if v != "sqlite" && v != "mysql" && v != "postgres" {
			klog.Fatalf("Invalid DB_TYPE: %s, must be one of sqlite, mysql, postgres", v)
		}
		DBType = v
	}

	if v := os.Getenv("QUERY_LIMIT_MAX"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			klog.Fatalf("Invalid QUERY_LIMIT_MAX: %s, must be a positive integer", v)
		}
		QueryLimitMax = n
	}

	if v := os.Getenv("MCP_TRANSPORT"); v != "" {
		if v != "http" && v != "stdio" {
			klog.Fatalf("Invalid MCP_TRANSPORT: %s, must be http or stdio", v)
		}
		MCPTransport = v
	}

	if v := os.Getenv("DISABLE_GZIP"); v != "" {
		DisableGZIP = v == "true"
	}
	if v := os.Getenv("DISABLE_VERSION_CHECK"); v == "true" {
		DisableVersionCheck = true
	}
	if v := os.Getenv("DISABLE_AUDIT_LOG"); v == "true" {
		DisableAuditLog = true
	}

	if v := os.Getenv("CLOUD_SENTINEL_OS_BASE"); v != "" {
		if v[0] != '/' {
			v = "/" + v
		}
		Base = strings.TrimRight(v, "/")
		klog.Infof("Using base path: %s", Base)
	}
}
