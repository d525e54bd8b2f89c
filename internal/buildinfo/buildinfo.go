// Package buildinfo carries values stamped in at link time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/doclocker/internal/buildinfo.buildVersion=v1.0.0 \
//	  -X github.com/dmitrijs2005/doclocker/internal/buildinfo.buildDate=2025-06-01 \
//	  -X github.com/dmitrijs2005/doclocker/internal/buildinfo.buildCommit=abc123" ./cmd/doclocker
package buildinfo

import (
	"fmt"
	"io"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// PrintBuildData writes version, date and commit to w, "N/A" for unset values.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", orNA(buildVersion))
	fmt.Fprintf(w, "Build date: %s\n", orNA(buildDate))
	fmt.Fprintf(w, "Build commit: %s\n", orNA(buildCommit))
}
