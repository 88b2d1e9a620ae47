// Package inspect renders cube events, protocol log records and version
// manifests as text for the command line tools.
package inspect
