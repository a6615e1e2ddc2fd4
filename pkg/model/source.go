// pkg/model/source.go
package model

import "fmt"

// SourceKind names a Source variant for logging and the run ledger
type SourceKind string

const (
	SourceKindLocal  SourceKind = "local"
	SourceKindRemote SourceKind = "remote"
)

// Source describes where the raw dataset comes from. The only
// implementations are LocalSource and RemoteSource.
type Source interface {
	Kind() SourceKind
	// Location is a human readable address, safe to log (no secrets)
	Location() string

	isSource()
}

// LocalSource is a delimited file reachable over HTTP(S)
type LocalSource struct {
	URL string
}

func (LocalSource) Kind() SourceKind { return SourceKindLocal }

func (s LocalSource) Location() string { return s.URL }

func (LocalSource) isSource() {}

// Credentials are the static AWS keys used for the remote source
type Credentials struct {
	AccessKey string
	SecretKey string
}

// Complete reports whether both keys are set
func (c Credentials) Complete() bool {
	return c.AccessKey != "" && c.SecretKey != ""
}

// String never prints the secret
func (c Credentials) String() string {
	if c.AccessKey == "" {
		return "Credentials{<unset>}"
	}
	return fmt.Sprintf("Credentials{AccessKey: %s, SecretKey: <redacted>}", c.AccessKey)
}

// RemoteSource is an object in an S3 bucket
type RemoteSource struct {
	Bucket      string
	Key         string
	Region      string
	Credentials Credentials
}

func (RemoteSource) Kind() SourceKind { return SourceKindRemote }

func (s RemoteSource) Location() string {
	return fmt.Sprintf("s3://%s/%s", s.Bucket, s.Key)
}

func (RemoteSource) isSource() {}
