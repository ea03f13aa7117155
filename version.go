package htlc

// release is bumped by hand when tagging.
const release = "v0.1.0-dev"

// GitCommit is filled in at link time:
//
//	go build -ldflags "-X github.com/iov-one/htlc.GitCommit=$(git rev-parse --short HEAD)"
var GitCommit = ""

// Version returns the release, followed by the commit when known.
func Version() string {
	if GitCommit == "" {
		return release
	}
	return release + " " + GitCommit
}
