// File: pkg/gitrepo/url.go
package gitrepo

import "strings"

const githubHTTPSPrefix = "https://github.com/"

// ConvertHTTPSToSSH rewrites a GitHub HTTPS URL to its SSH equivalent,
// e.g. https://github.com/username/repo → git@github.com:username/repo.git.
// Any other URL is returned unchanged.
func ConvertHTTPSToSSH(url string) string {
	if !strings.HasPrefix(url, githubHTTPSPrefix) {
		return url
	}
	path := strings.TrimRight(strings.TrimPrefix(url, githubHTTPSPrefix), "/")
	if !strings.HasSuffix(path, ".git") {
		path += ".git"
	}
	return "git@github.com:" + path
}

// RepoName extracts the repository name from a clone URL,
// e.g. https://github.com/username/repo.git → repo.
func RepoName(url string) string {
	url = strings.TrimRight(url, "/")
	name := url[strings.LastIndexAny(url, "/:")+1:]
	return strings.TrimSuffix(name, ".git")
}

// IsRemoteURL reports whether the argument looks like a clone URL rather
// than a local path.
func IsRemoteURL(arg string) bool {
	for _, prefix := range []string{"https://", "http://", "ssh://", "git://", "git@"} {
		if strings.HasPrefix(arg, prefix) {
			return true
		}
	}
	return false
}
