package image

import (
	"archive/tar"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExcluded(t *testing.T) {
	ignore := []string{".next", "node_modules", ".git", "deployments"}

	testCases := []struct {
		path     string
		excluded bool
	}{
		{"package.json", false},
		{"src/app/page.tsx", false},
		{"node_modules/react/index.js", true},
		{"src/vendor/node_modules/x.js", true},
		{".git/HEAD", true},
		{".next/BUILD_ID", true},
		{"deployments/dataset-viewer.yml", true},
		{"nextish/file.ts", false},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.excluded, Excluded(testCase.path, ignore), testCase.path)
	}
}

func TestBuildContextSkipsIgnoredPaths(t *testing.T) {
	srcDir, err := ioutil.TempDir("", "build-context")
	require.NoError(t, err)
	defer os.RemoveAll(srcDir)

	files := map[string]string{
		"package.json":                   `{"name":"dataset-viewer"}`,
		"src/page.tsx":                   "export default {}",
		"node_modules/react/index.js":    "module.exports = {}",
		".git/HEAD":                      "ref: refs/heads/main",
		".next/BUILD_ID":                 "abc",
		"deployments/dataset-viewer.yml": "name: dataset-viewer",
	}

	for name, content := range files {
		path := filepath.Join(srcDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	}

	dockerfile := "FROM debian:bookworm-slim\n"
	ignore := []string{".next", "node_modules", ".git", "deployments"}

	contextReader, err := BuildContext(srcDir, dockerfile, ignore)
	require.NoError(t, err)

	entries := readTarEntries(t, contextReader)

	assert.Equal(t, dockerfile, entries[DockerfileName])
	assert.Contains(t, entries, "package.json")
	assert.Contains(t, entries, "src/page.tsx")

	assert.NotContains(t, entries, "node_modules/react/index.js")
	assert.NotContains(t, entries, ".git/HEAD")
	assert.NotContains(t, entries, ".next/BUILD_ID")
	assert.NotContains(t, entries, "deployments/dataset-viewer.yml")
}

func TestBuildContextInjectedDockerfileWins(t *testing.T) {
	srcDir, err := ioutil.TempDir("", "build-context")
	require.NoError(t, err)
	defer os.RemoveAll(srcDir)

	require.NoError(t, ioutil.WriteFile(filepath.Join(srcDir, DockerfileName), []byte("FROM scratch\n"), 0644))

	dockerfile := "FROM debian:bookworm-slim\n"

	contextReader, err := BuildContext(srcDir, dockerfile, nil)
	require.NoError(t, err)

	entries := readTarEntries(t, contextReader)

	assert.Equal(t, dockerfile, entries[DockerfileName])
}

func readTarEntries(t *testing.T, r io.Reader) map[string]string {
	entries := map[string]string{}

	tr := tar.NewReader(r)

	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		content, err := ioutil.ReadAll(tr)
		require.NoError(t, err)

		entries[header.Name] = string(content)
	}

	return entries
}
