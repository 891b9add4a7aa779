package image

import (
	"archive/tar"
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// BuildContext packs the source directory into a tar stream usable as a
// docker build context, with the rendered Dockerfile injected at the root.
// Paths with any element matching an ignore pattern never enter the
// context (build artifacts, dependency caches, version control metadata,
// the descriptor's own directory).
func BuildContext(srcDir, dockerfile string, ignore []string) (io.Reader, error) {
	buf := new(bytes.Buffer)
	tw := tar.NewWriter(buf)

	err := tw.WriteHeader(&tar.Header{
		Name: DockerfileName,
		Mode: 0644,
		Size: int64(len(dockerfile)),
	})
	if err != nil {
		return nil, errors.Wrap(err, "writing dockerfile header")
	}

	_, err = tw.Write([]byte(dockerfile))
	if err != nil {
		return nil, errors.Wrap(err, "writing dockerfile")
	}

	err = filepath.Walk(srcDir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		relPath, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}

		if relPath == "." {
			return nil
		}

		if Excluded(relPath, ignore) {
			if info.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		// the injected Dockerfile wins over any checked-in one
		if relPath == DockerfileName {
			return nil
		}

		if info.IsDir() {
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		fileBytes, err := ioutil.ReadFile(path)
		if err != nil {
			return err
		}

		err = tw.WriteHeader(&tar.Header{
			Name: filepath.ToSlash(relPath),
			Mode: int64(info.Mode().Perm()),
			Size: int64(len(fileBytes)),
		})
		if err != nil {
			return err
		}

		_, err = tw.Write(fileBytes)

		return err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "packing build context from %s", srcDir)
	}

	err = tw.Close()
	if err != nil {
		return nil, errors.Wrap(err, "closing build context")
	}

	return buf, nil
}

// Excluded reports whether relPath matches the ignore list. A path is
// excluded when any of its elements matches an ignore pattern, so entries
// like node_modules apply at any depth.
func Excluded(relPath string, ignore []string) bool {
	elements := strings.Split(filepath.ToSlash(relPath), "/")

	for _, element := range elements {
		for _, pattern := range ignore {
			matched, err := filepath.Match(pattern, element)
			if err != nil {
				continue
			}

			if matched {
				return true
			}
		}
	}

	return false
}
