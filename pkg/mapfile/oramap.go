package mapfile

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// WriteOramap writes a .oramap archive (a deflate zip of map.yaml and
// map.bin) to path, creating parent directories as needed.
func WriteOramap(path string, mapYAML string, mapBin []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating oramap: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	yamlEntry, err := zw.Create("map.yaml")
	if err != nil {
		return fmt.Errorf("adding map.yaml: %w", err)
	}
	if _, err := yamlEntry.Write([]byte(mapYAML)); err != nil {
		return fmt.Errorf("writing map.yaml: %w", err)
	}
	binEntry, err := zw.Create("map.bin")
	if err != nil {
		return fmt.Errorf("adding map.bin: %w", err)
	}
	if _, err := binEntry.Write(mapBin); err != nil {
		return fmt.Errorf("writing map.bin: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing oramap: %w", err)
	}
	return f.Close()
}

// InstallDir picks the OpenRA Red Alert maps directory to install into.
// An explicit dir wins; otherwise a release tag selects
// maps/ra/release-<tag>; otherwise the most recently modified release-*
// directory is used, falling back to the base maps/ra directory.
func InstallDir(explicitDir, releaseTag string) (string, error) {
	if explicitDir != "" {
		return explicitDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	base := filepath.Join(home, "Library", "Application Support", "OpenRA", "maps", "ra")
	if releaseTag != "" {
		return filepath.Join(base, "release-"+releaseTag), nil
	}
	if newest := newestRelease(base); newest != "" {
		return newest, nil
	}
	return base, nil
}

func newestRelease(base string) string {
	entries, err := os.ReadDir(base)
	if err != nil {
		return ""
	}
	type cand struct {
		path string
		mod  int64
	}
	var cands []cand
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), "release-") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		cands = append(cands, cand{path: filepath.Join(base, e.Name()), mod: info.ModTime().UnixNano()})
	}
	if len(cands) == 0 {
		return ""
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].mod > cands[j].mod })
	return cands[0].path
}

// Install copies an .oramap into the chosen OpenRA maps directory and
// returns that directory.
func Install(srcPath, explicitDir, releaseTag string) (string, error) {
	dir, err := InstallDir(explicitDir, releaseTag)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating install directory: %w", err)
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("opening oramap: %w", err)
	}
	defer src.Close()

	dstPath := filepath.Join(dir, filepath.Base(srcPath))
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("creating installed oramap: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("copying oramap: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("flushing installed oramap: %w", err)
	}
	return dir, nil
}
