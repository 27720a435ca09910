package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

const binaryName = "calctutor"

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// UpdateInput selects the update. An empty TargetVersion means the latest
// release.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress reports one stage of Update.
type UpdateProgress struct {
	Stage   string
	Message string
}

// release is one downloadable build of a tagged version.
type release struct {
	tag   string
	asset string
	base  string
}

func (r release) url(file string) string {
	return r.base + "/releases/download/" + r.tag + "/" + file
}

// Update fetches the archive for this platform, verifies it against the
// release checksums.txt and replaces the running executable. progress may
// be nil.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	report := func(stage, format string, args ...any) {
		if progress != nil {
			progress(UpdateProgress{Stage: stage, Message: fmt.Sprintf(format, args...)})
		}
	}

	switch input.CurrentVersion {
	case "", "(devel)":
		return ErrDevBuild
	}

	tag, err := c.resolveTag(ctx, input, report)
	if err != nil {
		return err
	}
	asset, err := assetNameFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}
	rel := release{
		tag:   tag,
		asset: asset,
		base:  strings.TrimRight(c.downloadBaseURL, "/") + "/" + c.owner + "/" + c.repo,
	}

	report("download", "Downloading %s...", tag)
	archive, err := c.fetch(ctx, rel.url(rel.asset))
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	report("verify", "Verifying checksum...")
	sums, err := c.fetch(ctx, rel.url("checksums.txt"))
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, ok := parseChecksums(sums)[rel.asset]
	if !ok {
		return fmt.Errorf("no checksum found for %s in checksums.txt", rel.asset)
	}
	if err := verifyChecksum(archive, want); err != nil {
		return err
	}

	report("extract", "Extracting binary...")
	bin, err := extractBinary(archive, rel.asset)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	report("apply", "Applying update...")
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	if err := replaceExecutable(target, bin); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	report("done", "Updated to %s", tag)
	return nil
}

func (c *Checker) resolveTag(ctx context.Context, input *UpdateInput, report func(string, string, ...any)) (string, error) {
	if input.TargetVersion != "" {
		return input.TargetVersion, nil
	}
	report("check", "Checking for latest version...")
	res, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
	if err != nil {
		return "", fmt.Errorf("check for updates: %w", err)
	}
	if !res.UpdateAvailable {
		return "", ErrAlreadyLatest
	}
	return res.LatestVersion, nil
}

// releaseArch maps GOARCH to the goreleaser archive naming.
var releaseArch = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "i386",
}

func assetNameFor(goos, goarch string) (string, error) {
	if goos == "darwin" {
		return binaryName + "_Darwin_all.tar.gz", nil
	}

	var osName, ext string
	switch goos {
	case "linux":
		osName, ext = "Linux", ".tar.gz"
	case "windows":
		osName, ext = "Windows", ".zip"
	default:
		return "", fmt.Errorf("unsupported operating system: %s", goos)
	}
	arch, ok := releaseArch[goarch]
	if !ok {
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}
	return binaryName + "_" + osName + "_" + arch + ext, nil
}

func (c *Checker) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: HTTP %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// parseChecksums reads "<sha256>  <file>" lines. Anything else is skipped.
func parseChecksums(data []byte) map[string]string {
	sums := make(map[string]string)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if f := strings.Fields(sc.Text()); len(f) == 2 {
			sums[f[1]] = f[0]
		}
	}
	return sums
}

func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func verifyChecksum(data []byte, want string) error {
	if got := sha256Hex(data); !strings.EqualFold(got, want) {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksum, want, got)
	}
	return nil
}

func extractBinary(archive []byte, asset string) ([]byte, error) {
	var (
		data  []byte
		found bool
		err   error
	)
	if strings.HasSuffix(asset, ".zip") {
		data, found, err = readZipEntry(archive, binaryName+".exe")
	} else {
		data, found, err = readTarGzEntry(archive, binaryName)
	}
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("binary %q not found in archive %s", binaryName, asset)
	}
	return data, nil
}

func readTarGzEntry(archive []byte, name string) ([]byte, bool, error) {
	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, false, fmt.Errorf("open gzip: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && path.Base(hdr.Name) == name {
			data, err := io.ReadAll(tr)
			return data, true, err
		}
	}
}

func readZipEntry(archive []byte, name string) ([]byte, bool, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, false, fmt.Errorf("open zip: %w", err)
	}
	for _, f := range zr.File {
		if path.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, false, err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		return data, true, err
	}
	return nil, false, nil
}

// replaceExecutable writes bin next to target and renames it into place,
// keeping target's file mode. The staged copy is re-hashed before the
// rename so a file swapped on disk is never installed.
func replaceExecutable(target string, bin []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}

	staged, err := os.CreateTemp(filepath.Dir(target), "."+binaryName+"-update-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	stagedPath := staged.Name()
	defer os.Remove(stagedPath)

	_, werr := staged.Write(bin)
	if cerr := staged.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("write temp file: %w", werr)
	}

	written, err := os.ReadFile(stagedPath)
	if err != nil {
		return fmt.Errorf("re-read temp file: %w", err)
	}
	if sha256Hex(written) != sha256Hex(bin) {
		return fmt.Errorf("%w: staged binary changed after write", ErrChecksum)
	}

	if err := os.Chmod(stagedPath, info.Mode()); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(stagedPath, target); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
