// Package acquire resolves the WordNet LMF XML file the importer will
// parse: either a local path supplied by the operator, or a fresh
// download from the canonical source URL, decompressed from gzip into
// a scratch directory.
package acquire

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
)

// ErrAcquisitionFailed is the sentinel for every fatal failure in this
// package: network errors, gzip corruption, or a missing local file.
var ErrAcquisitionFailed = errors.New("acquire: acquisition failed")

// Result describes where the resolved XML file lives and how to clean
// up after the importer is done with it.
type Result struct {
	XMLPath string
	cleanup func() error
}

// Close removes any scratch directory created for a downloaded file.
// It is a no-op when the XML path was supplied directly by the caller.
func (r Result) Close() error {
	if r.cleanup == nil {
		return nil
	}
	return r.cleanup()
}

// Resolve returns a local path to a WordNet LMF XML file. If xmlPath is
// non-empty it is used as-is (must already exist). Otherwise sourceURL
// is downloaded into a temporary directory and gunzipped.
func Resolve(ctx context.Context, xmlPath, sourceURL string, log *slog.Logger) (Result, error) {
	if log == nil {
		log = slog.Default()
	}

	if xmlPath != "" {
		if _, err := os.Stat(xmlPath); err != nil {
			return Result{}, fmt.Errorf("%w: local xml path %q: %v", ErrAcquisitionFailed, xmlPath, err)
		}
		return Result{XMLPath: xmlPath}, nil
	}

	scratchDir, err := os.MkdirTemp("", "wordnet-importer-*")
	if err != nil {
		return Result{}, fmt.Errorf("%w: create scratch dir: %v", ErrAcquisitionFailed, err)
	}
	cleanup := func() error { return os.RemoveAll(scratchDir) }

	log.Info("downloading wordnet source", slog.String("url", sourceURL))
	gzPath, err := download(ctx, sourceURL, scratchDir, log)
	if err != nil {
		cleanup()
		return Result{}, err
	}

	log.Info("decompressing wordnet archive")
	xmlOut := filepath.Join(scratchDir, "wordnet.xml")
	if err := decompress(gzPath, xmlOut); err != nil {
		cleanup()
		return Result{}, err
	}

	return Result{XMLPath: xmlOut, cleanup: cleanup}, nil
}

func download(ctx context.Context, url, destDir string, log *slog.Logger) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrAcquisitionFailed, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: download %s: %v", ErrAcquisitionFailed, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: download %s: status %s", ErrAcquisitionFailed, url, resp.Status)
	}

	destPath := filepath.Join(destDir, "wordnet.xml.gz")
	out, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("%w: create %s: %v", ErrAcquisitionFailed, destPath, err)
	}
	defer out.Close()

	bar := progressbar.DefaultBytes(resp.ContentLength, "downloading")
	if err := copyChunked(ctx, io.MultiWriter(out, bar), resp.Body); err != nil {
		return "", fmt.Errorf("%w: write %s: %v", ErrAcquisitionFailed, destPath, err)
	}

	log.Debug("download complete", slog.String("path", destPath), slog.Int64("bytes", resp.ContentLength))
	return destPath, nil
}

// copyChunked copies src to dst in fixed-size chunks, checking ctx for
// cancellation between each one so a signal-triggered shutdown aborts a
// multi-gigabyte download promptly instead of running it to completion.
func copyChunked(ctx context.Context, dst io.Writer, src io.Reader) error {
	buf := make([]byte, 32*1024)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, readErr := src.Read(buf)
		if n > 0 {
			if _, writeErr := dst.Write(buf[:n]); writeErr != nil {
				return writeErr
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}

func decompress(gzPath, xmlPath string) error {
	in, err := os.Open(gzPath)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrAcquisitionFailed, gzPath, err)
	}
	defer in.Close()

	gr, err := gzip.NewReader(in)
	if err != nil {
		return fmt.Errorf("%w: gzip reader for %s: %v", ErrAcquisitionFailed, gzPath, err)
	}
	defer gr.Close()

	out, err := os.Create(xmlPath)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrAcquisitionFailed, xmlPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, gr); err != nil {
		return fmt.Errorf("%w: decompress into %s: %v", ErrAcquisitionFailed, xmlPath, err)
	}

	return nil
}
