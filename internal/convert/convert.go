// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert merges directories of page images into PDF files and
// drives a batch run over a scan root.
package convert

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/manga-binder/internal/naming"
	"github.com/pdiddy/manga-binder/internal/pages"
	"github.com/pdiddy/manga-binder/internal/scan"
	"github.com/pdiddy/manga-binder/pkg/types"
)

// PageLoader decodes one page image and returns it as opaque RGB.
type PageLoader interface {
	Load(path string) (image.Image, error)
}

// PageWriter writes encoded page images, in order, as a single PDF.
type PageWriter interface {
	WritePDF(w io.Writer, pages []io.Reader) error
}

// Converter turns image directories into PDFs. Loader and Writer are
// injected so tests can replace decoding and PDF output.
type Converter struct {
	Loader     PageLoader
	Writer     PageWriter
	Extensions []string
	Quality    int
}

// NewConverter returns a Converter backed by the JPEG/WebP decoder and
// the pdfcpu writer.
func NewConverter(cfg types.BinderConfig) *Converter {
	return &Converter{
		Loader:     pages.Decoder{},
		Writer:     NewPdfcpuWriter(),
		Extensions: cfg.Extensions,
		Quality:    cfg.JPEGQuality,
	}
}

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int

	// Results holds one entry per discovered directory, in processing order.
	Results []types.ConversionResult
}

// Total returns the number of directories processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any collection failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// AnySucceeded reports whether at least one PDF was written.
func (r BatchResult) AnySucceeded() bool {
	return r.Converted > 0
}

func (r *BatchResult) add(res types.ConversionResult) {
	r.Results = append(r.Results, res)
	switch {
	case res.OK():
		r.Converted++
	case res.Reason == types.ReasonNoImages:
		r.Skipped++
	default:
		r.Failed++
	}
}

// ConvertCollection merges the images in col.Dir into col.OutputPath.
//
// Images are taken in plain byte order of their file names. Any image that
// cannot be decoded aborts the collection. The PDF is written to a
// temporary file next to the output and renamed into place, so a failed
// run never leaves a partial PDF at OutputPath. An existing PDF is
// overwritten.
func (c *Converter) ConvertCollection(col types.Collection, w io.Writer) types.ConversionResult {
	res := types.ConversionResult{Collection: col, Status: types.ConversionFailed}

	files, err := scan.ListImages(col.Dir, c.Extensions)
	if err != nil || len(files) == 0 {
		if err == nil {
			err = fmt.Errorf("no images matching %v in %s", c.Extensions, col.Dir)
		}
		fmt.Fprintf(w, "skipped: %s (%v)\n", col.Name, err)
		res.Reason = types.ReasonNoImages
		res.Err = err
		return res
	}
	res.Files = files

	fmt.Fprintf(w, "processing: %s\n", col.Dir)
	fmt.Fprintf(w, "found %d images\n", len(files))

	encoded := make([]io.Reader, 0, len(files))
	for _, f := range files {
		img, err := c.Loader.Load(f)
		if err != nil {
			fmt.Fprintf(w, "error: %s: %v\n", filepath.Base(f), err)
			fmt.Fprintf(w, "failed:  %s (%v)\n", col.Name, err)
			res.Reason = types.ReasonDecode
			res.Err = err
			return res
		}
		// Re-encoding is the first half of writing the PDF, so its
		// failures count as write failures.
		var buf bytes.Buffer
		if err := pages.Encode(&buf, img, c.Quality); err != nil {
			fmt.Fprintf(w, "error: %s: %v\n", filepath.Base(f), err)
			fmt.Fprintf(w, "failed:  %s (encoding page: %v)\n", col.Name, err)
			res.Reason = types.ReasonWrite
			res.Err = err
			return res
		}
		encoded = append(encoded, &buf)
	}

	if err := writeFileAtomic(col.OutputPath, func(out io.Writer) error {
		return c.Writer.WritePDF(out, encoded)
	}); err != nil {
		fmt.Fprintf(w, "failed:  %s (saving PDF: %v)\n", col.Name, err)
		res.Reason = types.ReasonWrite
		res.Err = err
		return res
	}

	res.Status = types.ConversionDone
	res.Pages = len(encoded)
	fmt.Fprintf(w, "converted: %s -> %s (%d pages)\n", col.Name, col.OutputPath, res.Pages)
	return res
}

// Run scans root for image directories, names each collection, and
// converts it to <root>/<name>.pdf. Failures are reported to w and
// counted; they never stop the run. Cancelling ctx stops the run before
// the next collection starts.
func (c *Converter) Run(ctx context.Context, root string, w io.Writer) BatchResult {
	var result BatchResult

	dirs := scan.FindImageDirectories(root, c.Extensions)
	if len(dirs) == 0 {
		fmt.Fprintf(w, "no directories with supported images under %s\n", root)
		return result
	}
	fmt.Fprintf(w, "found %d directories with images\n", len(dirs))

	written := make(map[string]string)
	for i, dir := range dirs {
		if err := ctx.Err(); err != nil {
			fmt.Fprintf(w, "\ninterrupted: %d directories not processed (%v)\n", len(dirs)-i, err)
			break
		}

		name, err := naming.ResolveName(dir, root)
		if err != nil {
			fmt.Fprintf(w, "\nfailed:  %s (%v)\n", dir, err)
			result.add(types.ConversionResult{
				Collection: types.Collection{Dir: dir},
				Status:     types.ConversionFailed,
				Reason:     types.ReasonName,
				Err:        err,
			})
			continue
		}

		col := types.Collection{
			Dir:        dir,
			Name:       name,
			OutputPath: filepath.Join(root, name+".pdf"),
		}

		fmt.Fprintf(w, "\ncollection: %s\n", name)
		if prev, ok := written[col.OutputPath]; ok {
			fmt.Fprintf(w, "warning: %s was already written from %s and will be overwritten\n",
				filepath.Base(col.OutputPath), prev)
		}

		res := c.ConvertCollection(col, w)
		if res.OK() {
			written[col.OutputPath] = dir
		}
		result.add(res)
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// writeFileAtomic writes path through a temporary file in the same
// directory. The temporary file is removed if fill or the rename fails.
func writeFileAtomic(path string, fill func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := fill(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions on %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming %s to %s: %w", tmpPath, path, err)
	}
	return nil
}
