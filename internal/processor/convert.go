package processor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/linuxfab/compress-picture-to70/internal/imaging"
)

// DefaultConvertDirName is the output folder created under the scan root when
// no explicit output directory is configured.
const DefaultConvertDirName = "webpoutput"

// ConvertDestination mirrors path's location relative to cfg.Root under
// cfg.OutDir, swapping the extension for .webp.
func ConvertDestination(path string, cfg JobConfig) (string, error) {
	rel, err := filepath.Rel(cfg.Root, path)
	if err != nil {
		return "", err
	}
	ext := filepath.Ext(rel)
	rel = strings.TrimSuffix(rel, ext) + imaging.FormatWebP.Extension()
	return filepath.Join(cfg.OutDir, rel), nil
}

// ConvertTransform returns the WebP conversion transform. Unlike recompress
// there is no grew-skip: a different codec's size is not comparable to the
// source, so every written conversion counts as a success.
func ConvertTransform(cfg JobConfig) Transform {
	return func(path string) FileResult {
		dest, err := ConvertDestination(path, cfg)
		if err != nil {
			return failed(path, err)
		}
		if !cfg.Overwrite {
			if _, err := os.Stat(dest); err == nil {
				return FileResult{Path: path, Outcome: OutcomeSkippedExists,
					Message: "exists: " + dest}
			}
		}

		info, err := os.Stat(path)
		if err != nil {
			return failed(path, err)
		}
		originalSize := info.Size()

		if cfg.DryRun {
			return FileResult{Path: path, Outcome: OutcomeSuccess,
				Message: fmt.Sprintf("dry-run: would write %s (%s)", dest, FormatSize(originalSize))}
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return failed(path, err)
		}

		img, _, err := imaging.Decode(data)
		if err != nil {
			return failed(path, err)
		}

		out, err := imaging.Encode(img, imaging.FormatWebP, imaging.EncodeOptions{
			Quality:  cfg.Quality,
			Lossless: cfg.Lossless,
		})
		if err != nil {
			return failed(path, err)
		}

		if cfg.KeepExif {
			if raw, err := imaging.ExtractExif(data); err == nil && raw != nil {
				bounds := img.Bounds()
				spliced, err := imaging.InsertWebPExif(out, raw, bounds.Dx(), bounds.Dy(), imaging.HasAlpha(img))
				if err == nil {
					out = spliced
				}
			}
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return failed(path, err)
		}
		if err := os.WriteFile(dest, out, 0o644); err != nil {
			return failed(path, err)
		}

		return FileResult{Path: path, Outcome: OutcomeSuccess,
			OriginalSize: originalSize,
			OutputSize:   int64(len(out)),
			Message: fmt.Sprintf("wrote %s (%s -> %s)", dest,
				FormatSize(originalSize), FormatSize(int64(len(out))))}
	}
}
