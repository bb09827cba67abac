package processor

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/linuxfab/compress-picture-to70/internal/imaging"
	"github.com/linuxfab/compress-picture-to70/pkg/imgutil"
)

// Matches a previous quality token at the end of a filename stem, so a file
// named photo_50%.jpg re-run at quality 80 becomes photo_80%.jpg.
var qualitySuffixRe = regexp.MustCompile(`_\d{1,3}%$`)

// CompressDestination computes where the recompressed copy of path goes: the
// source directory (or the OutDir mirror of it) with a _<quality>% token
// inserted before the extension.
func CompressDestination(path string, cfg JobConfig) (string, error) {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	stem = qualitySuffixRe.ReplaceAllString(stem, "")
	name := fmt.Sprintf("%s_%d%%%s", stem, cfg.Quality, ext)

	if cfg.OutDir == "" {
		return filepath.Join(filepath.Dir(path), name), nil
	}

	rel, err := filepath.Rel(cfg.Root, path)
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg.OutDir, filepath.Dir(rel), name), nil
}

// CompressTransform returns the recompress-in-place transform: decode, re-encode
// in the same format at cfg.Quality, and keep the result only if it is
// actually smaller than the source.
func CompressTransform(cfg JobConfig) Transform {
	return func(path string) FileResult {
		dest, err := CompressDestination(path, cfg)
		if err != nil {
			return failed(path, err)
		}
		if dest == path {
			return FileResult{Path: path, Outcome: OutcomeSkippedExists,
				Message: fmt.Sprintf("already carries the _%d%% suffix", cfg.Quality)}
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
			// No byte totals on a preview: nothing was written, so the
			// summary must not report savings.
			return FileResult{Path: path, Outcome: OutcomeSuccess,
				Message: fmt.Sprintf("dry-run: would write %s (%s)", dest, FormatSize(originalSize))}
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return failed(path, err)
		}

		out, err := recompress(data, cfg)
		if err != nil {
			return failed(path, err)
		}

		if int64(len(out)) >= originalSize {
			return FileResult{Path: path, Outcome: OutcomeSkippedGrew,
				Message: fmt.Sprintf("re-encode would grow %s -> %s",
					FormatSize(originalSize), FormatSize(int64(len(out))))}
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
			Message:      "wrote " + dest}
	}
}

// recompress re-encodes an image in its own (sniffed) format.
func recompress(data []byte, cfg JobConfig) ([]byte, error) {
	kind, err := imgutil.SniffBytes(data)
	if err != nil {
		return nil, err
	}
	format := formatForKind(kind)
	if format == imaging.FormatUnknown {
		return nil, fmt.Errorf("unrecognized image content (%s)", kind)
	}

	img, _, err := imaging.Decode(data)
	if err != nil {
		return nil, err
	}

	out, err := imaging.Encode(img, format, imaging.EncodeOptions{Quality: cfg.Quality})
	if err != nil {
		return nil, err
	}

	// EXIF carry-over is best effort; a source without EXIF stays without.
	// PNG and BMP containers do not carry EXIF here.
	if cfg.KeepExif {
		if raw, err := imaging.ExtractExif(data); err == nil && raw != nil {
			switch format {
			case imaging.FormatJPEG:
				if spliced, err := imaging.InsertJPEGExif(out, raw); err == nil {
					out = spliced
				}
			case imaging.FormatWebP:
				bounds := img.Bounds()
				spliced, err := imaging.InsertWebPExif(out, raw, bounds.Dx(), bounds.Dy(), imaging.HasAlpha(img))
				if err == nil {
					out = spliced
				}
			}
		}
	}

	return out, nil
}

func formatForKind(kind imgutil.Kind) imaging.Format {
	switch kind {
	case imgutil.KindJPEG:
		return imaging.FormatJPEG
	case imgutil.KindPNG:
		return imaging.FormatPNG
	case imgutil.KindWebP:
		return imaging.FormatWebP
	case imgutil.KindBMP:
		return imaging.FormatBMP
	default:
		return imaging.FormatUnknown
	}
}

func failed(path string, err error) FileResult {
	return FileResult{Path: path, Outcome: OutcomeFailed, Message: err.Error()}
}
