package cmd

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linuxfab/compress-picture-to70/internal/imaging"
	"github.com/linuxfab/compress-picture-to70/internal/processor"
)

var (
	convertQuality   int
	convertLossless  bool
	convertOutputDir string
	convertOverwrite bool
	convertKeepExif  bool
	convertWorkers   int
	convertDryRun    bool
	convertMaxDepth  int
	convertMinSize   string
	convertMaxSize   string
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] [dir]",
	Short: "Convert images to WebP into a mirrored output tree",
	Long: "Walks the directory tree and converts each image to WebP, mirroring " +
		"the source structure under " + processor.DefaultConvertDirName + " (or --output).",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDirectory(args)
		if err != nil {
			return err
		}

		minSize, err := parseSizeFlag("min-size", convertMinSize)
		if err != nil {
			return err
		}
		maxSize, err := parseSizeFlag("max-size", convertMaxSize)
		if err != nil {
			return err
		}

		cfg := processor.JobConfig{
			Root:       dir,
			OutDir:     convertOutputDir,
			Quality:    convertQuality,
			Lossless:   convertLossless,
			KeepExif:   convertKeepExif,
			Overwrite:  convertOverwrite,
			DryRun:     convertDryRun,
			Workers:    convertWorkers,
			MaxDepth:   convertMaxDepth,
			MinSize:    minSize,
			MaxSize:    maxSize,
			Extensions: convertExtensions(),
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if cfg.OutDir == "" {
			cfg.OutDir = filepath.Join(cfg.Root, processor.DefaultConvertDirName)
		}

		results, err := runJob("pic70 convert", cfg, processor.ConvertTransform(cfg))
		if err != nil {
			return err
		}

		printRunReport(results, "Converted")
		return nil
	},
}

// convertExtensions is the input set for conversion: everything the compiled-in
// decoders accept except WebP itself. HEIC/AVIF appear only when their
// decoders are present.
func convertExtensions() []string {
	var exts []string
	for _, ext := range imaging.InputExtensions() {
		if strings.EqualFold(ext, ".webp") {
			continue
		}
		exts = append(exts, ext)
	}
	return exts
}

func init() {
	convertCmd.Flags().IntVarP(&convertQuality, "quality", "q", 80, "WebP quality 1-100")
	convertCmd.Flags().BoolVar(&convertLossless, "lossless", false, "lossless WebP (quality is ignored)")
	convertCmd.Flags().StringVarP(&convertOutputDir, "output", "o", "", "output directory (default: "+processor.DefaultConvertDirName+" under the source root)")
	convertCmd.Flags().BoolVar(&convertOverwrite, "overwrite", false, "overwrite existing output files")
	convertCmd.Flags().BoolVar(&convertKeepExif, "keep-exif", false, "carry EXIF metadata over to the output")
	convertCmd.Flags().IntVarP(&convertWorkers, "workers", "w", processor.DefaultWorkers, "parallel workers")
	convertCmd.Flags().BoolVarP(&convertDryRun, "dry-run", "n", false, "report intended actions without writing anything")
	convertCmd.Flags().IntVarP(&convertMaxDepth, "max-depth", "d", -1, "max directory depth (0 = no subdirectories, -1 = unlimited)")
	convertCmd.Flags().StringVar(&convertMinSize, "min-size", "", "only process files at least this large (e.g. 500KB)")
	convertCmd.Flags().StringVar(&convertMaxSize, "max-size", "", "only process files at most this large (e.g. 10MB)")

	rootCmd.AddCommand(convertCmd)
}
