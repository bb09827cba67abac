package cmd

import (
	"github.com/spf13/cobra"

	"github.com/linuxfab/compress-picture-to70/internal/processor"
)

var (
	compressQuality   int
	compressOutputDir string
	compressOverwrite bool
	compressKeepExif  bool
	compressWorkers   int
	compressDryRun    bool
	compressMaxDepth  int
	compressMinSize   string
	compressMaxSize   string
)

var compressExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".bmp"}

var compressCmd = &cobra.Command{
	Use:   "compress [flags] [dir]",
	Short: "Recompress images in place at a target quality",
	Long: "Walks the directory tree and re-encodes each image in its own format " +
		"at the target quality, writing the result next to the source with a " +
		"_<quality>% filename suffix (or into --output, mirroring the tree). " +
		"Results that would be larger than the source are discarded.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDirectory(args)
		if err != nil {
			return err
		}

		minSize, err := parseSizeFlag("min-size", compressMinSize)
		if err != nil {
			return err
		}
		maxSize, err := parseSizeFlag("max-size", compressMaxSize)
		if err != nil {
			return err
		}

		cfg := processor.JobConfig{
			Root:       dir,
			OutDir:     compressOutputDir,
			Quality:    compressQuality,
			KeepExif:   compressKeepExif,
			Overwrite:  compressOverwrite,
			DryRun:     compressDryRun,
			Workers:    compressWorkers,
			MaxDepth:   compressMaxDepth,
			MinSize:    minSize,
			MaxSize:    maxSize,
			Extensions: compressExtensions,
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		results, err := runJob("pic70 compress", cfg, processor.CompressTransform(cfg))
		if err != nil {
			return err
		}

		printRunReport(results, "Compressed")
		return nil
	},
}

func init() {
	compressCmd.Flags().IntVarP(&compressQuality, "quality", "q", 70, "re-encode quality 1-100")
	compressCmd.Flags().StringVarP(&compressOutputDir, "output", "o", "", "write into this directory, mirroring the tree (default: in place)")
	compressCmd.Flags().BoolVar(&compressOverwrite, "overwrite", false, "overwrite existing output files")
	compressCmd.Flags().BoolVar(&compressKeepExif, "keep-exif", false, "carry EXIF metadata over to the output")
	compressCmd.Flags().IntVarP(&compressWorkers, "workers", "w", processor.DefaultWorkers, "parallel workers")
	compressCmd.Flags().BoolVarP(&compressDryRun, "dry-run", "n", false, "report intended actions without writing anything")
	compressCmd.Flags().IntVarP(&compressMaxDepth, "max-depth", "d", -1, "max directory depth (0 = no subdirectories, -1 = unlimited)")
	compressCmd.Flags().StringVar(&compressMinSize, "min-size", "", "only process files at least this large (e.g. 500KB)")
	compressCmd.Flags().StringVar(&compressMaxSize, "max-size", "", "only process files at most this large (e.g. 10MB)")

	rootCmd.AddCommand(compressCmd)
}
