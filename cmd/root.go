package cmd

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"darkiv/converter"
	"darkiv/converter/preflight"
)

var (
	assemblerName string
	skipPreflight bool
	quiet         bool
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "darkiv <input.pdf> [output.pdf]",
	Short: "Convert PDFs to dark mode",
	Long: `A CLI tool that converts a PDF into a dark mode version for
comfortable low-light reading.

Each page is rasterized with pdftocairo, color-inverted with
ImageMagick, and the inverted pages are packed back into a single PDF.`,
	Args: cobra.RangeArgs(1, 2),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		switch {
		case verbose:
			logrus.SetLevel(logrus.DebugLevel)
		case quiet:
			logrus.SetLevel(logrus.WarnLevel)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		// Validate input file exists
		if _, err := os.Stat(inputFile); os.IsNotExist(err) {
			return fmt.Errorf("input file does not exist: %s", inputFile)
		}

		outputFile := converter.DefaultOutputPath(inputFile)
		if len(args) == 2 {
			outputFile = args[1]
		}

		if !skipPreflight {
			if err := preflight.Check(preflight.Required(assemblerName)); err != nil {
				return err
			}
		}

		opts := converter.Options{
			InputFile:  inputFile,
			OutputFile: outputFile,
			Assembler:  assemblerName,
			Progress:   progressReporter(),
		}

		if err := converter.Convert(opts); err != nil {
			return fmt.Errorf("conversion failed: %w", err)
		}

		fmt.Printf("created successfully: %s\n", outputFile)
		return nil
	},
}

// progressReporter adapts the pipeline's (current, total) events to a
// terminal progress bar. The bar is created on the first event so
// nothing is drawn when the page count is unknown.
func progressReporter() converter.Progress {
	var bar *progressbar.ProgressBar
	return func(current, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("inverting pages"),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(30),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "=",
					SaucerHead:    ">",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		_ = bar.Set(current)
	}
}

// SetVersionInfo wires the build metadata into cobra's version output
func SetVersionInfo(version, buildTime, gitCommit string) {
	rootCmd.Version = fmt.Sprintf("%s (built %s, commit %s)", version, buildTime, gitCommit)
}

func init() {
	rootCmd.Flags().StringVar(&assemblerName, "assembler", converter.AssemblerImg2pdf, "PDF assembler: 'img2pdf' or 'pdfcpu'")
	rootCmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Skip the external tool check before converting")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print the progress bar and the output path")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log every external tool invocation")
	rootCmd.AddCommand(doctorCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
