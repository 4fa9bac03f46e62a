package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"pdftools/pkg/document"
	"pdftools/pkg/model"
)

type documentOpts struct {
	input  string
	output string
}

func (o *documentOpts) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.input, "input", "", "Document to process")
	cmd.Flags().StringVar(&o.output, "output", "", "Where to write the result. Defaults to the generated file name next to the input")
	MarkFlagsRequired(cmd, "input")
}

func compressCommand(global *globalOpts) *cobra.Command {
	opts := documentOpts{}
	var quality string

	command := &cobra.Command{
		Use:     "compress",
		Short:   "Compress a PDF with Ghostscript",
		Example: "pdftools compress --input report.pdf --quality low",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := document.ParseQuality(quality)
			if err != nil {
				return err
			}
			return processDocument(cmd, global, opts, "Compressing ", func(ctx context.Context, p *document.Processor, in model.InputFile) (*document.Result, error) {
				return p.Compress(ctx, in, q)
			})
		},
	}

	opts.addFlags(command)
	command.Flags().StringVar(&quality, "quality", string(document.DefaultQuality), "Compression quality. Options are low, medium, high, maximum")
	return command
}

func lockCommand(global *globalOpts) *cobra.Command {
	opts := documentOpts{}
	lockOpts := document.LockOptions{}

	command := &cobra.Command{
		Use:     "lock",
		Short:   "Password protect a PDF",
		Example: "pdftools lock --input contract.pdf --password secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			return processDocument(cmd, global, opts, "Encrypting ", func(ctx context.Context, p *document.Processor, in model.InputFile) (*document.Result, error) {
				return p.Lock(ctx, in, lockOpts)
			})
		},
	}

	opts.addFlags(command)
	command.Flags().StringVar(&lockOpts.UserPassword, "password", "", "Password needed to open the PDF")
	command.Flags().StringVar(&lockOpts.OwnerPassword, "owner-password", "", "Password granting full permissions. Defaults to --password")
	MarkFlagsRequired(command, "password")
	return command
}

func unlockCommand(global *globalOpts) *cobra.Command {
	opts := documentOpts{}
	var password string

	command := &cobra.Command{
		Use:     "unlock",
		Short:   "Remove the password from a PDF",
		Example: "pdftools unlock --input locked_contract.pdf --password secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			return processDocument(cmd, global, opts, "Decrypting ", func(ctx context.Context, p *document.Processor, in model.InputFile) (*document.Result, error) {
				return p.Unlock(ctx, in, password)
			})
		},
	}

	opts.addFlags(command)
	command.Flags().StringVar(&password, "password", "", "Password of the PDF")
	MarkFlagsRequired(command, "password")
	return command
}

func convertCommand(global *globalOpts) *cobra.Command {
	opts := documentOpts{}
	var engine string

	command := &cobra.Command{
		Use:     "convert",
		Short:   "Convert a PDF to DOCX or a DOCX to PDF, depending on the input extension",
		Example: "pdftools convert --input scan.pdf --engine pdf2docx",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := document.ParseEngine(engine)
			switch strings.ToLower(filepath.Ext(opts.input)) {
			case document.FormatPDF.Extension:
				return processDocument(cmd, global, opts, "Converting to DOCX ", func(ctx context.Context, p *document.Processor, in model.InputFile) (*document.Result, error) {
					return p.PdfToDocx(ctx, in, e)
				})
			case document.FormatDOCX.Extension:
				return processDocument(cmd, global, opts, "Converting to PDF ", func(ctx context.Context, p *document.Processor, in model.InputFile) (*document.Result, error) {
					return p.DocxToPdf(ctx, in, e)
				})
			}
			return fmt.Errorf("%w: can only convert .pdf and .docx files", document.ErrInvalidInput)
		},
	}

	opts.addFlags(command)
	command.Flags().StringVar(&engine, "engine", string(document.EngineAuto), "Conversion engine. auto tries every installed engine in order of preference")
	return command
}

type operationFunc func(ctx context.Context, p *document.Processor, in model.InputFile) (*document.Result, error)

func processDocument(cmd *cobra.Command, global *globalOpts, opts documentOpts, progress string, operation operationFunc) error {
	processor, err := global.newProcessor()
	if err != nil {
		return err
	}

	f, err := os.Open(opts.input)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	s := NewSpinner()
	s.Writer = cmd.ErrOrStderr()
	s.Prefix = progress
	s.Start()
	result, err := operation(cmd.Context(), processor, model.InputFile{Name: filepath.Base(opts.input), Content: f, Size: info.Size()})
	s.Stop()
	if err != nil {
		return err
	}

	outputPath := opts.output
	if outputPath == "" {
		outputPath = filepath.Join(filepath.Dir(opts.input), result.File.Name)
	}
	if err = os.WriteFile(outputPath, result.File.Content, 0664); err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), outputPath, result.Stats)
	return nil
}

func printResult(w io.Writer, outputPath string, stats model.ProcessStats) {
	fmt.Fprintf(w, "Wrote %s (%s -> %s", outputPath, humanize.Bytes(uint64(stats.InputSize)), humanize.Bytes(uint64(stats.OutputSize)))
	if stats.Engine != "" {
		fmt.Fprintf(w, ", engine %s", stats.Engine)
	}
	fmt.Fprintf(w, ", took %s)\n", stats.Total.Round(time.Millisecond))
}
