package document

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pdftools/internal/toolchain"
	"pdftools/pkg/model"
)

const (
	MinPasswordLength = 4

	// Print and copy are allowed, modification and annotation are not
	lockedPermissions = "-3904"
)

var (
	// Ghostscript has no exit status dedicated to bad passwords, so its log wording is matched.
	// This is best-effort and tied to the messages of the Ghostscript versions seen so far.
	passwordFailureMarkers = []string{
		"password did not work",
		"requires a password",
		"invalid password",
		"incorrect password",
		"cannot decrypt",
	}
)

type LockOptions struct {
	UserPassword string
	// OwnerPassword defaults to UserPassword
	OwnerPassword string
}

func lockArgs(opts LockOptions, inputPath, outputPath string) []string {
	args := pdfWriteArgs(outputPath)
	args = append(args,
		"-sOwnerPassword="+opts.OwnerPassword,
		"-sUserPassword="+opts.UserPassword,
		"-dEncryptionR=3",
		"-dKeyLength=128",
		"-dPermissions="+lockedPermissions,
	)
	return append(args, inputPath)
}

func unlockArgs(password, inputPath, outputPath string) []string {
	args := []string{"-sPDFPassword=" + password}
	args = append(args, pdfWriteArgs(outputPath)...)
	return append(args, inputPath)
}

func looksLikePasswordFailure(output string) bool {
	output = strings.ToLower(output)
	for _, marker := range passwordFailureMarkers {
		if strings.Contains(output, marker) {
			return true
		}
	}
	return false
}

// Lock encrypts a PDF so it needs opts.UserPassword to be opened.
func (p *Processor) Lock(ctx context.Context, in model.InputFile, opts LockOptions) (*Result, error) {
	if len(opts.UserPassword) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	}
	if opts.OwnerPassword == "" {
		opts.OwnerPassword = opts.UserPassword
	}

	return p.process(ctx, job{
		operation:  "lock",
		input:      in,
		from:       FormatPDF,
		to:         FormatPDF,
		outputName: "locked_" + Stem(in.Name) + FormatPDF.Extension,
		inspect: func(inputPath string) error {
			encrypted, err := isEncryptedPDF(inputPath)
			if err != nil {
				return err
			}
			if encrypted {
				return ErrAlreadyEncrypted
			}
			return nil
		},
		step: func(ctx context.Context, r *run) (string, string, error) {
			gs, err := p.find(toolchain.Ghostscript)
			if err != nil {
				return "", "", err
			}
			outputPath := r.ws.OutputPath("locked.pdf")
			_, err = r.exec(ctx, toolchain.Command{
				Tool: toolchain.Ghostscript,
				Path: gs,
				Args: lockArgs(opts, r.inputPath, outputPath),
			})
			return outputPath, string(toolchain.Ghostscript), err
		},
	})
}

// Unlock removes the encryption from a PDF given its password.
func (p *Processor) Unlock(ctx context.Context, in model.InputFile, password string) (*Result, error) {
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	return p.process(ctx, job{
		operation:  "unlock",
		input:      in,
		from:       FormatPDF,
		to:         FormatPDF,
		outputName: "unlocked_" + Stem(in.Name) + FormatPDF.Extension,
		inspect: func(inputPath string) error {
			encrypted, err := isEncryptedPDF(inputPath)
			if err != nil {
				return err
			}
			if !encrypted {
				return ErrNotEncrypted
			}
			return nil
		},
		step: func(ctx context.Context, r *run) (string, string, error) {
			gs, err := p.find(toolchain.Ghostscript)
			if err != nil {
				return "", "", err
			}
			outputPath := r.ws.OutputPath("unlocked.pdf")
			result, err := r.exec(ctx, toolchain.Command{
				Tool: toolchain.Ghostscript,
				Path: gs,
				Args: unlockArgs(password, r.inputPath, outputPath),
			})
			if errors.Is(err, ErrTimeout) || ctx.Err() != nil {
				return "", "", err
			}
			if (err != nil || !r.ws.Exists(outputPath)) && looksLikePasswordFailure(result.Output()) {
				return "", "", ErrIncorrectPassword
			}
			return outputPath, string(toolchain.Ghostscript), err
		},
	})
}
