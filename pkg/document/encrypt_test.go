package document

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pdftools/pkg/config"
	"pdftools/test"
)

const unlockToolScript = `for a in "$@"; do
  case "$a" in
    -sPDFPassword=right) ok=1 ;;
  esac
done
if [ -z "$ok" ]; then
  echo "   **** Error: Password did not work."
  echo "   **** This file requires a password for access."
  exit 1
fi
` + test.CopyToolScript

func TestLooksLikePasswordFailure(t *testing.T) {
	tests := map[string]bool{
		"   **** Error: Password did not work.":             true,
		"This file requires a password for access.":         true,
		"Invalid password supplied":                         true,
		"GPL Ghostscript 10.02.1: Unrecoverable error, exit": false,
		"":                                                  false,
	}

	for output, want := range tests {
		if got := looksLikePasswordFailure(output); got != want {
			t.Errorf("looksLikePasswordFailure(%q) = %v, want %v", output, got, want)
		}
	}
}

func TestLockArgs(t *testing.T) {
	args := lockArgs(LockOptions{UserPassword: "user", OwnerPassword: "owner"}, "in.pdf", "out.pdf")

	joined := strings.Join(args, " ")
	for _, expected := range []string{"-sUserPassword=user", "-sOwnerPassword=owner", "-dEncryptionR=3", "-dKeyLength=128", "-sOutputFile=out.pdf"} {
		if !strings.Contains(joined, expected) {
			t.Errorf("Expected %s in %v", expected, args)
		}
	}
	if args[len(args)-1] != "in.pdf" {
		t.Errorf("Expected the input file to be the last argument, got %v", args)
	}
}

func TestLock(t *testing.T) {
	argsLog := filepath.Join(t.TempDir(), "args.log")
	env := newTestEnv(t, func(dir string, tools *config.ToolPaths) {
		tools.Ghostscript = test.WriteFakeTool(t, dir, "gs", `echo "$@" > "`+argsLog+`"
`+test.CopyToolScript)
	})

	result, err := env.processor.Lock(context.Background(), inputFile("contract.pdf", test.SamplePDF()), LockOptions{UserPassword: "secret1"})
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if result.File.Name != "locked_contract.pdf" {
		t.Errorf("Unexpected output name %s", result.File.Name)
	}

	logged, err := os.ReadFile(argsLog)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(logged), "-sUserPassword=secret1") || !strings.Contains(string(logged), "-sOwnerPassword=secret1") {
		t.Errorf("Expected owner password to default to the user password, got %s", logged)
	}
	test.AssertDirEmpty(t, env.root)
}

func TestLockAcceptsPDFMentioningEncrypt(t *testing.T) {
	env := newTestEnv(t, func(dir string, tools *config.ToolPaths) {
		tools.Ghostscript = test.WriteFakeTool(t, dir, "gs", test.CopyToolScript)
	})

	content := test.SamplePDFWithText("BT (see /Encrypt key) Tj ET")
	result, err := env.processor.Lock(context.Background(), inputFile("manual.pdf", content), LockOptions{UserPassword: "secret1"})
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if result.File.Name != "locked_manual.pdf" {
		t.Errorf("Unexpected output name %s", result.File.Name)
	}
	test.AssertDirEmpty(t, env.root)
}

func TestLockRejectsInvalidRequests(t *testing.T) {
	env := newTestEnv(t, func(dir string, tools *config.ToolPaths) {
		tools.Ghostscript = test.WriteFakeTool(t, dir, "gs", test.CopyToolScript)
	})

	_, err := env.processor.Lock(context.Background(), inputFile("a.pdf", test.SamplePDF()), LockOptions{UserPassword: "abc"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected short password to be rejected, got %v", err)
	}

	_, err = env.processor.Lock(context.Background(), inputFile("a.pdf", test.SampleEncryptedPDF()), LockOptions{UserPassword: "secret1"})
	if !errors.Is(err, ErrAlreadyEncrypted) {
		t.Errorf("Expected ErrAlreadyEncrypted, got %v", err)
	}
	test.AssertDirEmpty(t, env.root)
}

func TestUnlock(t *testing.T) {
	env := newTestEnv(t, func(dir string, tools *config.ToolPaths) {
		tools.Ghostscript = test.WriteFakeTool(t, dir, "gs", unlockToolScript)
	})

	t.Run("correct password", func(t *testing.T) {
		result, err := env.processor.Unlock(context.Background(), inputFile("secret.pdf", test.SampleEncryptedPDF()), "right")
		if err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}
		if result.File.Name != "unlocked_secret.pdf" || len(result.File.Content) == 0 {
			t.Errorf("Unexpected result %s with %d bytes", result.File.Name, len(result.File.Content))
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := env.processor.Unlock(context.Background(), inputFile("secret.pdf", test.SampleEncryptedPDF()), "wrong")
		if !errors.Is(err, ErrIncorrectPassword) {
			t.Errorf("Expected ErrIncorrectPassword, got %v", err)
		}
	})

	t.Run("not encrypted", func(t *testing.T) {
		_, err := env.processor.Unlock(context.Background(), inputFile("plain.pdf", test.SamplePDF()), "right")
		if !errors.Is(err, ErrNotEncrypted) {
			t.Errorf("Expected ErrNotEncrypted, got %v", err)
		}
	})

	t.Run("missing password", func(t *testing.T) {
		_, err := env.processor.Unlock(context.Background(), inputFile("secret.pdf", test.SampleEncryptedPDF()), "")
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Expected ErrInvalidInput, got %v", err)
		}
	})

	test.AssertDirEmpty(t, env.root)
}

func TestUnlockReportsGenericFailures(t *testing.T) {
	env := newTestEnv(t, func(dir string, tools *config.ToolPaths) {
		tools.Ghostscript = test.WriteFakeTool(t, dir, "gs", test.FailingToolScript)
	})

	_, err := env.processor.Unlock(context.Background(), inputFile("secret.pdf", test.SampleEncryptedPDF()), "right")
	if !errors.Is(err, ErrToolFailed) || errors.Is(err, ErrIncorrectPassword) {
		t.Errorf("Expected a plain tool failure, got %v", err)
	}
}
