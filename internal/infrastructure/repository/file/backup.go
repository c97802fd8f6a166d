package file

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const backupTimeLayout = "2006-01-02_15-04-05"

// Backup copies the tracked store files into a fresh timestamped
// directory under dir after each completed purchase. Missing source
// files are skipped. With keep > 0 only the newest keep directories are
// retained; keep == 0 means unbounded growth.
type Backup struct {
	dir    string
	files  []string
	keep   int
	tracer trace.Tracer
	logger *slog.Logger
}

func NewBackup(dir string, files []string, keep int, tracer trace.Tracer, logger *slog.Logger) *Backup {
	return &Backup{
		dir:    dir,
		files:  files,
		keep:   keep,
		tracer: tracer,
		logger: logger,
	}
}

// Run creates the timestamped directory and copies every tracked file
// that exists. Copy failures are logged per file; the purchase that
// triggered the backup is already committed and is never rolled back.
func (b *Backup) Run(ctx context.Context) error {
	ctx, span := b.tracer.Start(ctx, "Backup.Run")
	defer span.End()

	target := filepath.Join(b.dir, time.Now().Format(backupTimeLayout))
	span.SetAttributes(attribute.String("backup.dir", target))

	if err := os.MkdirAll(target, 0o755); err != nil {
		span.RecordError(err)
		b.logger.ErrorContext(ctx, "Failed to create backup directory",
			slog.String("dir", target),
			slog.String("error", err.Error()),
		)
		return err
	}

	for _, src := range b.files {
		if err := copyFile(src, filepath.Join(target, filepath.Base(src))); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			span.RecordError(err)
			b.logger.ErrorContext(ctx, "Failed to back up file",
				slog.String("file", src),
				slog.String("error", err.Error()),
			)
		}
	}

	b.prune(ctx)

	b.logger.InfoContext(ctx, "Backup completed",
		slog.String("dir", target),
	)
	return nil
}

// prune removes the oldest backup directories beyond the retention
// limit. Directory names sort chronologically because of the timestamp
// layout.
func (b *Backup) prune(ctx context.Context) {
	if b.keep <= 0 {
		return
	}

	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	if len(dirs) <= b.keep {
		return
	}

	sort.Strings(dirs)
	for _, name := range dirs[:len(dirs)-b.keep] {
		if err := os.RemoveAll(filepath.Join(b.dir, name)); err != nil {
			b.logger.WarnContext(ctx, "Failed to prune backup",
				slog.String("dir", name),
				slog.String("error", err.Error()),
			)
		}
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
