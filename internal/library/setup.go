package library

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

//go:embed templates/game.cfg templates/dosbox.conf
var templates embed.FS

// templateFiles are copied into every new game directory
var templateFiles = []string{ConfigFileName, DOSBoxConfigFileName}

// SetupRequest describes a game directory to create
type SetupRequest struct {
	DirName     string   // Directory created under the library root
	Name        string   // Display name written to game.cfg
	SourceDir   string   // Optional tree copied into the C drive folder
	ISOs        []string // Image files copied into isos/ and listed in [isos]
	Discs       []string // Install disc images copied into disc-images/
	FrontCover  string   // Optional box art
	BackCover   string
	TemplateDir string // Optional directory overriding the embedded templates
}

// SetupStage is the part of a setup being worked on
type SetupStage int

const (
	StageSkeleton SetupStage = iota // Creating folders and templates
	StageCopy                       // Copying source files
	StageConfig                     // Writing game.cfg
)

// SetupProgress reports setup progress. Written and Total count bytes over
// the whole copy, FileIndex is 1-based.
type SetupProgress struct {
	Stage     SetupStage
	File      string
	FileIndex int
	FileCount int
	Written   int64
	Total     int64
}

// SetupProgressFunc receives copy progress
type SetupProgressFunc func(SetupProgress)

type copyJob struct {
	src  string
	dst  string
	size int64
}

// Setup creates a new game directory: the skeleton folders, the templates,
// then every source file copied into place. The new game is loaded back
// from disk once its config has been written. A failed setup removes the
// partially created directory.
func (l *Library) Setup(req SetupRequest, onProgress SetupProgressFunc) (*Game, error) {
	if onProgress == nil {
		onProgress = func(SetupProgress) {}
	}

	dirName := strings.TrimSpace(req.DirName)
	if dirName == "" || dirName == "." || dirName == ".." || strings.ContainsAny(dirName, `/\`) {
		return nil, fmt.Errorf("invalid game directory name %q", req.DirName)
	}

	target := filepath.Join(l.root, dirName)
	if l.exists(target) {
		return nil, fmt.Errorf("%w: %s", ErrGameExists, target)
	}

	jobs, total, err := l.planCopy(req, target)
	if err != nil {
		return nil, err
	}

	l.log.Info("Setting up game",
		"dir", target,
		"files", len(jobs),
		"bytes", total,
	)

	if err := l.materialize(req, target, jobs, total, onProgress); err != nil {
		if rmErr := l.fs.RemoveAll(target); rmErr != nil {
			l.log.Warn("Failed to clean up partial game directory", "path", target, "error", rmErr)
		}
		return nil, err
	}

	g, err := l.LoadGame(target)
	if err != nil {
		return nil, fmt.Errorf("failed to load new game: %w", err)
	}

	l.log.Info("Game set up", "name", g.Name, "dir", target)
	return g, nil
}

func (l *Library) materialize(req SetupRequest, target string, jobs []copyJob, total int64, onProgress SetupProgressFunc) error {
	onProgress(SetupProgress{Stage: StageSkeleton, FileCount: len(jobs), Total: total})
	for _, dir := range append([]string{""}, skeletonDirs...) {
		path := filepath.Join(target, dir)
		l.log.Debug("Creating directory", "path", path)
		if err := l.fs.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", path, err)
		}
	}

	for _, name := range templateFiles {
		if err := l.writeTemplate(req.TemplateDir, name, filepath.Join(target, name)); err != nil {
			return err
		}
	}

	var written int64
	for i, job := range jobs {
		report := func(n int64) {
			onProgress(SetupProgress{
				Stage:     StageCopy,
				File:      filepath.Base(job.src),
				FileIndex: i + 1,
				FileCount: len(jobs),
				Written:   written + n,
				Total:     total,
			})
		}

		if err := l.copyFile(job.src, job.dst, report); err != nil {
			return fmt.Errorf("failed to copy %s: %w", job.src, err)
		}
		written += job.size
	}

	onProgress(SetupProgress{Stage: StageConfig, FileCount: len(jobs), Written: written, Total: total})
	g := newGame(target)
	isos := make([]string, 0, len(req.ISOs))
	for _, iso := range req.ISOs {
		isos = append(isos, filepath.Base(iso))
	}
	return l.SaveGameData(g, GameData{Name: req.Name, ISOs: isos})
}

// planCopy lists every file to copy and the total byte count. Missing
// sources are reported before anything is created.
func (l *Library) planCopy(req SetupRequest, target string) ([]copyJob, int64, error) {
	var jobs []copyJob
	var total int64

	add := func(src, dst string) error {
		info, err := l.fs.Stat(src)
		if err != nil {
			return fmt.Errorf("source %s: %w", src, err)
		}
		if info.IsDir() {
			return fmt.Errorf("source %s is a directory", src)
		}
		jobs = append(jobs, copyJob{src: src, dst: dst, size: info.Size()})
		total += info.Size()
		return nil
	}

	if req.SourceDir != "" {
		mount := filepath.Join(target, MountDirName)
		err := afero.Walk(l.fs, req.SourceDir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(req.SourceDir, path)
			if err != nil {
				return err
			}
			return add(path, filepath.Join(mount, rel))
		})
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read source directory: %w", err)
		}
	}

	for _, iso := range req.ISOs {
		if err := add(iso, filepath.Join(target, ISODirName, filepath.Base(iso))); err != nil {
			return nil, 0, err
		}
	}

	discDir := filepath.Join(target, DiscImagesDirName)
	for _, disc := range req.Discs {
		if err := add(disc, filepath.Join(discDir, filepath.Base(disc))); err != nil {
			return nil, 0, err
		}
		if strings.EqualFold(filepath.Ext(disc), cueExtension) {
			srcDir := filepath.Dir(disc)
			if binName, _, ok := l.findCompanion(srcDir, filepath.Base(disc)); ok {
				if err := add(filepath.Join(srcDir, binName), filepath.Join(discDir, binName)); err != nil {
					return nil, 0, err
				}
			} else {
				l.log.Warn("Cue sheet has no companion bin", "path", disc)
			}
		}
	}

	g := newGame(target)
	if req.FrontCover != "" {
		if err := add(req.FrontCover, g.FrontCoverPath()); err != nil {
			return nil, 0, err
		}
	}
	if req.BackCover != "" {
		if err := add(req.BackCover, g.BackCoverPath()); err != nil {
			return nil, 0, err
		}
	}

	return jobs, total, nil
}

// writeTemplate copies a template into place, preferring the user's
// template directory over the embedded default
func (l *Library) writeTemplate(templateDir, name, dst string) error {
	var data []byte
	var err error

	if templateDir != "" {
		data, err = afero.ReadFile(l.fs, filepath.Join(templateDir, name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read template %s: %w", name, err)
		}
	}

	if data == nil {
		data, err = templates.ReadFile("templates/" + name)
		if err != nil {
			return fmt.Errorf("missing template %s: %w", name, err)
		}
	} else {
		l.log.Debug("Using user template", "name", name, "dir", templateDir)
	}

	if err := afero.WriteFile(l.fs, dst, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}

// copyFile copies a single file, reporting bytes copied so far
func (l *Library) copyFile(src, dst string, onProgress func(int64)) error {
	srcFile, err := l.fs.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = srcFile.Close() }()

	if err := l.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	dstFile, err := l.fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	_, err = copyWithProgress(dstFile, srcFile, onProgress)
	if closeErr := dstFile.Close(); err == nil {
		err = closeErr
	}
	return err
}

// copyWithProgress copies from src to dst while reporting progress
func copyWithProgress(dst io.Writer, src io.Reader, onProgress func(int64)) (int64, error) {
	buf := make([]byte, 32*1024) // 32KB buffer
	var written int64
	var lastReport int64

	for {
		nr, er := src.Read(buf)
		if nr > 0 {
			nw, ew := dst.Write(buf[0:nr])
			if nw < 0 || nr < nw {
				nw = 0
				if ew == nil {
					ew = fmt.Errorf("invalid write result")
				}
			}
			written += int64(nw)

			// Report progress every 1MB
			if written-lastReport > 1024*1024 {
				onProgress(written)
				lastReport = written
			}

			if ew != nil {
				return written, ew
			}
			if nr != nw {
				return written, io.ErrShortWrite
			}
		}
		if er != nil {
			if er != io.EOF {
				return written, er
			}
			break
		}
	}

	// Final progress report
	onProgress(written)
	return written, nil
}
