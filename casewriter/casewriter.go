package casewriter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"

	"github.com/notargets/foamcase/InputParameters"
	"github.com/notargets/foamcase/casesettings"
	"github.com/notargets/foamcase/geometry"
	"github.com/notargets/foamcase/prefs"
)

// SettingsFile is the name the YAML renderer writes the settings document to
const SettingsFile = "caseSettings.yaml"

// Renderer turns an assembled settings document into files in the case directory.
type Renderer interface {
	Render(ctx context.Context, caseDir string, s *casesettings.Settings) error
}

// YAMLRenderer dumps the settings document as YAML, for inspection or for an external
// template engine to pick up.
type YAMLRenderer struct {
	FileName string
}

func (r YAMLRenderer) Render(ctx context.Context, caseDir string, s *casesettings.Settings) (err error) {
	if err = ctx.Err(); err != nil {
		return
	}
	var data []byte
	if data, err = yaml.Marshal(s); err != nil {
		return
	}
	name := r.FileName
	if name == "" {
		name = SettingsFile
	}
	return os.WriteFile(filepath.Join(caseDir, name), data, 0o644)
}

type Options struct {
	OutputDir  string
	BackupPath string
	Faces      geometry.Resolver
	Prefs      prefs.Preferences
	Renderer   Renderer
}

// Write assembles the case and writes it to <OutputDir>/<InputCaseName>. Nothing on disk is
// touched unless assembly succeeds. An existing case directory is removed first, or moved
// to BackupPath when one is given.
func Write(ctx context.Context, c *InputParameters.Case, opt Options) (s *casesettings.Settings, err error) {
	var (
		outDir  string
		caseDir string
		fi      os.FileInfo
	)
	if outDir, err = homedir.Expand(opt.OutputDir); err != nil {
		return
	}
	if fi, err = os.Stat(outDir); err != nil {
		return nil, fmt.Errorf("output path %s does not exist: %w", outDir, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("output path %s is not a directory", outDir)
	}
	if caseDir, err = filepath.Abs(filepath.Join(outDir, c.Solver.InputCaseName)); err != nil {
		return
	}
	log.WithField("dir", outDir).Info("writing case")
	if s, err = casesettings.Assemble(c, casesettings.Options{
		Faces:    opt.Faces,
		Prefs:    opt.Prefs,
		CasePath: caseDir,
	}); err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	if err = ClearCase(caseDir, opt.BackupPath); err != nil {
		return nil, err
	}
	r := opt.Renderer
	if r == nil {
		r = YAMLRenderer{}
	}
	if err = r.Render(ctx, caseDir, s); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"dir":    caseDir,
		"solver": s.Solver.SolverName,
	}).Info("wrote case")
	return
}

// ClearCase removes and recreates the case directory, optionally moving the old one to
// backupPath first.
func ClearCase(caseDir, backupPath string) (err error) {
	if fi, serr := os.Stat(caseDir); serr == nil && fi.IsDir() {
		if backupPath != "" {
			if err = os.Rename(caseDir, backupPath); err != nil {
				return
			}
		} else if err = os.RemoveAll(caseDir); err != nil {
			return
		}
	}
	return os.MkdirAll(caseDir, 0o755)
}
