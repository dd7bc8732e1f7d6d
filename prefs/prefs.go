package prefs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"github.com/notargets/foamcase/caseerr"
)

// Runtime is the environment OpenFOAM runs in
type Runtime string

const (
	Posix         Runtime = "Posix"
	WindowsDocker Runtime = "WindowsDocker"
	MinGW         Runtime = "MinGW"
	WindowsWSL    Runtime = "WindowsWSL"
)

var Runtimes = []Runtime{Posix, WindowsDocker, MinGW, WindowsWSL}

// Preferences are per-user settings of the OpenFOAM installation.
type Preferences struct {
	InstallDir string
	Runtime    Runtime
}

// Default uses the installation of a sourced OpenFOAM environment, if any.
func Default() Preferences {
	return Preferences{InstallDir: os.Getenv("WM_PROJECT_DIR"), Runtime: Posix}
}

// Load reads preferences from an INI file:
//
//	[foam]
//	InstallDir = /opt/openfoam11
//	Runtime = Posix
//
// Keys that are missing keep their Default values.
func Load(source interface{}) (p Preferences, err error) {
	var file *ini.File
	if file, err = ini.Load(source); err != nil {
		return
	}
	p = Default()
	sec := file.Section("foam")
	p.InstallDir = sec.Key("InstallDir").MustString(p.InstallDir)
	p.Runtime = Runtime(sec.Key("Runtime").MustString(string(p.Runtime)))
	if err = p.validate(); err != nil {
		return
	}
	if p.InstallDir, err = homedir.Expand(p.InstallDir); err != nil {
		return
	}
	log.WithFields(log.Fields{
		"installDir": p.InstallDir,
		"runtime":    p.Runtime,
	}).Debug("loaded preferences")
	return
}

func (p Preferences) validate() error {
	for _, r := range Runtimes {
		if r == p.Runtime {
			return nil
		}
	}
	return caseerr.Validationf(string(p.Runtime), "unknown OpenFOAM runtime")
}

// SystemSettings is the system subtree of the case settings. TranslatedFoamPath is the
// install directory as seen from inside the runtime; it is absent for Docker.
type SystemSettings struct {
	FoamRuntime        Runtime `json:"FoamRuntime"`
	CasePath           string  `json:"CasePath"`
	FoamPath           string  `json:"FoamPath"`
	TranslatedFoamPath *string `json:"TranslatedFoamPath,omitempty"`
}

func (p Preferences) System(casePath string) (s SystemSettings, err error) {
	if err = p.validate(); err != nil {
		return
	}
	if p.InstallDir == "" {
		return s, caseerr.Validationf("InstallDir", "OpenFOAM installation path not set and not detected")
	}
	s = SystemSettings{
		FoamRuntime: p.Runtime,
		CasePath:    casePath,
		FoamPath:    filepath.Clean(p.InstallDir),
	}
	if p.Runtime != WindowsDocker {
		tp := TranslatePath(p.Runtime, s.FoamPath)
		s.TranslatedFoamPath = &tp
	}
	return
}

// TranslatePath converts a host path to the runtime's view of it. Under MinGW c:\path is
// /c/path and under WSL it is /mnt/c/path. Posix paths are unchanged.
func TranslatePath(rt Runtime, p string) string {
	if rt == Posix {
		return p
	}
	drive, tail := splitDrive(p)
	tail = strings.ReplaceAll(tail, `\`, "/")
	if drive == "" || !strings.HasPrefix(tail, "/") {
		return tail
	}
	switch rt {
	case MinGW:
		return "/" + strings.ToLower(drive) + tail
	case WindowsWSL:
		return "/mnt/" + strings.ToLower(drive) + tail
	}
	return tail
}

func splitDrive(p string) (drive, tail string) {
	if len(p) >= 2 && p[1] == ':' {
		c := p[0]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') {
			return p[:1], p[2:]
		}
	}
	return "", p
}
