// Package aion is the boundary to the externally installed aion runtime. Modules of the
// runtime are resolved by name; when the runtime or a module is missing every call
// short-circuits with ErrUnavailable instead of failing hard.
package aion

import (
	"context"
	"github.com/pkg/errors"
	"os"
	"path/filepath"
	"sync"
)

var ErrUnavailable = errors.New("aion runtime is not available")

// Well-known module names.
const (
	ModuleCore     = "core"
	ModuleConfig   = "config"
	ModuleLogging  = "logging"
	ModuleLanguage = "language"
)

type Module interface {
	Call(ctx context.Context, method string, args ...any) (any, error)
}

type ModuleFunc func(ctx context.Context, method string, args ...any) (any, error)

func (f ModuleFunc) Call(ctx context.Context, method string, args ...any) (any, error) {
	return f(ctx, method, args...)
}

type Runtime interface {
	Available() bool
	Module(name string) (Module, error)
}

func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// Unavailable is the runtime used when nothing is installed.
type Unavailable struct{}

func (Unavailable) Available() bool {
	return false
}

func (Unavailable) Module(name string) (Module, error) {
	return nil, errors.Wrapf(ErrUnavailable, "module %q", name)
}

// Installation is a runtime found on disk. Modules become reachable once registered.
type Installation struct {
	Dir string

	mu      sync.RWMutex
	modules map[string]Module
}

func NewInstallation(dir string) *Installation {
	return &Installation{
		Dir:     dir,
		modules: make(map[string]Module),
	}
}

func (inst *Installation) Available() bool {
	return true
}

func (inst *Installation) Register(name string, module Module) {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	inst.modules[name] = module
}

func (inst *Installation) Module(name string) (Module, error) {
	inst.mu.RLock()
	defer inst.mu.RUnlock()
	module, ok := inst.modules[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnavailable, "module %q is not provided by %s", name, inst.Dir)
	}
	return module, nil
}

// Detect looks for an installation directory matching glob. The first directory wins;
// plain files are skipped.
func Detect(glob string) Runtime {
	matches, err := filepath.Glob(glob)
	if err != nil {
		return Unavailable{}
	}
	for _, match := range matches {
		if info, err := os.Stat(match); err == nil && info.IsDir() {
			return NewInstallation(match)
		}
	}
	return Unavailable{}
}

func call(ctx context.Context, rt Runtime, module, method string, args ...any) (any, error) {
	if rt == nil || !rt.Available() {
		return nil, errors.Wrapf(ErrUnavailable, "%s.%s", module, method)
	}
	m, err := rt.Module(module)
	if err != nil {
		return nil, err
	}
	return m.Call(ctx, method, args...)
}

func Speak(ctx context.Context, rt Runtime, text string) error {
	_, err := call(ctx, rt, ModuleCore, "speech_output", text)
	return err
}

func ConfigValue(ctx context.Context, rt Runtime, key string) (string, error) {
	value, err := call(ctx, rt, ModuleConfig, "get_"+key)
	if err != nil {
		return "", err
	}
	str, ok := value.(string)
	if !ok {
		return "", errors.Errorf("config value %s is %T, not a string", key, value)
	}
	return str, nil
}

func SetConfigValue(ctx context.Context, rt Runtime, key, value string) error {
	_, err := call(ctx, rt, ModuleConfig, "set_"+key, value)
	return err
}

// Translate asks the language module for the text of entry in the catalog of skill.
func Translate(ctx context.Context, rt Runtime, skill, entry string, format map[string]string) (string, error) {
	value, err := call(ctx, rt, ModuleLanguage, "start", skill, entry, format)
	if err != nil {
		return "", err
	}
	str, ok := value.(string)
	if !ok {
		return "", errors.Errorf("language entry %s.%s is %T, not a string", skill, entry, value)
	}
	return str, nil
}
