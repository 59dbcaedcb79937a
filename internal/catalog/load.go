package catalog

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/pageport/internal/compiler"
)

//go:embed data/schema.cue data/builtin.cue
var dataFS embed.FS

// LoadMode controls how errors are handled during catalog loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// Error code constants for catalog loading.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build or schema check failed
	ErrCodeInvalid     = "E008" // Record failed validation
)

// LoadError represents an error that occurred during catalog loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	builtinOnce sync.Once
	builtinCat  *Catalog
	builtinErr  error
)

// Builtin returns the catalog shipped with the binary. It is compiled once
// per process and shared; the catalog is immutable so sharing is safe.
func Builtin() (*Catalog, error) {
	builtinOnce.Do(func() {
		ctx := cuecontext.New()
		schema, err := schemaValue(ctx)
		if err != nil {
			builtinErr = err
			return
		}
		src, err := dataFS.ReadFile("data/builtin.cue")
		if err != nil {
			builtinErr = fmt.Errorf("reading builtin catalog: %w", err)
			return
		}
		data := ctx.CompileBytes(src, cue.Filename("builtin.cue"))
		builtinCat, builtinErr = fromValue(schema.Unify(data), LoadModeFailFast)
	})
	return builtinCat, builtinErr
}

// MustBuiltin is like Builtin but panics on error.
// Use only in tests or when the embedded data is known to be valid.
func MustBuiltin() *Catalog {
	c, err := Builtin()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadDir compiles the CUE package in dir against the catalog schema.
// If mode is LoadModeFailFast, returns on first error.
// If mode is LoadModeCollectAll, collects all record errors.
func LoadDir(dir string, mode LoadMode) (*Catalog, []error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("catalog directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing catalog directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	ctx := cuecontext.New()
	schema, err := schemaValue(ctx)
	if err != nil {
		return nil, []error{err}
	}

	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{buildError(err)}
	}

	cat, err := fromValue(schema.Unify(value), mode)
	if err != nil {
		var joined interface{ Unwrap() []error }
		if errors.As(err, &joined) {
			return nil, joined.Unwrap()
		}
		return nil, []error{err}
	}
	return cat, nil
}

// Load returns the built-in catalog extended with each directory in dirs,
// appended in order. With no dirs it is the built-in catalog.
func Load(dirs []string, mode LoadMode) (*Catalog, []error) {
	base, err := Builtin()
	if err != nil {
		return nil, []error{err}
	}

	var (
		extra []*Catalog
		errs  []error
	)
	for _, dir := range dirs {
		cat, loadErrs := LoadDir(dir, mode)
		if len(loadErrs) > 0 {
			errs = append(errs, loadErrs...)
			if mode == LoadModeFailFast {
				return nil, errs
			}
			continue
		}
		extra = append(extra, cat)
	}
	if len(errs) > 0 {
		return nil, errs
	}

	merged, err := base.Merge(extra...)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeInvalid, Message: err.Error()}}
	}
	return merged, nil
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func schemaValue(ctx *cue.Context) (cue.Value, error) {
	src, err := dataFS.ReadFile("data/schema.cue")
	if err != nil {
		return cue.Value{}, fmt.Errorf("reading catalog schema: %w", err)
	}
	v := ctx.CompileBytes(src, cue.Filename("schema.cue"))
	if err := v.Err(); err != nil {
		return cue.Value{}, buildError(err)
	}
	return v, nil
}

// fromValue checks the unified value is concrete, compiles the records
// and builds the index.
func fromValue(v cue.Value, mode LoadMode) (*Catalog, error) {
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, buildError(err)
	}

	compiled, compileErrs := compiler.CompileCatalog(v)
	if len(compileErrs) > 0 {
		if mode == LoadModeFailFast {
			return nil, convertCompileError(compileErrs[0])
		}
		errs := make([]error, len(compileErrs))
		for i, e := range compileErrs {
			errs[i] = convertCompileError(e)
		}
		return nil, errors.Join(errs...)
	}

	if verrs := compiler.Validate(compiled); len(verrs) > 0 {
		if mode == LoadModeFailFast {
			return nil, &LoadError{Code: verrs[0].Code, Message: verrs[0].Message}
		}
		errs := make([]error, len(verrs))
		for i, e := range verrs {
			errs[i] = &LoadError{Code: e.Code, Message: e.Message}
		}
		return nil, errors.Join(errs...)
	}

	return New(compiled.Pagesets, compiled.Systems, compiled.Processors)
}

// buildError converts a CUE evaluation error to a LoadError with the first
// position CUE reports.
func buildError(err error) *LoadError {
	loadErr := &LoadError{Code: ErrCodeBuildFailed, Message: err.Error()}
	if errs := cueerrors.Errors(err); len(errs) > 0 {
		loadErr.Message = errs[0].Error()
		if positions := cueerrors.Positions(errs[0]); len(positions) > 0 {
			loadErr.Pos = positions[0]
		}
	}
	return loadErr
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err error) *LoadError {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    ErrCodeInvalid,
			Message: fmt.Sprintf("%s: %s", compileErr.Field, compileErr.Message),
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{Code: ErrCodeGeneric, Message: err.Error()}
}
