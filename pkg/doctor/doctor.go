// Package doctor checks YAML source for common authoring mistakes that
// a strict parser would either miss or misreport, and can rewrite the
// source to repair them.
//
// The checker drives an event-emitting YAML scanner over a working copy
// of the source. At each node boundary a set of detectors looks ahead
// for a repairable fault, splices the working copy so scanning can
// continue past it, and mirrors the repair into a parallel fixed copy
// when fixing was requested. Position maps keep the reported marks and
// the emitted fixes aligned with the original text.
package doctor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/Mr0grog/yaml-doctor/pkg/frontmatter"
	"github.com/Mr0grog/yaml-doctor/pkg/fsutil"
	"github.com/Mr0grog/yaml-doctor/pkg/yamlscan"
)

// ErrInternal wraps faults in the checker itself or its collaborators.
// Syntax problems in the checked document are never errors; they are
// reported as issues.
var ErrInternal = errors.New("internal checker error")

// Check scans src and returns the issues found. With opts.Fix the
// result also carries a repaired copy of the source. Check only fails
// for internal faults, never for YAML syntax.
func Check(src string, opts Options) (res *Result, err error) {
	s := newSession(src, opts)

	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	s.scanNonPrintables()

	perr := yamlscan.Parse([]byte(s.stateEd.Value()), yamlscan.Callbacks{
		Open:    s.onOpen,
		Close:   s.onClose,
		Warning: s.onWarning,
	})
	if perr != nil {
		s.onParseError(perr)
	}

	res = &Result{Issues: s.issues}
	if opts.Fix {
		fixed := s.fixedEd.Value()
		res.Fixed = &fixed
		if s.logger != nil {
			var doc any
			if uerr := yaml.Unmarshal([]byte(fixed), &doc); uerr != nil {
				s.logger.Debug("fixed output still fails a strict parse", "error", uerr)
			} else {
				s.logger.Debug("fixed output parses cleanly")
			}
		}
	}
	return res, nil
}

// CheckFile checks the file at path. When content is nil the file is
// read from fsys. Markdown files are split on their front-matter: only
// the front-matter is checked and the body is carried through verbatim.
// With Fix enabled and DryRun off, repaired content is written back
// atomically.
func CheckFile(fsys afero.Fs, path string, content []byte, opts Options) (*Result, error) {
	if content == nil {
		data, err := fsutil.ReadFile(fsys, path)
		if err != nil {
			return nil, err
		}
		content = data
	}
	opts.Filename = path
	src := string(content)

	var res *Result
	if strings.EqualFold(filepath.Ext(path), ".md") {
		meta, body := frontmatter.Split(src)
		if meta == "" {
			res = &Result{}
			if opts.Fix {
				passthrough := src
				res.Fixed = &passthrough
			}
			return res, nil
		}
		checked, err := Check(meta, opts)
		if err != nil {
			return nil, err
		}
		res = checked
		if res.Fixed != nil {
			joined := frontmatter.Join(*res.Fixed, body)
			res.Fixed = &joined
		}
	} else {
		checked, err := Check(src, opts)
		if err != nil {
			return nil, err
		}
		res = checked
	}

	if opts.Fix && !opts.DryRun && res.Fixed != nil && *res.Fixed != src && res.Count().Fixed > 0 {
		if err := fsutil.WriteAtomic(fsys, path, []byte(*res.Fixed)); err != nil {
			return res, err
		}
		res.Written = true
	}
	return res, nil
}
