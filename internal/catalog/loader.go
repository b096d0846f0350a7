/*
Responsibilities
- List the SVG files of an icon directory
- Reject binary files and names that cannot become a class
- Sanitize files concurrently, reusing cached results
- Evict cached results of files that changed or disappeared
- Keep the output in file-name order whatever the scheduling

Nothing is dropped silently: every file ends up either as an Icon or as a
Rejection.
*/
package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"time"

	"github.com/h2non/filetype"
	"github.com/rohmanhakim/richtext-icons/internal/cache"
	"github.com/rohmanhakim/richtext-icons/internal/metadata"
	"github.com/rohmanhakim/richtext-icons/internal/render"
	"github.com/rohmanhakim/richtext-icons/internal/sanitizer"
	"github.com/rohmanhakim/richtext-icons/internal/svgdoc"
	"github.com/rohmanhakim/richtext-icons/pkg/fileutil"
	"golang.org/x/sync/errgroup"
)

const svgNamespace = "http://www.w3.org/2000/svg"

type Loader struct {
	sanitizer    sanitizer.Sanitizer
	cache        cache.Cache
	metadataSink metadata.MetadataSink
	param        LoaderParam
}

func NewLoader(
	svgSanitizer sanitizer.Sanitizer,
	iconCache cache.Cache,
	metadataSink metadata.MetadataSink,
	param LoaderParam,
) Loader {
	if param.Concurrency < 1 {
		param.Concurrency = 1
	}
	return Loader{
		sanitizer:    svgSanitizer,
		cache:        iconCache,
		metadataSink: metadataSink,
		param:        param,
	}
}

type outcome struct {
	icon *Icon
	key  string
	err  error
}

// Load reads every *.svg file at the top level of fsys. It only fails when
// the directory cannot be listed or ctx is cancelled; per-file problems
// are reported in LoadResult.Rejected.
func (l *Loader) Load(ctx context.Context, fsys fs.FS) (LoadResult, error) {
	files, err := listSVGFiles(fsys)
	if err != nil {
		return LoadResult{}, err
	}

	outcomes := make([]outcome, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.param.Concurrency)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			icon, key, err := l.loadOne(fsys, file)
			outcomes[i] = outcome{icon: icon, key: key, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return LoadResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return LoadResult{}, err
	}

	var result LoadResult
	owners := make(map[string]string, len(files))
	for i, o := range outcomes {
		if o.err != nil {
			result.Rejected = append(result.Rejected, Rejection{File: files[i], Err: o.err})
			continue
		}
		if first, taken := owners[o.icon.Name]; taken {
			dupErr := &CatalogError{
				Message:   fmt.Sprintf("class %q is already used by %s", o.icon.Name, first),
				Retryable: false,
				Cause:     ErrCauseDuplicateName,
				File:      files[i],
			}
			l.recordError(dupErr)
			result.Rejected = append(result.Rejected, Rejection{File: files[i], Err: dupErr})
			continue
		}
		owners[o.icon.Name] = files[i]
		result.Icons = append(result.Icons, *o.icon)
	}
	l.prune(outcomes)
	return result, nil
}

// prune drops cache entries of files that were edited or removed since the
// previous load, when the cache supports it.
func (l *Loader) prune(outcomes []outcome) {
	pruner, ok := l.cache.(cache.Pruner)
	if !ok {
		return
	}
	live := make(map[string]struct{}, len(outcomes))
	for _, o := range outcomes {
		if o.key != "" {
			live[o.key] = struct{}{}
		}
	}
	pruner.Retain(func(key string) bool {
		_, ok := live[key]
		return ok
	})
}

// loadOne returns the icon of file and the cache key it was stored under.
func (l *Loader) loadOne(fsys fs.FS, file string) (*Icon, string, error) {
	start := time.Now()

	name := Slugify(fileutil.StripExtension(file))
	if name == "" {
		err := &CatalogError{
			Message:   "file name has no usable characters",
			Retryable: false,
			Cause:     ErrCauseInvalidName,
			File:      file,
		}
		l.recordError(err)
		return nil, "", err
	}

	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		readErr := &CatalogError{
			Message:   err.Error(),
			Retryable: true,
			Cause:     ErrCauseReadFailure,
			File:      file,
		}
		l.recordError(readErr)
		return nil, "", readErr
	}

	if kind, _ := filetype.Match(data); kind != filetype.Unknown {
		binErr := &CatalogError{
			Message:   "content is " + kind.MIME.Value + ", not SVG",
			Retryable: false,
			Cause:     ErrCauseBinaryImage,
			File:      file,
		}
		l.recordError(binErr)
		return nil, "", binErr
	}

	key := cache.IconKey(name, data)
	if l.param.Minify {
		key += "+min"
	}
	svg, cached := l.cache.Get(key)
	if !cached || svg == "" {
		sanitized, sanitizeErr := l.sanitizer.Sanitize(file, string(data))
		if sanitizeErr != nil {
			return nil, "", sanitizeErr
		}
		svg = withSVGNamespace(sanitized.SVG())
		if l.param.Minify {
			svg = l.minify(file, svg)
		}
		l.cache.Put(key, svg)
	}

	l.metadataSink.RecordIcon(name, file, len(data), time.Since(start))
	return &Icon{
		Name:        name,
		File:        file,
		SVG:         svg,
		AspectRatio: render.AspectRatio(svg),
	}, key, nil
}

func (l *Loader) minify(file string, svg string) string {
	out, err := MinifySVG(svg)
	if err != nil {
		l.metadataSink.RecordError(
			time.Now(),
			"catalog",
			"Loader.minify",
			metadata.CauseUnknown,
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrFile, file),
			},
		)
		return svg
	}
	return out
}

func (l *Loader) recordError(err *CatalogError) {
	l.metadataSink.RecordError(
		time.Now(),
		"catalog",
		"Loader.Load",
		mapCatalogErrorToMetadataCause(err),
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrFile, err.File),
		},
	)
}

// listSVGFiles returns the names of regular *.svg files, sorted.
func listSVGFiles(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !fileutil.HasExtension(entry.Name(), "svg") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

// withSVGNamespace declares the SVG namespace on the root when it is
// missing. Browsers refuse to render a data: URI SVG without it.
func withSVGNamespace(svg string) string {
	doc, err := svgdoc.ParseString(svg)
	if err != nil {
		return svg
	}
	root := doc.Root()
	if _, ok := doc.Attr(root, "xmlns"); ok {
		return svg
	}
	doc.SetAttr(root, svgdoc.Name{Local: "xmlns"}, svgNamespace)
	return doc.OuterXML(root)
}
