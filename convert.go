package csstw

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/mitchellh/hashstructure/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/csstw/internal/cssmodel"
	"github.com/yacobolo/csstw/internal/extract"
	"github.com/yacobolo/csstw/internal/match"
	"github.com/yacobolo/csstw/internal/normalize"
	"github.com/yacobolo/csstw/internal/theme"
)

// Converter converts stylesheets with a fixed set of options. Normalized
// reference stylesheets and theme scales are cached, so one Converter should
// be reused across calls. It is safe for concurrent use.
type Converter struct {
	opts      Options
	log       *zap.Logger
	extractor *extract.Extractor
	matcher   *match.Matcher
	scales    *theme.Cache

	mu         sync.Mutex
	references map[uint64]*cssmodel.VariantMap
}

// New returns a converter. A nil logger disables logging.
func New(opts Options, log *zap.Logger) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("converter")
	return &Converter{
		opts:       opts,
		log:        log,
		extractor:  extract.NewExtractor(log),
		matcher:    match.NewMatcher(opts.ColorDelta),
		scales:     theme.NewCache(),
		references: make(map[uint64]*cssmodel.VariantMap),
	}
}

// Convert converts input with the default options.
func Convert(ctx context.Context, input, reference string) ([]Result, error) {
	return New(DefaultOptions(), nil).Convert(ctx, input, reference)
}

// Convert matches every rule of input against the utility classes of the
// compiled Tailwind stylesheet reference.
func (c *Converter) Convert(ctx context.Context, input, reference string) ([]Result, error) {
	results, warnings, err := c.convert(ctx, input, reference)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		c.log.Warn(w)
	}
	return results, nil
}

// ConvertFiles converts each file in paths against reference. Files are
// converted concurrently; results keep the order of paths.
func (c *Converter) ConvertFiles(ctx context.Context, paths []string, reference string) ([]FileResult, error) {
	// normalize the reference once up front instead of racing to fill the cache
	if _, err := c.referenceMap(reference); err != nil {
		return nil, err
	}

	out := make([]FileResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		g.Go(func() error {
			// #nosec G304 - paths come from the command line or configured globs
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			defer func() { _ = f.Close() }()

			res, err := c.ConvertReader(ctx, path, f, reference)
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ConvertReader converts the stylesheet read from r and reports it under
// path, keeping the warnings on the result instead of logging them.
func (c *Converter) ConvertReader(ctx context.Context, path string, r io.Reader, reference string) (FileResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return FileResult{}, fmt.Errorf("read %s: %w", path, err)
	}
	results, warnings, err := c.convert(ctx, string(data), reference)
	if err != nil {
		return FileResult{}, fmt.Errorf("%s: %w", path, err)
	}
	return FileResult{Path: path, Results: results, Warnings: warnings}, nil
}

// CompileReference runs compiler over the preprocessor input with the
// converter's theme.
func (c *Converter) CompileReference(ctx context.Context, compiler Compiler) (string, error) {
	input := c.opts.PreprocessorInput
	if input == "" {
		input = DefaultPreprocessorInput
	}
	css, err := compiler.Compile(ctx, input, c.opts.theme())
	if err != nil {
		return "", err
	}
	return css, nil
}

func (c *Converter) convert(ctx context.Context, input, reference string) ([]Result, []string, error) {
	if err := c.opts.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid options: %w", err)
	}

	scales, _, err := c.scales.Scales(c.opts.theme(), c.opts.units(), c.opts.FullRound)
	if err != nil {
		return nil, nil, err
	}

	ref, err := c.referenceMap(reference)
	if err != nil {
		return nil, nil, err
	}

	sheet, err := c.extractor.ExtractString(input)
	if err != nil {
		return nil, nil, fmt.Errorf("input: %w", err)
	}
	groups, warnings, err := extract.Group(sheet.Rules, scales.Breakpoints)
	if err != nil {
		return nil, nil, fmt.Errorf("input: %w", err)
	}
	warnings = append(sheet.Warnings, warnings...)
	target := normalize.New(scales).Normalize(groups)

	c.log.Debug("normalized input",
		zap.Int("rules", len(sheet.Rules)),
		zap.Strings("variants", target.Keys()))

	matches, err := c.matcher.MatchVariants(ctx, ref, target)
	if err != nil {
		return nil, nil, err
	}
	return match.Assemble(matches), warnings, nil
}

// referenceMap extracts and normalizes a reference stylesheet, memoized by
// the stylesheet and everything its normalization depends on.
func (c *Converter) referenceMap(css string) (*cssmodel.VariantMap, error) {
	scales, scalesKey, err := c.scales.Scales(c.opts.theme(), c.opts.units(), c.opts.FullRound)
	if err != nil {
		return nil, err
	}
	key, err := hashstructure.Hash(struct {
		CSS      string
		Scales   uint64
		Denylist []string
	}{css, scalesKey, c.opts.Denylist}, hashstructure.FormatV2, nil)
	if err != nil {
		return nil, fmt.Errorf("hash reference: %w", err)
	}

	c.mu.Lock()
	cached, ok := c.references[key]
	c.mu.Unlock()
	if ok {
		c.log.Debug("reference cache hit", zap.Uint64("key", key))
		return cached, nil
	}

	sheet, err := c.extractor.ExtractString(css)
	if err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}
	rules := extract.FilterSupported(sheet.Rules, c.opts.Denylist)
	groups, warnings := extract.GroupReference(rules, scales.Breakpoints)
	for _, w := range append(sheet.Warnings, warnings...) {
		c.log.Warn("reference rule skipped", zap.String("reason", w))
	}
	ref := normalize.New(scales).Normalize(groups)

	c.log.Debug("normalized reference",
		zap.Int("rules", len(sheet.Rules)),
		zap.Int("supported", len(rules)),
		zap.Strings("variants", ref.Keys()))

	c.mu.Lock()
	c.references[key] = ref
	c.mu.Unlock()
	return ref, nil
}
